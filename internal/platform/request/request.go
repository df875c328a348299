// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts common body decoding and header parsing patterns, ensuring
consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/platform/constants"
	"github.com/taibuivan/usergate/internal/platform/validate"
)

// maxBodyBytes caps every decoded request body.
const maxBodyBytes = 1 << 20

// bearerScheme is the case-insensitive authorization scheme accepted by [BearerToken].
const bearerScheme = "bearer"

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeFields reads a JSON object body and keeps every member as raw JSON.

Callers use it when they must tell an absent member apart from an explicit
null; both [json.RawMessage] presence and its "null" literal are preserved.

Returns:
  - map[string]json.RawMessage: Top-level members as sent
  - error: validate.ErrInvalidJSON if the body is not a JSON object
*/
func DecodeFields(request *http.Request) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := DecodeJSON(request, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, validate.ErrInvalidJSON
	}
	return fields, nil
}

// IsJSON reports whether the request body is declared as JSON.
func IsJSON(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	return err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"))
}

// ParseForm parses a form-encoded body, capping its size.
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}
	return nil
}

/*
BearerToken extracts the token from an 'Authorization: Bearer <token>' header.

Returns:
  - string: The raw token
  - error: apperr.Unauthenticated when the header is absent, uses another
    scheme, or carries no token
*/
func BearerToken(request *http.Request) (string, error) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", apperr.Unauthenticated(constants.MessageNotAuthenticated)
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" || strings.ContainsAny(token, " \t") {
		return "", apperr.Unauthenticated(constants.MessageNotAuthenticated)
	}

	return token, nil
}

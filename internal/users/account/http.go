// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	requestutil "github.com/taibuivan/usergate/internal/platform/request"
	"github.com/taibuivan/usergate/internal/platform/respond"
	"github.com/taibuivan/usergate/internal/platform/validate"
	"github.com/taibuivan/usergate/internal/users/auth"
)

// Handler implements the HTTP layer for the caller's own record.
type Handler struct {
	accountService *Service
	gate           func(http.Handler) http.Handler
}

// NewHandler constructs a new account [Handler]. Every route is wrapped in gate.
func NewHandler(service *Service, gate func(http.Handler) http.Handler) *Handler {
	return &Handler{accountService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with the account endpoints (mounted at /users).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.gate)

	router.Get("/me", handler.getMe)
	router.Get("/me/details", handler.getDetails)
	router.Put("/update", handler.update)
	router.Delete("/delete", handler.delete)

	return router
}

// callerOrFail returns the user resolved by the gate.
func callerOrFail(writer http.ResponseWriter, request *http.Request) (*auth.User, bool) {
	user := auth.UserFromContext(request.Context())
	if user == nil {
		respond.Error(writer, request, apperr.Unauthenticated(auth.MessageNotAuthenticated))
		return nil, false
	}
	return user, true
}

/*
GET /users/me/.

Response:
  - 200: Profile: Redacted record of the caller
  - 400: INACTIVE_ACCOUNT
  - 401: UNAUTHENTICATED / INVALID_CREDENTIALS
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, ok := callerOrFail(writer, request)
	if !ok {
		return
	}

	respond.OK(writer, handler.accountService.Profile(user))
}

/*
GET /users/me/details/.

Response:
  - 200: [{"id": 1, "owner": Profile}]
*/
func (handler *Handler) getDetails(writer http.ResponseWriter, request *http.Request) {
	user, ok := callerOrFail(writer, request)
	if !ok {
		return
	}

	respond.OK(writer, handler.accountService.Details(user))
}

/*
PUT /users/update/.

Description: Applies the non-null email and name members of the body. The
username and disabled members may only repeat the current value.

Request:
  - body: Partial user record (JSON)

Response:
  - 200: Profile: The record after the update
  - 400: VALIDATION_ERROR: Bad body or attempt to change an immutable field
  - 404: NOT_FOUND: Record deleted after authentication
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	user, ok := callerOrFail(writer, request)
	if !ok {
		return
	}

	fields, err := requestutil.DecodeFields(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	changes, err := parseChanges(fields, user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdateProfile(request.Context(), user.Username, changes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated.Profile())
}

/*
DELETE /users/delete/.

Response:
  - 200: {"detail": "User <username> deleted successfully"}
  - 404: NOT_FOUND: Record already gone
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	user, ok := callerOrFail(writer, request)
	if !ok {
		return
	}

	result, err := handler.accountService.DeleteAccount(request.Context(), user.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// # Payload Parsing

/*
parseChanges builds a presence-aware change set from raw body members.

Absent and null members are skipped. Unknown members are ignored.

Returns:
  - auth.Changes: Fields to apply
  - error: VALIDATION_ERROR listing every rejected member
*/
func parseChanges(fields map[string]json.RawMessage, current *auth.User) (auth.Changes, error) {
	var changes auth.Changes
	validator := &validate.Validator{}

	if email, present, ok := optionalString(fields, auth.FieldEmail); !ok {
		validator.Custom(auth.FieldEmail, true, "Must be a string or null")
	} else if present {
		validator.Email(auth.FieldEmail, email).
			MaxLen(auth.FieldEmail, email, auth.MaxProfileFieldLength)
		changes.Email = &email
	}

	if name, present, ok := optionalString(fields, auth.FieldName); !ok {
		validator.Custom(auth.FieldName, true, "Must be a string or null")
	} else if present {
		validator.MaxLen(auth.FieldName, name, auth.MaxProfileFieldLength)
		changes.Name = &name
	}

	if username, present, ok := optionalString(fields, auth.FieldUsername); !ok || (present && username != current.Username) {
		validator.Custom(auth.FieldUsername, true, auth.MessageUsernameImmutable)
	}

	if raw, present := fields[auth.FieldDisabled]; present && !isNull(raw) {
		var disabled bool
		if err := json.Unmarshal(raw, &disabled); err != nil || disabled != current.Disabled {
			validator.Custom(auth.FieldDisabled, true, auth.MessageDisabledReadOnly)
		}
	}

	if err := validator.Err(); err != nil {
		return auth.Changes{}, err
	}

	return changes, nil
}

// optionalString decodes a nullable string member. present is false for
// absent or null members; ok is false when the member is not a string.
func optionalString(fields map[string]json.RawMessage, name string) (value string, present bool, ok bool) {
	raw, found := fields[name]
	if !found || isNull(raw) {
		return "", false, true
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false, false
	}
	return value, true, true
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

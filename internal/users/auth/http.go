// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/usergate/internal/platform/constants"
	requestutil "github.com/taibuivan/usergate/internal/platform/request"
	"github.com/taibuivan/usergate/internal/platform/respond"
	"github.com/taibuivan/usergate/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the login endpoint.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST / : Exchanges credentials for a bearer token (mounted at /login).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.login)

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

/*
Login authenticates a user and returns an access token.

POST /login/

Description: Accepts the OAuth2 password form (application/x-www-form-urlencoded)
or the same fields as a JSON object.

Request:
  - Body: username, password

Response:
  - 200: {access_token, token_type}
  - 400: VALIDATION_ERROR: Missing fields or unreadable body
  - 401: INVALID_CREDENTIALS: Unknown user or wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if requestutil.IsJSON(request) {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	} else {
		if err := requestutil.ParseForm(writer, request); err != nil {
			respond.Error(writer, request, err)
			return
		}
		input.Username = request.PostForm.Get(FieldUsername)
		input.Password = request.PostForm.Get(FieldPassword)
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	accessToken, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Cache-Control", "no-store")
	respond.OK(writer, tokenResponse{
		AccessToken: accessToken,
		TokenType:   constants.TokenType,
	})
}

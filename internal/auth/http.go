// Copyright (c) 2026 Inkpress. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkpress/inkpress/internal/platform/request"
	"github.com/inkpress/inkpress/internal/platform/respond"
	"github.com/inkpress/inkpress/internal/platform/schema"
)

// FieldLogin is the sign-in body field accepting either an email address or a
// username.
const FieldLogin = "emailOrUsername"

// Handler implements the /sign-in endpoint.
type Handler struct {
	service *Service

	signInSchema *schema.Schema
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,

		signInSchema: &schema.Schema{
			Body: []schema.Field{
				{Name: FieldLogin, Min: 1, Max: 254, Required: true},
				schema.PasswordField().Require(),
			},
		},
	}
}

// Routes returns a [chi.Router] with the sessions endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.signIn)

	return router
}

// signIn handles POST /sign-in.
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	values, err := requestutil.Validate(request, handler.signInSchema)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.SignIn(request.Context(), values.String(FieldLogin), values.String("password"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session, 1)
}

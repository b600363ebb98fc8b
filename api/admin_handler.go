package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/services"
)

type adminHandler struct {
	responder    Responder
	logger       zerolog.Logger
	auth         *services.AuthService
	maxBodyBytes int64
}

func newAdminHandler(auth *services.AuthService, maxBodyBytes int64) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		auth:         auth,
		maxBodyBytes: maxBodyBytes,
	}
}

// register creates an admin account
// @Summary Register admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param credentials body services.Credentials true "Email and password (min 6 characters)"
// @Success 201 {object} SuccessResponse "Session for the new admin"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid credentials payload"
// @Failure 409 {object} ErrorResponse "Conflict - Admin already exists"
// @Router /admin/register [post]
func (h adminHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds services.Credentials
		if err := decodeValid(w, r, h.maxBodyBytes, &creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.auth.Register(r.Context(), creds)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusCreated, "Admin registered successfully", session)
	}
}

// login issues a token for valid admin credentials
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param credentials body services.Credentials true "Email and password"
// @Success 200 {object} SuccessResponse "Session"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid credentials payload"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid email or password"
// @Router /admin/login [post]
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds services.Credentials
		if err := decodeValid(w, r, h.maxBodyBytes, &creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.auth.Login(r.Context(), creds)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "Login successful", session)
	}
}

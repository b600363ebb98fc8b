package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/services"
)

type emailHandler struct {
	responder    Responder
	logger       zerolog.Logger
	contacts     *services.ContactService
	maxBodyBytes int64
}

func newEmailHandler(contacts *services.ContactService, maxBodyBytes int64) emailHandler {
	logger := log.With().Str("handlerName", "emailHandler").Logger()

	return emailHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		contacts:     contacts,
		maxBodyBytes: maxBodyBytes,
	}
}

// sendContactRequest accepts a contact form submission
// @Summary Submit contact form
// @Description Stores the request and notifies the admin in the background; notification failures do not fail the request
// @Tags Email
// @Accept json
// @Produce json
// @Param request body services.ContactInput true "Name, email and description"
// @Success 200 {object} SuccessResponse "id, status and createdAt of the stored request"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing field or invalid email"
// @Router /email/send [post]
func (h emailHandler) sendContactRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ContactInput
		if err := decodeValid(w, r, h.maxBodyBytes, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		receipt, err := h.contacts.Submit(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "Request sent successfully", receipt)
	}
}

// listContactRequests retrieves stored contact requests
// @Summary List contact requests
// @Tags Email
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} SuccessResponse "Contact requests with pagination"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /email/requests [get]
func (h emailHandler) listContactRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		requests, pagination, err := h.contacts.List(r.Context(), page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, requests, pagination)
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

const internalErrorMessage = "Internal server error"

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON marshals data before touching the response so a marshal failure
// can still produce a clean 500.
func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteData(w http.ResponseWriter, status int, message string, data any) {
	r.WriteJSON(w, status, SuccessResponse{Success: true, Message: message, Data: data})
}

func (r Responder) WritePage(w http.ResponseWriter, data any, pagination models.Pagination) {
	r.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data, Pagination: &pagination})
}

func (r Responder) WriteMessage(w http.ResponseWriter, status int, message string) {
	r.WriteJSON(w, status, ErrorResponse{Success: status < 400, Message: message})
}

// WriteError maps an ApiErr to its status and envelope. Anything else, and any
// 5xx ApiErr, is logged and reported as a generic internal error.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteMessage(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().
			Int("status", apiErr.StatusCode).
			Str("error", apiErr.GetFullError()).
			Msg("request failed")
		message := internalErrorMessage
		if apiErr.StatusCode == http.StatusServiceUnavailable {
			message = "Service unavailable"
		}
		r.WriteMessage(w, apiErr.StatusCode, message)
		return
	}

	r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{
		Success: false,
		Message: apiErr.Message(),
		Errors:  apiErr.Fields,
	})
}

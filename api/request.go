package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
	"github.com/rpupo63/artist-portfolio-backend/validation"
)

const defaultMaxBodyBytes int64 = 10 << 20

var errBodyRequired = errs.NewBadRequestError("request body is required")

// payload is a request body that trims itself before validation.
type payload interface {
	Normalize()
}

// decodeValid reads a JSON body of at most maxBytes into dst, normalizes it and
// checks its validate tags. Every violated rule is reported at once.
func decodeValid(w http.ResponseWriter, r *http.Request, maxBytes int64, dst payload) error {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxBytes)
		case errors.Is(err, io.EOF):
			return errBodyRequired
		default:
			return errs.NewInvalidJSONError(err)
		}
	}
	// A literal null would leave dst untouched and pass as an empty patch.
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errBodyRequired
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}

	dst.Normalize()
	return validation.Check(dst)
}

// pageQuery is the pagination part of a listing query string.
type pageQuery struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=100"`
}

// parsePage reads page and limit, defaulting to 1 and 10. Non-numeric or
// out-of-range values are rejected rather than clamped.
func parsePage(r *http.Request) (models.Page, error) {
	q := pageQuery{Page: models.DefaultPage, Limit: models.DefaultLimit}

	for _, param := range []struct {
		name string
		dst  *int
	}{{"page", &q.Page}, {"limit", &q.Limit}} {
		raw := strings.TrimSpace(r.URL.Query().Get(param.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, errs.NewInvalidFieldError(param.name, param.name+" must be an integer")
		}
		*param.dst = n
	}

	if err := validation.Check(&q); err != nil {
		return models.Page{}, err
	}
	return models.NewPage(q.Page, q.Limit), nil
}

// pathID reads a UUID path parameter and returns it in canonical form.
func pathID(r *http.Request, param string) (string, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return "", errs.NewBadRequestError("missing " + param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errs.NewBadRequestError("invalid " + param)
	}
	return id.String(), nil
}

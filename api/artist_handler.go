package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/services"
)

type artistHandler struct {
	responder    Responder
	logger       zerolog.Logger
	artists      *services.ArtistService
	maxBodyBytes int64
}

func newArtistHandler(artists *services.ArtistService, maxBodyBytes int64) artistHandler {
	logger := log.With().Str("handlerName", "artistHandler").Logger()

	return artistHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		artists:      artists,
		maxBodyBytes: maxBodyBytes,
	}
}

// listArtists retrieves a page of active artists
// @Summary List artists
// @Description Retrieves active artists, newest first
// @Tags Artists
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} SuccessResponse "Artists with pagination"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid page or limit"
// @Router /artists [get]
func (h artistHandler) listArtists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artists, pagination, err := h.artists.List(r.Context(), page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, artists, pagination)
	}
}

// searchArtists searches active artists by name
// @Summary Search artists
// @Description Case-insensitive substring match on the artist name, at most 20 results
// @Tags Artists
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} SuccessResponse "Matching artists"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing search term"
// @Router /artists/search [get]
func (h artistHandler) searchArtists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artists, err := h.artists.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "", artists)
	}
}

// getArtist retrieves an active artist by ID
// @Summary Get artist
// @Tags Artists
// @Produce json
// @Param artistID path string true "Artist ID" format(uuid)
// @Success 200 {object} SuccessResponse "Artist details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid artistID"
// @Failure 404 {object} ErrorResponse "Not Found - Artist not found"
// @Router /artists/{artistID} [get]
func (h artistHandler) getArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := pathID(r, "artistID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artist, err := h.artists.GetByID(r.Context(), artistID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "", artist)
	}
}

// createArtist creates a new artist
// @Summary Create artist
// @Tags Artists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param artist body services.ArtistInput true "Artist data"
// @Success 201 {object} SuccessResponse "Created artist"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid artist data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /artists [post]
func (h artistHandler) createArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ArtistInput
		if err := decodeValid(w, r, h.maxBodyBytes, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artist, err := h.artists.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusCreated, "Artist created successfully", artist)
	}
}

// updateArtist updates an active artist
// @Summary Update artist
// @Description Only the fields present in the body are changed
// @Tags Artists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param artistID path string true "Artist ID" format(uuid)
// @Param artist body services.ArtistPatch true "Fields to update"
// @Success 200 {object} SuccessResponse "Updated artist"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid artist data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Artist not found"
// @Router /artists/{artistID} [put]
func (h artistHandler) updateArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := pathID(r, "artistID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch services.ArtistPatch
		if err := decodeValid(w, r, h.maxBodyBytes, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artist, err := h.artists.Update(r.Context(), artistID, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "Artist updated successfully", artist)
	}
}

// deleteArtist soft-deletes an artist
// @Summary Delete artist
// @Description Marks the artist inactive. Deleting twice returns 404.
// @Tags Artists
// @Produce json
// @Security BearerAuth
// @Param artistID path string true "Artist ID" format(uuid)
// @Success 200 {object} SuccessResponse "Artist deleted"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid artistID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Artist not found"
// @Router /artists/{artistID} [delete]
func (h artistHandler) deleteArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := pathID(r, "artistID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.artists.Delete(r.Context(), artistID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if admin, ok := adminFromContext(r.Context()); ok {
			h.logger.Info().Str("artistID", artistID).Str("adminID", admin.ID).Msg("artist deleted")
		}
		h.responder.WriteData(w, http.StatusOK, "Artist deleted successfully", deletedResource{ID: artistID})
	}
}

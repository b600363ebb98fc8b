package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
	"github.com/rpupo63/artist-portfolio-backend/services"
	"github.com/rpupo63/artist-portfolio-backend/validation"
)

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projects     *services.ProjectService
	maxBodyBytes int64
}

func newProjectHandler(projects *services.ProjectService, maxBodyBytes int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projects:     projects,
		maxBodyBytes: maxBodyBytes,
	}
}

// projectFilterQuery is the filter part of the project listing query string.
type projectFilterQuery struct {
	Category string `json:"category" validate:"omitempty,oneof=concert festival album single"`
}

func parseProjectFilter(r *http.Request) (models.ProjectFilter, error) {
	q := r.URL.Query()
	query := projectFilterQuery{Category: strings.ToLower(strings.TrimSpace(q.Get("category")))}
	if err := validation.Check(&query); err != nil {
		return models.ProjectFilter{}, err
	}

	filter := models.ProjectFilter{Category: models.Category(query.Category)}
	if raw := strings.TrimSpace(q.Get("artistId")); raw != "" {
		artistID, err := uuid.Parse(raw)
		if err != nil {
			return models.ProjectFilter{}, errs.NewBadRequestError("invalid artistId")
		}
		filter.ArtistID = artistID.String()
	}
	return filter, nil
}

// listProjects retrieves a page of active projects
// @Summary List projects
// @Description Retrieves active projects, latest datetime first, optionally filtered by category and artist
// @Tags Projects
// @Produce json
// @Param category query string false "Category" Enums(concert, festival, album, single)
// @Param artistId query string false "Artist ID" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} SuccessResponse "Projects with pagination"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid filter or page"
// @Router /projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseProjectFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := parsePage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, pagination, err := h.projects.List(r.Context(), filter, page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, projects, pagination)
	}
}

// searchProjects searches active projects
// @Summary Search projects
// @Description Case-insensitive match on title, description and tags, at most 20 results
// @Tags Projects
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} SuccessResponse "Matching projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing search term"
// @Router /projects/search [get]
func (h projectHandler) searchProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "", projects)
	}
}

// listProjectsByCategory retrieves every active project of one category
// @Summary List projects by category
// @Tags Projects
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} SuccessResponse "Projects of the category"
// @Router /projects/category/{category} [get]
func (h projectHandler) listProjectsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := models.Category(strings.ToLower(chi.URLParam(r, "category")))

		projects, err := h.projects.ListByCategory(r.Context(), category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "", projects)
	}
}

// getProject retrieves an active project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} SuccessResponse "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.GetByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "", project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description The referenced artist must exist and be active
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body services.ProjectInput true "Project data"
// @Success 201 {object} SuccessResponse "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Artist not found"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ProjectInput
		if err := decodeValid(w, r, h.maxBodyBytes, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusCreated, "Project created successfully", project)
	}
}

// updateProject updates an active project
// @Summary Update project
// @Description Only the fields present in the body are changed; a new artist must be active
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body services.ProjectPatch true "Fields to update"
// @Success 200 {object} SuccessResponse "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project or artist not found"
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch services.ProjectPatch
		if err := decodeValid(w, r, h.maxBodyBytes, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Update(r.Context(), projectID, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "Project updated successfully", project)
	}
}

// deleteProject soft-deletes a project
// @Summary Delete project
// @Description Marks the project inactive. Deleting twice returns 404.
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} SuccessResponse "Project deleted"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, "Project deleted successfully", deletedResource{ID: projectID})
	}
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
	"github.com/rpupo63/artist-portfolio-backend/validation"
)

// ProjectInput is the payload of a project create.
type ProjectInput struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required,min=10"`
	CoverPhoto  string   `json:"coverPhoto" validate:"required,imageurl"`
	Datetime    string   `json:"datetime" validate:"required,isodate"`
	Category    string   `json:"category" validate:"required,oneof=concert festival album single"`
	Tags        []string `json:"tags" validate:"required,min=1,dive,required"`
	ImageURLs   []string `json:"image_urls" validate:"required,len=5,dive,imageurl"`
	Artist      string   `json:"artist" validate:"required,uuid"`
	Status      string   `json:"status" validate:"omitempty,oneof=pending reviewed approved rejected"`
}

func (in *ProjectInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.CoverPhoto = strings.TrimSpace(in.CoverPhoto)
	in.Datetime = strings.TrimSpace(in.Datetime)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Artist = strings.TrimSpace(in.Artist)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	trimAll(in.Tags)
	trimAll(in.ImageURLs)
}

// ProjectPatch is the payload of a project update; nil fields are left unchanged.
type ProjectPatch struct {
	Title       *string   `json:"title" validate:"omitnil,min=3,max=200"`
	Description *string   `json:"description" validate:"omitnil,min=10"`
	CoverPhoto  *string   `json:"coverPhoto" validate:"omitnil,imageurl"`
	Datetime    *string   `json:"datetime" validate:"omitnil,isodate"`
	Category    *string   `json:"category" validate:"omitnil,oneof=concert festival album single"`
	Tags        *[]string `json:"tags" validate:"omitnil,min=1,dive,required"`
	ImageURLs   *[]string `json:"image_urls" validate:"omitnil,len=5,dive,imageurl"`
	Artist      *string   `json:"artist" validate:"omitnil,uuid"`
	Status      *string   `json:"status" validate:"omitnil,oneof=pending reviewed approved rejected"`
}

func (p *ProjectPatch) Normalize() {
	trimPtr(p.Title)
	trimPtr(p.Description)
	trimPtr(p.CoverPhoto)
	trimPtr(p.Datetime)
	trimPtr(p.Artist)
	if p.Category != nil {
		*p.Category = strings.ToLower(strings.TrimSpace(*p.Category))
	}
	if p.Status != nil {
		*p.Status = strings.ToLower(strings.TrimSpace(*p.Status))
	}
	if p.Tags != nil {
		trimAll(*p.Tags)
	}
	if p.ImageURLs != nil {
		trimAll(*p.ImageURLs)
	}
}

func trimAll(values []string) {
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
}

type ProjectService struct {
	projects database.ProjectRepository
	artists  database.ArtistRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewProjectService(projects database.ProjectRepository, artists database.ArtistRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		artists:  artists,
		logger:   log.With().Str("service", "projectService").Logger(),
		now:      time.Now,
	}
}

// requireActiveArtist fails with "artist not found" unless id names an active artist.
func (s *ProjectService) requireActiveArtist(ctx context.Context, id string) (*models.Artist, error) {
	artist, err := s.artists.FindActiveByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "artist", err)
	}
	if artist == nil {
		return nil, errs.NewNotFound("artist")
	}
	return artist, nil
}

func parseDatetime(value string) (time.Time, error) {
	t, err := validation.ParseDate(value)
	if err != nil {
		return time.Time{}, errs.NewInvalidFieldError("datetime", "datetime must be a valid ISO 8601 date")
	}
	return t, nil
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	artist, err := s.requireActiveArtist(ctx, in.Artist)
	if err != nil {
		return nil, err
	}

	datetime, err := parseDatetime(in.Datetime)
	if err != nil {
		return nil, err
	}

	status := models.ProjectStatus(in.Status)
	if status == "" {
		status = models.ProjectStatusPending
	}

	now := s.now()
	project := &models.Project{
		Title:       in.Title,
		Description: in.Description,
		CoverPhoto:  in.CoverPhoto,
		Datetime:    datetime,
		Category:    models.Category(in.Category),
		Tags:        in.Tags,
		ImageURLs:   in.ImageURLs,
		ArtistID:    artist.ID,
		Status:      status,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	project.Artist = artist.Summary()
	s.logger.Info().Str("projectID", project.ID).Str("artistID", artist.ID).Msg("project created")
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]*models.Project, models.Pagination, error) {
	projects, total, err := s.projects.ListActive(ctx, filter, page)
	if err != nil {
		return nil, models.Pagination{}, errs.NewDatabaseError("list", "projects", err)
	}
	if err := s.populate(ctx, projects...); err != nil {
		return nil, models.Pagination{}, err
	}
	return projects, models.NewPagination(page, total), nil
}

func (s *ProjectService) ListByCategory(ctx context.Context, category models.Category) ([]*models.Project, error) {
	projects, err := s.projects.FindActive(ctx, models.ProjectFilter{Category: category})
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	if err := s.populate(ctx, projects...); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) find(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projects.FindActiveByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	project, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Artist != nil && *patch.Artist != project.ArtistID {
		artist, err := s.requireActiveArtist(ctx, *patch.Artist)
		if err != nil {
			return nil, err
		}
		project.ArtistID = artist.ID
	}
	if patch.Datetime != nil {
		datetime, err := parseDatetime(*patch.Datetime)
		if err != nil {
			return nil, err
		}
		project.Datetime = datetime
	}
	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.CoverPhoto != nil {
		project.CoverPhoto = *patch.CoverPhoto
	}
	if patch.Category != nil {
		project.Category = models.Category(*patch.Category)
	}
	if patch.Tags != nil {
		project.Tags = *patch.Tags
	}
	if patch.ImageURLs != nil {
		project.ImageURLs = *patch.ImageURLs
	}
	if patch.Status != nil {
		project.Status = models.ProjectStatus(*patch.Status)
	}
	project.UpdatedAt = s.now()

	matched, err := s.projects.Update(ctx, project)
	if err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	if !matched {
		return nil, errs.NewNotFound("project")
	}

	if err := s.populate(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete soft-deletes an active project. A second delete reports not found.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	matched, err := s.projects.Deactivate(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	if !matched {
		return errs.NewNotFound("project")
	}

	s.logger.Info().Str("projectID", id).Msg("project deactivated")
	return nil
}

func (s *ProjectService) Search(ctx context.Context, term string) ([]*models.Project, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errs.NewMissingRequiredFieldError("q")
	}

	projects, err := s.projects.SearchActive(ctx, term, SearchLimit)
	if err != nil {
		return nil, errs.NewDatabaseError("search", "projects", err)
	}
	if err := s.populate(ctx, projects...); err != nil {
		return nil, err
	}
	return projects, nil
}

// populate attaches the artist summary to each project with one batched lookup.
// Artists deleted after the project was written still resolve.
func (s *ProjectService) populate(ctx context.Context, projects ...*models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(projects))
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.ArtistID]; !ok {
			seen[p.ArtistID] = struct{}{}
			ids = append(ids, p.ArtistID)
		}
	}

	artists, err := s.artists.FindByIDs(ctx, ids)
	if err != nil {
		return errs.NewDatabaseError("find", "artists", err)
	}
	byID := make(map[string]*models.Artist, len(artists))
	for _, a := range artists {
		byID[a.ID] = a
	}

	for _, p := range projects {
		if artist, ok := byID[p.ArtistID]; ok {
			p.Artist = artist.Summary()
		} else {
			p.Artist = &models.ArtistSummary{ID: p.ArtistID}
		}
	}
	return nil
}

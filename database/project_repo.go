package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func (r *ProjectRepo) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Project{}).Where("is_active = ?", true)
}

func (r *ProjectRepo) filtered(ctx context.Context, filter models.ProjectFilter) *gorm.DB {
	q := r.active(ctx)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.ArtistID != "" {
		q = q.Where("artist_id = ?", filter.ArtistID)
	}
	return q
}

func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepo) FindActiveByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.active(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) ListActive(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]*models.Project, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []*models.Project{}
	err := r.filtered(ctx, filter).
		Order("datetime DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepo) FindActive(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	projects := []*models.Project{}
	err := r.filtered(ctx, filter).Order("datetime DESC").Find(&projects).Error
	return projects, err
}

// SearchActive matches title, description or any tag, case-insensitively.
func (r *ProjectRepo) SearchActive(ctx context.Context, term string, limit int) ([]*models.Project, error) {
	pattern := likePattern(term)
	projects := []*models.Project{}
	err := r.active(ctx).
		Where("(title ILIKE ? OR description ILIKE ? OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag ILIKE ?))",
			pattern, pattern, pattern).
		Order("datetime DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) (bool, error) {
	res := r.active(ctx).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"title":       project.Title,
			"description": project.Description,
			"cover_photo": project.CoverPhoto,
			"datetime":    project.Datetime,
			"category":    project.Category,
			"tags":        project.Tags,
			"image_urls":  project.ImageURLs,
			"artist_id":   project.ArtistID,
			"status":      project.Status,
			"updated_at":  project.UpdatedAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *ProjectRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	res := r.active(ctx).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

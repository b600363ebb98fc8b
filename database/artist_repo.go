package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

type ArtistRepo struct {
	db *gorm.DB
}

func NewArtistRepo(db *gorm.DB) *ArtistRepo {
	return &ArtistRepo{db}
}

// active starts a fresh query restricted to active artists.
func (r *ArtistRepo) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Artist{}).Where("is_active = ?", true)
}

func (r *ArtistRepo) Create(ctx context.Context, artist *models.Artist) error {
	return r.db.WithContext(ctx).Create(artist).Error
}

func (r *ArtistRepo) FindActiveByID(ctx context.Context, id string) (*models.Artist, error) {
	var artist models.Artist
	err := r.active(ctx).Where("id = ?", id).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// FindByIDs ignores the lifecycle; it backs the artist summary on projects.
func (r *ArtistRepo) FindByIDs(ctx context.Context, ids []string) ([]*models.Artist, error) {
	artists := []*models.Artist{}
	if len(ids) == 0 {
		return artists, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&artists).Error
	return artists, err
}

func (r *ArtistRepo) ListActive(ctx context.Context, page models.Page) ([]*models.Artist, int64, error) {
	var total int64
	if err := r.active(ctx).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	artists := []*models.Artist{}
	err := r.active(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&artists).Error
	return artists, total, err
}

func (r *ArtistRepo) SearchActive(ctx context.Context, term string, limit int) ([]*models.Artist, error) {
	artists := []*models.Artist{}
	err := r.active(ctx).
		Where("name ILIKE ?", likePattern(term)).
		Order("created_at DESC").
		Limit(limit).
		Find(&artists).Error
	return artists, err
}

func (r *ArtistRepo) Update(ctx context.Context, artist *models.Artist) (bool, error) {
	res := r.active(ctx).
		Where("id = ?", artist.ID).
		Updates(map[string]interface{}{
			"name":       artist.Name,
			"photo_url":  artist.PhotoURL,
			"smart_link": artist.SmartLink,
			"updated_at": artist.UpdatedAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *ArtistRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	res := r.active(ctx).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

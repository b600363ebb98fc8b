package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

type ContactRequestRepo struct {
	db *gorm.DB
}

func NewContactRequestRepo(db *gorm.DB) *ContactRequestRepo {
	return &ContactRequestRepo{db}
}

func (r *ContactRequestRepo) Create(ctx context.Context, request *models.ContactRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *ContactRequestRepo) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.ContactRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *ContactRequestRepo) List(ctx context.Context, page models.Page) ([]*models.ContactRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ContactRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	requests := []*models.ContactRequest{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&requests).Error
	return requests, total, err
}

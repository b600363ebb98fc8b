package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// Create relies on the unique email index; a duplicate surfaces as a "duplicate key" error.
func (r *AdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *AdminRepo) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *AdminRepo) findOne(ctx context.Context, query string, arg interface{}) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where(query, arg).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

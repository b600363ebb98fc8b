package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is an operator allowed to mutate artists and projects
type Admin struct {
	ID           string    `json:"id" bson:"_id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Email        string    `json:"email" bson:"email" gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" bson:"password" gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt" gorm:"column:updated_at;not null"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artist is a performer or act shown in the portfolio
type Artist struct {
	ID        string    `json:"id" bson:"_id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Name      string    `json:"name" bson:"name" gorm:"column:name;type:text;not null;index"`
	PhotoURL  string    `json:"photoUrl" bson:"photoUrl" gorm:"column:photo_url;type:text;not null"`
	SmartLink string    `json:"smartLink" bson:"smartLink" gorm:"column:smart_link;type:text;not null"`
	IsActive  bool      `json:"isActive" bson:"isActive" gorm:"column:is_active;not null;index"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" gorm:"column:created_at;not null;index"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" gorm:"column:updated_at;not null"`
}

func (Artist) TableName() string {
	return "artists"
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Artist) Lifecycle() Lifecycle {
	return LifecycleOf(a.IsActive)
}

// Summary is the shallow view embedded into projects.
func (a *Artist) Summary() *ArtistSummary {
	return &ArtistSummary{
		ID:        a.ID,
		Name:      a.Name,
		PhotoURL:  a.PhotoURL,
		SmartLink: a.SmartLink,
	}
}

// ArtistSummary is the artist reference populated on project reads
type ArtistSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	SmartLink string `json:"smartLink,omitempty"`
}

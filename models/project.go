package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryConcert  Category = "concert"
	CategoryFestival Category = "festival"
	CategoryAlbum    Category = "album"
	CategorySingle   Category = "single"
)

type ProjectStatus string

const (
	ProjectStatusPending  ProjectStatus = "pending"
	ProjectStatusReviewed ProjectStatus = "reviewed"
	ProjectStatusApproved ProjectStatus = "approved"
	ProjectStatusRejected ProjectStatus = "rejected"
)

// ProjectImageCount is the number of gallery images every project carries.
const ProjectImageCount = 5

// Project represents a portfolio entry (event or release) owned by one artist
type Project struct {
	ID          string                      `json:"id" bson:"_id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" bson:"title" gorm:"column:title;type:text;not null"`
	Description string                      `json:"description" bson:"description" gorm:"column:description;type:text;not null"`
	CoverPhoto  string                      `json:"coverPhoto" bson:"coverPhoto" gorm:"column:cover_photo;type:text;not null"`
	Datetime    time.Time                   `json:"datetime" bson:"datetime" gorm:"column:datetime;not null;index"`
	Category    Category                    `json:"category" bson:"category" gorm:"column:category;type:text;not null;index"`
	Tags        datatypes.JSONSlice[string] `json:"tags" bson:"tags" gorm:"column:tags;type:jsonb;not null"`
	ImageURLs   datatypes.JSONSlice[string] `json:"image_urls" bson:"image_urls" gorm:"column:image_urls;type:jsonb;not null"`
	ArtistID    string                      `json:"-" bson:"artist" gorm:"column:artist_id;type:uuid;not null;index"`
	Status      ProjectStatus               `json:"status" bson:"status" gorm:"column:status;type:text;not null;default:pending"`
	IsActive    bool                        `json:"isActive" bson:"isActive" gorm:"column:is_active;not null;index"`
	CreatedAt   time.Time                   `json:"createdAt" bson:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt   time.Time                   `json:"updatedAt" bson:"updatedAt" gorm:"column:updated_at;not null"`

	// Artist is populated by the service layer, never stored.
	Artist *ArtistSummary `json:"artist" bson:"-" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Project) Lifecycle() Lifecycle {
	return LifecycleOf(p.IsActive)
}

// ProjectFilter narrows project listings; empty fields are ignored and
// set fields combine conjunctively.
type ProjectFilter struct {
	Category Category
	ArtistID string
}

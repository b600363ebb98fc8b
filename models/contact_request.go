package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactStatusPending ContactStatus = "pending"
	ContactStatusSent    ContactStatus = "sent"
	ContactStatusFailed  ContactStatus = "failed"
)

// ContactRequest is a submission of the public contact form
type ContactRequest struct {
	ID          string        `json:"id" bson:"_id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Name        string        `json:"name" bson:"name" gorm:"column:name;type:text;not null"`
	Email       string        `json:"email" bson:"email" gorm:"column:email;type:text;not null;index"`
	Description string        `json:"description" bson:"description" gorm:"column:description;type:text;not null"`
	Status      ContactStatus `json:"status" bson:"status" gorm:"column:status;type:text;not null;default:pending"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt" gorm:"column:created_at;not null;index"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt" gorm:"column:updated_at;not null"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}

func (c *ContactRequest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

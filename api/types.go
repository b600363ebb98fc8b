package api

import (
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	artistHandler  artistHandler
	projectHandler projectHandler
	adminHandler   adminHandler
	emailHandler   emailHandler
	healthHandler  healthHandler
}

// SuccessResponse is the body of every successful API response
// @Description Success response structure
type SuccessResponse struct {
	Success    bool               `json:"success" example:"true"`
	Message    string             `json:"message,omitempty" example:"Artist created successfully"`
	Data       any                `json:"data"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Success bool              `json:"success" example:"false"`
	Message string            `json:"message" example:"artist not found"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status    string  `json:"status" example:"OK"`
	Uptime    float64 `json:"uptime"`
	Database  string  `json:"database" example:"connected"`
	Timestamp string  `json:"timestamp"`
}

type deletedResource struct {
	ID string `json:"id"`
}

package database

import (
	"context"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

// ArtistRepository stores artists. Every read except FindByIDs only sees
// records whose lifecycle is active. Missing records are reported as (nil, nil).
type ArtistRepository interface {
	Create(ctx context.Context, artist *models.Artist) error
	FindActiveByID(ctx context.Context, id string) (*models.Artist, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Artist, error)
	ListActive(ctx context.Context, page models.Page) ([]*models.Artist, int64, error)
	SearchActive(ctx context.Context, term string, limit int) ([]*models.Artist, error)
	// Update writes the mutable fields of an active artist and reports whether one matched.
	Update(ctx context.Context, artist *models.Artist) (bool, error)
	// Deactivate atomically moves an active artist to deleted and reports whether one matched.
	Deactivate(ctx context.Context, id string) (bool, error)
}

// ProjectRepository stores projects; reads only see active projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindActiveByID(ctx context.Context, id string) (*models.Project, error)
	ListActive(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]*models.Project, int64, error)
	FindActive(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error)
	SearchActive(ctx context.Context, term string, limit int) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type ContactRequestRepository interface {
	Create(ctx context.Context, request *models.ContactRequest) error
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error
	List(ctx context.Context, page models.Page) ([]*models.ContactRequest, int64, error)
}

// Database groups the repositories of one backend.
type Database struct {
	artistRepo         ArtistRepository
	projectRepo        ProjectRepository
	adminRepo          AdminRepository
	contactRequestRepo ContactRequestRepository
	ping               func(ctx context.Context) error
	close              func(ctx context.Context) error
}

// Accessor methods for each repository

func (d Database) ArtistRepo() ArtistRepository {
	return d.artistRepo
}

func (d Database) ProjectRepo() ProjectRepository {
	return d.projectRepo
}

func (d Database) AdminRepo() AdminRepository {
	return d.adminRepo
}

func (d Database) ContactRequestRepo() ContactRequestRepository {
	return d.contactRequestRepo
}

// Ping checks that the backend is reachable.
func (d Database) Ping(ctx context.Context) error {
	if d.ping == nil {
		return nil
	}
	return d.ping(ctx)
}

func (d Database) Close(ctx context.Context) error {
	if d.close == nil {
		return nil
	}
	return d.close(ctx)
}

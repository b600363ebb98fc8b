package api

import (
	"time"

	"github.com/rpupo63/artist-portfolio-backend/auth"
	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

// initializeHandlers creates the services over one database and the handlers serving them.
// The auth service is returned as well because the admin-only groups need it.
func initializeHandlers(db database.Database, cfg config.Config, contacts *services.ContactService, startupTime time.Time) (*routeHandlers, *services.AuthService) {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	authService := services.NewAuthService(db.AdminRepo(), tokens, cfg.Auth.BcryptCost)

	maxBody := cfg.Server.MaxBodyBytes

	return &routeHandlers{
		artistHandler:  newArtistHandler(services.NewArtistService(db.ArtistRepo()), maxBody),
		projectHandler: newProjectHandler(services.NewProjectService(db.ProjectRepo(), db.ArtistRepo()), maxBody),
		adminHandler:   newAdminHandler(authService, maxBody),
		emailHandler:   newEmailHandler(contacts, maxBody),
		healthHandler:  newHealthHandler(db, startupTime),
	}, authService
}

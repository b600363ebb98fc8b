package api

import (
	"context"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

type keyType string

const adminKey keyType = "admin"

// ctxWithAdmin adds the authenticated admin to the context
func ctxWithAdmin(ctx context.Context, admin *models.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// adminFromContext retrieves the authenticated admin, if any
func adminFromContext(ctx context.Context) (*models.Admin, bool) {
	admin, ok := ctx.Value(adminKey).(*models.Admin)
	return admin, ok && admin != nil
}

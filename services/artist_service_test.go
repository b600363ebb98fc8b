package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

func newArtistInput(name string) ArtistInput {
	return ArtistInput{
		Name:      name,
		PhotoURL:  "https://x.com/a.jpg",
		SmartLink: "https://sp.com/a",
	}
}

func strPtr(s string) *string { return &s }

func TestArtistCreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(database.NewMemory().ArtistRepo())

	created, err := svc.Create(ctx, newArtistInput("A"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || !created.IsActive || created.CreatedAt.IsZero() {
		t.Fatalf("server fields not set: %+v", created)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "A" || got.PhotoURL != "https://x.com/a.jpg" || got.SmartLink != "https://sp.com/a" {
		t.Errorf("stored fields differ: %+v", got)
	}
}

func TestArtistDeleteIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(database.NewMemory().ArtistRepo())

	created, _ := svc.Create(ctx, newArtistInput("A"))
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, created.ID); !errs.IsNotFound(err) {
		t.Errorf("get after delete: expected not found, got %v", err)
	}
	err := svc.Delete(ctx, created.ID)
	if !errs.IsNotFound(err) || errs.StatusCode(err) != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, ArtistPatch{Name: strPtr("B")}); !errs.IsNotFound(err) {
		t.Errorf("update after delete: expected not found, got %v", err)
	}
}

func TestArtistUpdatePatchesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(database.NewMemory().ArtistRepo())
	created, _ := svc.Create(ctx, newArtistInput("A"))

	updated, err := svc.Update(ctx, created.ID, ArtistPatch{Name: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" || updated.PhotoURL != created.PhotoURL {
		t.Errorf("unexpected update result: %+v", updated)
	}
}

func TestArtistListPagination(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(database.NewMemory().ArtistRepo())
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		if _, err := svc.Create(ctx, newArtistInput(name)); err != nil {
			t.Fatal(err)
		}
	}

	artists, pagination, err := svc.List(ctx, models.NewPage(1, 10))
	if err != nil {
		t.Fatal(err)
	}
	if len(artists) != 10 || pagination.Total != 12 || pagination.Pages != 2 {
		t.Errorf("page 1: len=%d pagination=%+v", len(artists), pagination)
	}
	if artists[0].Name != "l" {
		t.Errorf("expected newest first, got %q", artists[0].Name)
	}

	beyond, _, err := svc.List(ctx, models.NewPage(5, 10))
	if err != nil || len(beyond) != 0 {
		t.Errorf("page beyond range: len=%d err=%v", len(beyond), err)
	}
}

func TestArtistSearch(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(database.NewMemory().ArtistRepo())
	svc.Create(ctx, newArtistInput("The Midnight"))
	svc.Create(ctx, newArtistInput("Daybreak"))

	for _, term := range []string{"", "   "} {
		_, err := svc.Search(ctx, term)
		if errs.StatusCode(err) != http.StatusBadRequest {
			t.Errorf("search %q: expected 400, got %v", term, err)
		}
	}

	found, err := svc.Search(ctx, "MIDNIGHT")
	if err != nil || len(found) != 1 || found[0].Name != "The Midnight" {
		t.Errorf("search: %v %v", found, err)
	}
}

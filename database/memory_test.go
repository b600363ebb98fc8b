package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

func seedArtist(t *testing.T, db Database, name string, createdAt time.Time) *models.Artist {
	t.Helper()
	artist := &models.Artist{
		Name:      name,
		PhotoURL:  "https://cdn.example.com/" + name + ".jpg",
		SmartLink: "https://links.example.com/" + name,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.ArtistRepo().Create(context.Background(), artist); err != nil {
		t.Fatalf("create artist: %v", err)
	}
	return artist
}

func TestMemoryArtistLifecycle(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()
	now := time.Now()

	older := seedArtist(t, db, "Older", now.Add(-time.Hour))
	newer := seedArtist(t, db, "Newer", now)

	artists, total, err := db.ArtistRepo().ListActive(ctx, models.NewPage(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(artists) != 2 {
		t.Fatalf("expected 2 artists, got total=%d len=%d", total, len(artists))
	}
	if artists[0].ID != newer.ID {
		t.Errorf("expected newest first, got %s", artists[0].Name)
	}

	ok, err := db.ArtistRepo().Deactivate(ctx, older.ID)
	if err != nil || !ok {
		t.Fatalf("first deactivate: ok=%v err=%v", ok, err)
	}
	ok, err = db.ArtistRepo().Deactivate(ctx, older.ID)
	if err != nil || ok {
		t.Fatalf("second deactivate should not match: ok=%v err=%v", ok, err)
	}

	got, err := db.ArtistRepo().FindActiveByID(ctx, older.ID)
	if err != nil || got != nil {
		t.Fatalf("deleted artist should be invisible, got %+v err=%v", got, err)
	}

	found, err := db.ArtistRepo().SearchActive(ctx, "older", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("search returned deleted artist")
	}

	_, total, _ = db.ArtistRepo().ListActive(ctx, models.NewPage(1, 10))
	if total != 1 {
		t.Errorf("expected 1 active artist, got %d", total)
	}

	// summaries still resolve deleted artists
	all, err := db.ArtistRepo().FindByIDs(ctx, []string{older.ID, newer.ID})
	if err != nil || len(all) != 2 {
		t.Fatalf("FindByIDs: len=%d err=%v", len(all), err)
	}

	ok, err = db.ArtistRepo().Update(ctx, &models.Artist{ID: older.ID, Name: "Renamed"})
	if err != nil || ok {
		t.Errorf("update of deleted artist should not match: ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoresCopies(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()
	artist := seedArtist(t, db, "Original", time.Now())

	artist.Name = "Mutated"
	got, _ := db.ArtistRepo().FindActiveByID(ctx, artist.ID)
	if got.Name != "Original" {
		t.Errorf("store shares memory with caller: %q", got.Name)
	}

	got.Name = "Mutated again"
	again, _ := db.ArtistRepo().FindActiveByID(ctx, artist.ID)
	if again.Name != "Original" {
		t.Errorf("returned record shares memory with store: %q", again.Name)
	}
}

func TestMemoryProjectFiltersAndSearch(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()
	now := time.Now()
	a := seedArtist(t, db, "A", now)
	b := seedArtist(t, db, "B", now)

	projects := []*models.Project{
		{Title: "Summer Fest", Category: models.CategoryFestival, ArtistID: a.ID, Datetime: now.Add(-48 * time.Hour), Tags: []string{"outdoor"}},
		{Title: "Live at Hall", Category: models.CategoryConcert, ArtistID: a.ID, Datetime: now.Add(-24 * time.Hour), Description: "An intimate night"},
		{Title: "Winter Fest", Category: models.CategoryFestival, ArtistID: b.ID, Datetime: now, Tags: []string{"Snow"}},
	}
	for _, p := range projects {
		p.IsActive = true
		if err := db.ProjectRepo().Create(ctx, p); err != nil {
			t.Fatalf("create project: %v", err)
		}
	}

	festivals, total, err := db.ProjectRepo().ListActive(ctx, models.ProjectFilter{Category: models.CategoryFestival}, models.NewPage(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || festivals[0].Title != "Winter Fest" {
		t.Fatalf("unexpected festivals: total=%d first=%q", total, festivals[0].Title)
	}

	both, _, _ := db.ProjectRepo().ListActive(ctx, models.ProjectFilter{Category: models.CategoryFestival, ArtistID: a.ID}, models.NewPage(1, 10))
	if len(both) != 1 || both[0].Title != "Summer Fest" {
		t.Errorf("filters should combine, got %d", len(both))
	}

	page2, total, _ := db.ProjectRepo().ListActive(ctx, models.ProjectFilter{}, models.NewPage(2, 2))
	if total != 3 || len(page2) != 1 || page2[0].Title != "Summer Fest" {
		t.Errorf("unexpected second page: total=%d len=%d", total, len(page2))
	}

	cases := map[string]int{"snow": 1, "INTIMATE": 1, "fest": 2, "nothing": 0}
	for term, want := range cases {
		found, err := db.ProjectRepo().SearchActive(ctx, term, 20)
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(found) != want {
			t.Errorf("search %q: expected %d results, got %d", term, want, len(found))
		}
	}

	limited, _ := db.ProjectRepo().SearchActive(ctx, "fest", 1)
	if len(limited) != 1 {
		t.Errorf("search limit ignored: %d", len(limited))
	}
}

func TestMemoryAdminDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()

	if err := db.AdminRepo().Create(ctx, &models.Admin{Email: "a@example.com"}); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	err := db.AdminRepo().Create(ctx, &models.Admin{Email: "a@example.com"})
	if err == nil || !strings.Contains(err.Error(), "duplicate key") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	admin, err := db.AdminRepo().FindByEmail(ctx, "a@example.com")
	if err != nil || admin == nil {
		t.Fatalf("FindByEmail: %v %v", admin, err)
	}
	missing, err := db.AdminRepo().FindByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for missing admin")
	}
}

func TestLikePattern(t *testing.T) {
	cases := map[string]string{
		"abc":    "%abc%",
		"50%":    `%50\%%`,
		"a_b":    `%a\_b%`,
		`back\s`: `%back\\s%`,
	}
	for in, want := range cases {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

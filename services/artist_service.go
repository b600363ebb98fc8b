package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

// SearchLimit caps the results of every search endpoint.
const SearchLimit = 20

// ArtistInput is the payload of an artist create.
type ArtistInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	PhotoURL  string `json:"photoUrl" validate:"required,imageurl"`
	SmartLink string `json:"smartLink" validate:"required,httpurl"`
}

func (in *ArtistInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	in.SmartLink = strings.TrimSpace(in.SmartLink)
}

// ArtistPatch is the payload of an artist update; nil fields are left unchanged.
type ArtistPatch struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=100"`
	PhotoURL  *string `json:"photoUrl" validate:"omitnil,imageurl"`
	SmartLink *string `json:"smartLink" validate:"omitnil,httpurl"`
}

func (p *ArtistPatch) Normalize() {
	trimPtr(p.Name)
	trimPtr(p.PhotoURL)
	trimPtr(p.SmartLink)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

type ArtistService struct {
	artists database.ArtistRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewArtistService(artists database.ArtistRepository) *ArtistService {
	return &ArtistService{
		artists: artists,
		logger:  log.With().Str("service", "artistService").Logger(),
		now:     time.Now,
	}
}

func (s *ArtistService) Create(ctx context.Context, in ArtistInput) (*models.Artist, error) {
	now := s.now()
	artist := &models.Artist{
		Name:      in.Name,
		PhotoURL:  in.PhotoURL,
		SmartLink: in.SmartLink,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.artists.Create(ctx, artist); err != nil {
		return nil, errs.NewDatabaseError("create", "artist", err)
	}

	s.logger.Info().Str("artistID", artist.ID).Msg("artist created")
	return artist, nil
}

func (s *ArtistService) List(ctx context.Context, page models.Page) ([]*models.Artist, models.Pagination, error) {
	artists, total, err := s.artists.ListActive(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, errs.NewDatabaseError("list", "artists", err)
	}
	return artists, models.NewPagination(page, total), nil
}

func (s *ArtistService) GetByID(ctx context.Context, id string) (*models.Artist, error) {
	artist, err := s.artists.FindActiveByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "artist", err)
	}
	if artist == nil {
		return nil, errs.NewNotFound("artist")
	}
	return artist, nil
}

func (s *ArtistService) Update(ctx context.Context, id string, patch ArtistPatch) (*models.Artist, error) {
	artist, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		artist.Name = *patch.Name
	}
	if patch.PhotoURL != nil {
		artist.PhotoURL = *patch.PhotoURL
	}
	if patch.SmartLink != nil {
		artist.SmartLink = *patch.SmartLink
	}
	artist.UpdatedAt = s.now()

	matched, err := s.artists.Update(ctx, artist)
	if err != nil {
		return nil, errs.NewDatabaseError("update", "artist", err)
	}
	// deleted between the read and the write
	if !matched {
		return nil, errs.NewNotFound("artist")
	}
	return artist, nil
}

// Delete soft-deletes an active artist. A second delete reports not found.
func (s *ArtistService) Delete(ctx context.Context, id string) error {
	matched, err := s.artists.Deactivate(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("delete", "artist", err)
	}
	if !matched {
		return errs.NewNotFound("artist")
	}

	s.logger.Info().Str("artistID", id).Msg("artist deactivated")
	return nil
}

func (s *ArtistService) Search(ctx context.Context, term string) ([]*models.Artist, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errs.NewMissingRequiredFieldError("q")
	}

	artists, err := s.artists.SearchActive(ctx, term, SearchLimit)
	if err != nil {
		return nil, errs.NewDatabaseError("search", "artists", err)
	}
	return artists, nil
}

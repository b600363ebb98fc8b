package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

// NewMemory returns a process-local Database. Records are copied on the way in
// and out so callers never share memory with the store.
func NewMemory() Database {
	return Database{
		artistRepo:         &memoryArtistRepo{rows: map[string]memoryRow[models.Artist]{}},
		projectRepo:        &memoryProjectRepo{rows: map[string]memoryRow[models.Project]{}},
		adminRepo:          &memoryAdminRepo{rows: map[string]models.Admin{}},
		contactRequestRepo: &memoryContactRequestRepo{rows: map[string]memoryRow[models.ContactRequest]{}},
	}
}

// memoryRow keeps insertion order to break timestamp ties.
type memoryRow[T any] struct {
	seq   int64
	value T
}

func sortRows[T any](rows []memoryRow[T], key func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		ki, kj := key(rows[i].value), key(rows[j].value)
		if !ki.Equal(kj) {
			return ki.After(kj)
		}
		return rows[i].seq > rows[j].seq
	})
}

func paginate[T any](rows []memoryRow[T], page models.Page) []*T {
	out := []*T{}
	start := page.Offset()
	if start >= len(rows) {
		return out
	}
	end := start + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	for _, row := range rows[start:end] {
		v := row.value
		out = append(out, &v)
	}
	return out
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

type memoryArtistRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[string]memoryRow[models.Artist]
}

func (r *memoryArtistRepo) Create(_ context.Context, artist *models.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if artist.ID == "" {
		artist.ID = uuid.NewString()
	}
	if _, ok := r.rows[artist.ID]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint \"artists_pkey\"")
	}
	r.seq++
	r.rows[artist.ID] = memoryRow[models.Artist]{seq: r.seq, value: *artist}
	return nil
}

func (r *memoryArtistRepo) FindActiveByID(_ context.Context, id string) (*models.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok || !row.value.Lifecycle().Visible() {
		return nil, nil
	}
	a := row.value
	return &a, nil
}

func (r *memoryArtistRepo) FindByIDs(_ context.Context, ids []string) ([]*models.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.Artist{}
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			a := row.value
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *memoryArtistRepo) matching(match func(models.Artist) bool) []memoryRow[models.Artist] {
	var rows []memoryRow[models.Artist]
	for _, row := range r.rows {
		if row.value.Lifecycle().Visible() && match(row.value) {
			rows = append(rows, row)
		}
	}
	sortRows(rows, func(a models.Artist) time.Time { return a.CreatedAt })
	return rows
}

func (r *memoryArtistRepo) ListActive(_ context.Context, page models.Page) ([]*models.Artist, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.matching(func(models.Artist) bool { return true })
	return paginate(rows, page), int64(len(rows)), nil
}

func (r *memoryArtistRepo) SearchActive(_ context.Context, term string, limit int) ([]*models.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.matching(func(a models.Artist) bool { return containsFold(a.Name, term) })
	return paginate(rows, models.Page{Number: 1, Limit: limit}), nil
}

func (r *memoryArtistRepo) Update(_ context.Context, artist *models.Artist) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[artist.ID]
	if !ok || !row.value.Lifecycle().Visible() {
		return false, nil
	}
	row.value.Name = artist.Name
	row.value.PhotoURL = artist.PhotoURL
	row.value.SmartLink = artist.SmartLink
	row.value.UpdatedAt = artist.UpdatedAt
	r.rows[artist.ID] = row
	return true, nil
}

func (r *memoryArtistRepo) Deactivate(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || !row.value.Lifecycle().Visible() {
		return false, nil
	}
	row.value.IsActive = false
	row.value.UpdatedAt = time.Now()
	r.rows[id] = row
	return true, nil
}

type memoryProjectRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[string]memoryRow[models.Project]
}

func cloneProject(p models.Project) *models.Project {
	p.Tags = append([]string(nil), p.Tags...)
	p.ImageURLs = append([]string(nil), p.ImageURLs...)
	p.Artist = nil
	return &p
}

func (r *memoryProjectRepo) Create(_ context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if _, ok := r.rows[project.ID]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint \"projects_pkey\"")
	}
	r.seq++
	r.rows[project.ID] = memoryRow[models.Project]{seq: r.seq, value: *cloneProject(*project)}
	return nil
}

func (r *memoryProjectRepo) FindActiveByID(_ context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok || !row.value.Lifecycle().Visible() {
		return nil, nil
	}
	return cloneProject(row.value), nil
}

func (r *memoryProjectRepo) matching(match func(models.Project) bool) []memoryRow[models.Project] {
	var rows []memoryRow[models.Project]
	for _, row := range r.rows {
		if row.value.Lifecycle().Visible() && match(row.value) {
			rows = append(rows, row)
		}
	}
	sortRows(rows, func(p models.Project) time.Time { return p.Datetime })
	return rows
}

func matchesFilter(p models.Project, filter models.ProjectFilter) bool {
	if filter.Category != "" && p.Category != filter.Category {
		return false
	}
	if filter.ArtistID != "" && p.ArtistID != filter.ArtistID {
		return false
	}
	return true
}

func (r *memoryProjectRepo) clonePage(rows []memoryRow[models.Project], page models.Page) []*models.Project {
	out := paginate(rows, page)
	for i, p := range out {
		out[i] = cloneProject(*p)
	}
	return out
}

func (r *memoryProjectRepo) ListActive(_ context.Context, filter models.ProjectFilter, page models.Page) ([]*models.Project, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.matching(func(p models.Project) bool { return matchesFilter(p, filter) })
	return r.clonePage(rows, page), int64(len(rows)), nil
}

func (r *memoryProjectRepo) FindActive(_ context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.matching(func(p models.Project) bool { return matchesFilter(p, filter) })
	return r.clonePage(rows, models.Page{Number: 1, Limit: len(rows)}), nil
}

func (r *memoryProjectRepo) SearchActive(_ context.Context, term string, limit int) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.matching(func(p models.Project) bool {
		if containsFold(p.Title, term) || containsFold(p.Description, term) {
			return true
		}
		for _, tag := range p.Tags {
			if containsFold(tag, term) {
				return true
			}
		}
		return false
	})
	return r.clonePage(rows, models.Page{Number: 1, Limit: limit}), nil
}

func (r *memoryProjectRepo) Update(_ context.Context, project *models.Project) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[project.ID]
	if !ok || !row.value.Lifecycle().Visible() {
		return false, nil
	}
	updated := cloneProject(*project)
	updated.IsActive = true
	updated.CreatedAt = row.value.CreatedAt
	row.value = *updated
	r.rows[project.ID] = row
	return true, nil
}

func (r *memoryProjectRepo) Deactivate(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || !row.value.Lifecycle().Visible() {
		return false, nil
	}
	row.value.IsActive = false
	row.value.UpdatedAt = time.Now()
	r.rows[id] = row
	return true, nil
}

type memoryAdminRepo struct {
	mu   sync.RWMutex
	rows map[string]models.Admin
}

func (r *memoryAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == admin.Email {
			return fmt.Errorf("duplicate key value violates unique constraint \"idx_admins_email\"")
		}
	}
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	r.rows[admin.ID] = *admin
	return nil
}

func (r *memoryAdminRepo) FindByID(_ context.Context, id string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &admin, nil
}

func (r *memoryAdminRepo) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, admin := range r.rows {
		if admin.Email == email {
			a := admin
			return &a, nil
		}
	}
	return nil, nil
}

type memoryContactRequestRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[string]memoryRow[models.ContactRequest]
}

func (r *memoryContactRequestRepo) Create(_ context.Context, request *models.ContactRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	r.seq++
	r.rows[request.ID] = memoryRow[models.ContactRequest]{seq: r.seq, value: *request}
	return nil
}

func (r *memoryContactRequestRepo) UpdateStatus(_ context.Context, id string, status models.ContactStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil
	}
	row.value.Status = status
	row.value.UpdatedAt = time.Now()
	r.rows[id] = row
	return nil
}

func (r *memoryContactRequestRepo) List(_ context.Context, page models.Page) ([]*models.ContactRequest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]memoryRow[models.ContactRequest], 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	sortRows(rows, func(c models.ContactRequest) time.Time { return c.CreatedAt })
	return paginate(rows, page), int64(len(rows)), nil
}

package models

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name          string
		number, limit int
		want          Page
	}{
		{"defaults", 0, 0, Page{Number: 1, Limit: 10}},
		{"explicit", 3, 25, Page{Number: 3, Limit: 25}},
		{"negative", -2, -5, Page{Number: 1, Limit: 10}},
		{"clamped", 1, 500, Page{Number: 1, Limit: MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPage(tt.number, tt.limit); got != tt.want {
				t.Errorf("NewPage(%d, %d) = %+v, want %+v", tt.number, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	if got := NewPage(3, 10).Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
	if got := NewPage(1, 10).Offset(); got != 0 {
		t.Errorf("Offset() = %d, want 0", got)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{7, 3, 3},
	}

	for _, tt := range tests {
		got := NewPagination(NewPage(1, tt.limit), tt.total)
		if got.Pages != tt.wantPages {
			t.Errorf("total=%d limit=%d: pages = %d, want %d", tt.total, tt.limit, got.Pages, tt.wantPages)
		}
		if got.Total != tt.total || got.Limit != tt.limit || got.Page != 1 {
			t.Errorf("unexpected pagination %+v", got)
		}
	}
}

func TestLifecycle(t *testing.T) {
	a := &Artist{IsActive: true}
	if a.Lifecycle() != LifecycleActive || !a.Lifecycle().Visible() {
		t.Errorf("active artist should be visible, got %s", a.Lifecycle())
	}

	a.IsActive = false
	if a.Lifecycle() != LifecycleDeleted || a.Lifecycle().Visible() {
		t.Errorf("deleted artist should not be visible, got %s", a.Lifecycle())
	}

	p := &Project{IsActive: false}
	if p.Lifecycle().Visible() {
		t.Error("deleted project should not be visible")
	}
}

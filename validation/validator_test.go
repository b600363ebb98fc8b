package validation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

type samplePayload struct {
	Name     string   `json:"name" validate:"required,max=10"`
	Photo    string   `json:"photoUrl" validate:"required,imageurl"`
	Link     string   `json:"smartLink" validate:"required,httpurl"`
	When     string   `json:"datetime" validate:"required,isodate"`
	Kind     string   `json:"category" validate:"required,oneof=concert festival album single"`
	Tags     []string `json:"tags" validate:"required,min=1,dive,required"`
	Images   []string `json:"image_urls" validate:"required,len=2,dive,imageurl"`
	Email    string   `json:"email" validate:"omitempty,contactemail"`
	Nickname *string  `json:"nickname" validate:"omitnil,min=2"`
}

func validSample() samplePayload {
	return samplePayload{
		Name:   "Band",
		Photo:  "https://cdn.example.com/a.jpg",
		Link:   "https://open.spotify.com/artist/1",
		When:   "2024-05-01",
		Kind:   "festival",
		Tags:   []string{"live"},
		Images: []string{"https://x.com/1.png", "http://x.com/2.webp?w=200"},
	}
}

func fieldsOf(verr *RequestValidationError) map[string]string {
	out := make(map[string]string)
	for _, e := range verr.Errors() {
		out[e.Field()] = e.Error()
	}
	return out
}

func TestValidateStructAccepts(t *testing.T) {
	p := validSample()
	if verr := ValidateStruct(&p); verr != nil {
		t.Fatalf("expected valid payload, got %v", verr)
	}
}

func TestValidateStructReportsEveryField(t *testing.T) {
	p := samplePayload{
		Photo:  "https://x.com/a.txt",
		Link:   "ftp://x.com",
		When:   "yesterday",
		Kind:   "opera",
		Images: []string{"https://x.com/1.png"},
	}

	verr := ValidateStruct(&p)
	if verr == nil {
		t.Fatal("expected validation errors")
	}

	got := fieldsOf(verr)
	want := map[string]string{
		"name":       "name is required",
		"photoUrl":   "photoUrl must be a valid image URL",
		"smartLink":  "smartLink must be a valid http(s) URL",
		"datetime":   "datetime must be a valid ISO 8601 date",
		"category":   "category must be one of: concert festival album single",
		"tags":       "tags is required",
		"image_urls": "image_urls must contain exactly 2 items",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestValidateStructPointerFields(t *testing.T) {
	p := validSample()
	short := "x"
	p.Nickname = &short

	verr := ValidateStruct(&p)
	if verr == nil {
		t.Fatal("expected nickname to fail")
	}
	if msg := fieldsOf(verr)["nickname"]; msg != "nickname must be at least 2 characters" {
		t.Errorf("unexpected message %q", msg)
	}

	p.Nickname = nil
	if verr := ValidateStruct(&p); verr != nil {
		t.Errorf("nil pointer should be skipped, got %v", verr)
	}
}

func TestSizeMessagesUseSingularForOne(t *testing.T) {
	type sized struct {
		Name  string   `json:"name" validate:"min=1"`
		Tags  []string `json:"tags" validate:"min=1"`
		Title string   `json:"title" validate:"min=3"`
		Links []string `json:"links" validate:"len=5"`
	}

	verr := ValidateStruct(&sized{Links: []string{"a"}})
	if verr == nil {
		t.Fatal("expected every field to fail")
	}

	want := map[string]string{
		"name":  "name must be at least 1 character",
		"tags":  "tags must be at least 1 item",
		"title": "title must be at least 3 characters",
		"links": "links must contain exactly 5 items",
	}
	got := fieldsOf(verr)
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestContactEmailPattern(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"jane@example.com", true},
		{"jane.doe@mail.example.org", true},
		{"j-d@ex-ample.io", true},
		{"not-an-email", false},
		{"jane@", false},
		{"@example.com", false},
		{"jane@example.c", false},
	}

	for _, tt := range tests {
		p := validSample()
		p.Email = tt.email
		verr := ValidateStruct(&p)
		if (verr == nil) != tt.ok {
			t.Errorf("email %q: valid = %v, want %v", tt.email, verr == nil, tt.ok)
		}
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://x.com/a.jpg", true},
		{"http://x.com/a.JPEG", true},
		{"https://x.com/a.png?size=large", true},
		{"https://x.com/a", false},
		{"x.com/a.jpg", false},
		{"https://x.com/a.pdf", false},
	}

	for _, tt := range tests {
		if got := IsImageURL(tt.url); got != tt.ok {
			t.Errorf("IsImageURL(%q) = %v, want %v", tt.url, got, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-05-01", "2024-05-01T20:00:00Z", "2024-05-01T20:00:00+02:00", "2024-05-01T20:00:00"} {
		if _, err := ParseDate(s); err != nil {
			t.Errorf("ParseDate(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Error("expected non-ISO date to fail")
	}
}

func TestCheckReturnsApiErr(t *testing.T) {
	err := Check(&samplePayload{})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *errs.ApiErr, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if len(apiErr.Fields) < 5 {
		t.Errorf("expected every field reported, got %d", len(apiErr.Fields))
	}
	if !errs.IsValidationError(err) {
		t.Error("expected IsValidationError to be true")
	}

	p := validSample()
	if err := Check(&p); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

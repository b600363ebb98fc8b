package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pagination is the metadata returned alongside a listed page
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes pages = ceil(total/limit).
func NewPagination(p Page, total int64) Pagination {
	limit := int64(p.Limit)
	var pages int64
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:  p.Number,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}

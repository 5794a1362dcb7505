package model

// Default pagination values used by the history endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is the pagination envelope shared by the history endpoints.
type Page struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// HasNext reports whether another page exists after this one.
func (p Page) HasNext() bool {
	return p.Limit > 0 && p.Page*p.Limit < p.Total
}

// NormalizePage replaces out-of-range page and limit values with the defaults.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

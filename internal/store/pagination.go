package store

// DefaultPageSize is the page size used when the caller does not specify one.
// There is deliberately no upper bound: the catalog is operator-curated and
// small, and the original contract lets callers request arbitrarily large
// pages. Revisit if the catalog ever grows beyond a few thousand titles.
const DefaultPageSize = 20

// Sort field values understood by ListBooks. Anything else falls back to
// title ordering rather than being rejected.
const (
	SortByTitle      = "title"
	SortByAuthor     = "author"
	SortByRating     = "rating"
	SortByPopularity = "popularity"
	SortByDate       = "date"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// CatalogQuery contains filter, sort, and pagination parameters for browsing
// the catalog. Only active books are ever returned.
type CatalogQuery struct {
	Page     int // 1-based; values below 1 are corrected to 1
	PageSize int // Defaults to DefaultPageSize when <= 0

	// MatchIDs restricts results to the given book IDs (the full-text
	// search hit set). nil means no text restriction; an empty non-nil
	// slice matches nothing.
	MatchIDs []string

	Genre     string   // Exact genre tag membership
	Author    string   // Case- and accent-insensitive substring of the author name
	MinRating *float64 // RatingAverage >= MinRating
	// MaxPrice admits a book when ANY configured paperback or ebook price
	// is at or below the limit. Hardcover and audiobook prices are not
	// compared. That asymmetry is the documented contract, not a bug.
	MaxPrice *float64

	SortField     string // See SortBy constants; unknown values sort by title
	SortDirection string // "asc" (default) or "desc"
}

// Normalize applies defaults and corrects out-of-range values in place.
func (q *CatalogQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.SortDirection != SortDesc {
		q.SortDirection = SortAsc
	}
	if q.SortField == "" {
		q.SortField = SortByTitle
	}
}

// Offset returns the row offset for the current page.
func (q *CatalogQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Pagination describes the page window of a result set.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page contains one page of results plus pagination metadata.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPage builds a Page with computed pagination metadata.
// TotalPages is ceil(total / pageSize).
func NewPage[T any](items []T, page, pageSize, total int) *Page[T] {
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return &Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

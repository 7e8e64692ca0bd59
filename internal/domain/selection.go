package domain

// SearchResult is the envelope returned to presenters for one selection.
// Items reference catalog rows. Total counts matches before the display limit.
type SearchResult[T any] struct {
	Items            []*T   `json:"items"`
	Count            int    `json:"count"`
	Total            int    `json:"total"`
	CatalogAvailable bool   `json:"catalogAvailable"`
	Notice           string `json:"notice,omitempty"`
}

// Notices shown by presenters
const (
	NoticeCatalogUnavailable = "Catalog data is currently unavailable. Showing no results."
	NoticeNoProducts         = "No products found matching your criteria. Try adjusting your inputs."
	NoticeNoPlans            = "No plans found matching your criteria. Try adjusting your inputs."
)

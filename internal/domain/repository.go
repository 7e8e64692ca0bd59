package domain

import "context"

// ProductCatalog exposes the resident product catalog.
// The returned slice is shared and must be treated as read-only.
// A non-nil error wraps ErrDataUnavailable and comes with no items.
type ProductCatalog interface {
	Products() ([]Product, error)
}

// PlanCatalog exposes the resident plan catalog and plan type definitions.
// Same sharing and error rules as ProductCatalog.
type PlanCatalog interface {
	Plans() ([]Plan, error)
	PlanTypes() ([]PlanTypeDefinition, error)
}

// RemoteFetcher downloads a catalog file from a remote location
type RemoteFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

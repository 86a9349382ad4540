package hymn

import "context"

// Repository is the durable storage contract for the public hymn catalog.
type Repository interface {
	// ListHymns returns every public hymn ordered by number ascending.
	ListHymns(context context.Context) ([]PublicHymn, error)

	// CreateHymn assigns the next sequential number and persists the hymn.
	// The count-read and number-assignment happen atomically; concurrent
	// callers never receive the same number.
	CreateHymn(context context.Context, name string, submittedBy *string) (*PublicHymn, error)
}

// ListCache is the volatile cache contract for the hymn listing.
//
// Implementations must treat a miss as (nil, false, nil) — a cache error is
// distinct from a miss so the service can log degradation.
type ListCache interface {
	Get(context context.Context) ([]PublicHymn, bool, error)
	Set(context context.Context, hymns []PublicHymn) error
	Invalidate(context context.Context) error
}

package hymn

import "time"

// PublicHymn is a community-submitted hymn in the public Hinário A catalog.
//
// Number is the short, unique, human-meaningful key ("A1", "A2", ...). The
// "A" prefix marks provenance: these hymns were contributed through the app,
// not taken from a printed hymnal. Name is always stored upper-case. The
// server is the sole writer of ID and Number.
type PublicHymn struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Name        string    `json:"name"`
	SubmittedBy *string   `json:"submitted_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePublicHymnInput is the creation payload accepted by the API.
type CreatePublicHymnInput struct {
	Name        string  `json:"name"`
	SubmittedBy *string `json:"submitted_by,omitempty"`
}

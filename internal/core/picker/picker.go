// Package picker implements the dual-field hymn autocomplete controller.
//
// A [Row] pairs a number field and a name field over zero-or-one catalog
// entry and keeps them mutually consistent: both empty or both committed
// together. Rows query a [Lookup] for live suggestions, support
// keyboard-only selection, and offer inline creation of unknown names
// through a [Creator].
//
// The package is UI-framework neutral: it owns the field state machine and
// leaves rendering to the caller, which reads state through the accessor
// methods after every event.
//
// # State Ownership
//
// Each row is an explicit state record inside a [Rows] arena, keyed by row
// identity. There is no package-level mutable state, so any number of rows
// edit independently and tests exercise one row in isolation.
package picker

import (
	"context"
	"errors"

	"github.com/taibuivan/hinario/internal/core/lookup"
)

// Field identifies one of the two linked inputs of a row.
type Field int

const (
	// FieldNumber is the short numeric-key input.
	FieldNumber Field = iota
	// FieldName is the free-text name input.
	FieldName
)

// Key is a keyboard navigation event delivered to a focused field.
type Key int

const (
	KeyArrowDown Key = iota
	KeyArrowUp
	KeyEnter
	KeyEscape
)

// Lookup is the read side the picker queries on every keystroke and focus
// event. Implementations must be synchronous and must never fail: no
// matches is an empty slice.
type Lookup interface {
	SearchByNumber(query string) []lookup.Entry
	SearchByName(query string) []lookup.Entry
}

// Creator mints a new catalog entry server-side. The picker never invents a
// number; the returned entry carries the server-assigned one.
type Creator interface {
	Create(ctx context.Context, name string) (lookup.Entry, error)
}

var (
	// ErrCreationNotOffered is returned when RequestCreation is called while
	// the creation affordance is not being offered.
	ErrCreationNotOffered = errors.New("picker: creation not offered for current state")

	// ErrCreationInFlight is returned when a creation round trip is already
	// pending for the row.
	ErrCreationInFlight = errors.New("picker: creation already in flight")

	// ErrNoCreator is returned when the row was mounted without a Creator.
	ErrNoCreator = errors.New("picker: no creator configured")
)

package picker

import (
	"context"
	"strings"
	"sync"

	"github.com/taibuivan/hinario/internal/core/lookup"
	"github.com/taibuivan/hinario/internal/platform/constants"
)

// fieldState is the transient per-field UI state of a row.
type fieldState struct {
	focused     bool
	suggestions []lookup.Entry
	highlight   int // -1 = no highlight
}

// RowConfig carries a row's collaborators and callbacks.
type RowConfig struct {
	// Lookup serves suggestion queries. A nil Lookup degrades to empty
	// suggestion lists; editing keeps working.
	Lookup Lookup

	// Creator serves the inline "create new hymn" affordance. Optional.
	Creator Creator

	// OnChange pushes the committed {number, name} pair up to the owning
	// form after every mutation. Optional.
	OnChange func(number, name string)

	// OnCreationError surfaces a failed creation round trip. The typed name
	// is left intact; the user must re-trigger. Optional.
	OnCreationError func(err error)
}

// Row is the state machine for one editable hymn row.
//
// All mutation is serialized by an internal mutex: UI events arrive from
// the event loop, but creation results arrive from the round-trip
// goroutine. Callbacks are always invoked outside the lock.
type Row struct {
	mu sync.Mutex

	id    string
	alive bool

	number string
	name   string

	fields [2]fieldState

	creationInFlight bool
	creationSeq      uint64

	config RowConfig
}

func newRow(id string, config RowConfig) *Row {
	row := &Row{id: id, alive: true, config: config}
	row.fields[FieldNumber].highlight = -1
	row.fields[FieldName].highlight = -1
	return row
}

// ID returns the row identity it was mounted under.
func (row *Row) ID() string { return row.id }

// # Committed Value Accessors

// Number returns the committed number value.
func (row *Row) Number() string {
	row.mu.Lock()
	defer row.mu.Unlock()
	return row.number
}

// Name returns the committed name value (always upper-case).
func (row *Row) Name() string {
	row.mu.Lock()
	defer row.mu.Unlock()
	return row.name
}

// Suggestions returns a copy of the field's current suggestion list.
func (row *Row) Suggestions(field Field) []lookup.Entry {
	row.mu.Lock()
	defer row.mu.Unlock()

	src := row.fields[field].suggestions
	if len(src) == 0 {
		return nil
	}
	out := make([]lookup.Entry, len(src))
	copy(out, src)
	return out
}

// Highlight returns the field's highlight index (-1 = none).
func (row *Row) Highlight(field Field) int {
	row.mu.Lock()
	defer row.mu.Unlock()
	return row.fields[field].highlight
}

// Focused reports whether the field currently has focus tracking.
func (row *Row) Focused(field Field) bool {
	row.mu.Lock()
	defer row.mu.Unlock()
	return row.fields[field].focused
}

// CreationInFlight reports whether a creation round trip is pending. The UI
// uses this to disable duplicate submission.
func (row *Row) CreationInFlight() bool {
	row.mu.Lock()
	defer row.mu.Unlock()
	return row.creationInFlight
}

// # Input Events

// SetNumber applies a keystroke to the number field. The raw value is kept
// verbatim (clamped to the row input bound). Number and name are an
// all-or-nothing pair: clearing the number clears the name too.
func (row *Row) SetNumber(raw string) {
	row.mu.Lock()

	row.number = clampRunes(raw, constants.MaxRowNumberLen)

	if strings.TrimSpace(row.number) == "" {
		row.name = ""
		row.fields[FieldNumber].suggestions = nil
	} else {
		row.fields[FieldNumber].suggestions = row.searchNumber(row.number)
	}
	row.fields[FieldNumber].highlight = -1

	row.emitChangeLocked()
}

// SetName applies a keystroke to the name field. The value is upper-cased
// before storing. Clearing the name clears the number (mirrored
// all-or-nothing rule).
func (row *Row) SetName(raw string) {
	row.mu.Lock()

	row.name = strings.ToUpper(clampRunes(raw, constants.MaxRowNameLen))

	if strings.TrimSpace(row.name) == "" {
		row.number = ""
		row.fields[FieldName].suggestions = nil
	} else {
		row.fields[FieldName].suggestions = row.searchName(row.name)
	}
	row.fields[FieldName].highlight = -1

	row.emitChangeLocked()
}

// Focus marks the field focused and re-queries suggestions for a
// pre-existing non-empty value, so suggestions appear without a keystroke.
func (row *Row) Focus(field Field) {
	row.mu.Lock()
	defer row.mu.Unlock()

	row.fields[field].focused = true

	value := row.fieldValueLocked(field)
	if strings.TrimSpace(value) == "" {
		return
	}

	if field == FieldNumber {
		row.fields[field].suggestions = row.searchNumber(value)
	} else {
		row.fields[field].suggestions = row.searchName(value)
	}
	row.fields[field].highlight = -1
}

// DismissOutside handles a pointer interaction outside both the field's
// input and its suggestion panel: it closes that field's panel and drops
// its focus tracking. Fields are independent; the other panel is untouched.
func (row *Row) DismissOutside(field Field) {
	row.mu.Lock()
	defer row.mu.Unlock()

	row.fields[field].suggestions = nil
	row.fields[field].highlight = -1
	row.fields[field].focused = false
}

// Keydown applies keyboard navigation to a field.
//
//   - ArrowDown / ArrowUp cycle the highlight with wraparound.
//   - Enter selects the highlighted suggestion, or the first one when
//     nothing is highlighted; no-op on an empty list.
//   - Escape closes the panel and drops focus tracking without altering the
//     committed value, and is handled even when the list is empty.
func (row *Row) Keydown(field Field, key Key) {
	row.mu.Lock()

	state := &row.fields[field]

	if key == KeyEscape {
		state.suggestions = nil
		state.highlight = -1
		state.focused = false
		row.mu.Unlock()
		return
	}

	if len(state.suggestions) == 0 {
		row.mu.Unlock()
		return
	}

	switch key {
	case KeyArrowDown:
		if state.highlight < len(state.suggestions)-1 {
			state.highlight++
		} else {
			state.highlight = 0
		}
		row.mu.Unlock()

	case KeyArrowUp:
		if state.highlight > 0 {
			state.highlight--
		} else {
			state.highlight = len(state.suggestions) - 1
		}
		row.mu.Unlock()

	case KeyEnter:
		index := state.highlight
		if index < 0 {
			index = 0
		}
		entry := state.suggestions[index]
		row.selectLocked(field, entry)

	default:
		row.mu.Unlock()
	}
}

// SelectSuggestion commits an entry: both number and name are overwritten
// atomically, and only the originating field's panel closes.
func (row *Row) SelectSuggestion(field Field, entry lookup.Entry) {
	row.mu.Lock()
	row.selectLocked(field, entry)
}

// selectLocked applies a selection and releases the lock via the change
// emission.
func (row *Row) selectLocked(field Field, entry lookup.Entry) {
	row.number = entry.Number
	row.name = entry.Name

	row.fields[field].suggestions = nil
	row.fields[field].highlight = -1
	row.fields[field].focused = false

	row.emitChangeLocked()
}

// # Inline Creation

// ShouldOfferCreation reports whether the "create new hymn" affordance is
// offered: the name field is focused, the trimmed name has at least
// [constants.MinCreationNameLen] characters, and the last name query found
// no exact match. The affordance belongs under the name field only and is
// always rendered after the matched suggestions.
func (row *Row) ShouldOfferCreation() bool {
	row.mu.Lock()
	defer row.mu.Unlock()
	return row.shouldOfferCreationLocked()
}

func (row *Row) shouldOfferCreationLocked() bool {
	if !row.fields[FieldName].focused {
		return false
	}

	trimmed := strings.TrimSpace(row.name)
	if len([]rune(trimmed)) < constants.MinCreationNameLen {
		return false
	}

	folded := lookup.Fold(trimmed)
	for _, entry := range row.fields[FieldName].suggestions {
		if lookup.Fold(entry.Name) == folded {
			return false
		}
	}
	return true
}

// RequestCreation starts the creation round trip for the currently typed
// name. It returns immediately; the result is applied asynchronously.
//
// The task is bound to the row identity and a creation sequence captured at
// dispatch: a response that arrives after the row was unmounted, reset, or
// superseded is discarded rather than applied. Success resolves like a
// normal name-field selection; failure leaves the typed name intact,
// clears the in-flight flag, and surfaces the error through
// OnCreationError. Never retried automatically.
func (row *Row) RequestCreation(ctx context.Context) error {
	row.mu.Lock()

	if row.config.Creator == nil {
		row.mu.Unlock()
		return ErrNoCreator
	}
	if row.creationInFlight {
		row.mu.Unlock()
		return ErrCreationInFlight
	}
	if !row.shouldOfferCreationLocked() {
		row.mu.Unlock()
		return ErrCreationNotOffered
	}

	row.creationInFlight = true
	row.creationSeq++

	seq := row.creationSeq
	name := strings.TrimSpace(row.name)
	creator := row.config.Creator
	row.mu.Unlock()

	go func() {
		entry, err := creator.Create(ctx, name)
		row.resolveCreation(seq, entry, err)
	}()

	return nil
}

// resolveCreation is the reducer applying a creation result. It verifies
// the row is still live and still the one awaiting this exact dispatch.
func (row *Row) resolveCreation(seq uint64, entry lookup.Entry, err error) {
	row.mu.Lock()

	if !row.alive || seq != row.creationSeq || !row.creationInFlight {
		// Stale response: the row was unmounted or the request superseded.
		row.mu.Unlock()
		return
	}

	row.creationInFlight = false

	if err != nil {
		onError := row.config.OnCreationError
		row.mu.Unlock()
		if onError != nil {
			onError(err)
		}
		return
	}

	row.selectLocked(FieldName, entry)
}

// # Lifecycle

// invalidate marks the row dead so late creation results are discarded.
func (row *Row) invalidate() {
	row.mu.Lock()
	row.alive = false
	row.mu.Unlock()
}

// # Internals

// emitChangeLocked snapshots the committed pair, releases the lock, and
// pushes the pair to the owning form.
func (row *Row) emitChangeLocked() {
	number, name := row.number, row.name
	onChange := row.config.OnChange
	row.mu.Unlock()

	if onChange != nil {
		onChange(number, name)
	}
}

func (row *Row) fieldValueLocked(field Field) string {
	if field == FieldNumber {
		return row.number
	}
	return row.name
}

func (row *Row) searchNumber(query string) []lookup.Entry {
	if row.config.Lookup == nil {
		return nil
	}
	return row.config.Lookup.SearchByNumber(query)
}

func (row *Row) searchName(query string) []lookup.Entry {
	if row.config.Lookup == nil {
		return nil
	}
	return row.config.Lookup.SearchByName(query)
}

// clampRunes truncates s to at most max runes, mirroring the row input's
// maxLength affordance.
func clampRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Package lookup provides the in-memory search index the picker queries on
// every keystroke.
//
// # Contract
//
// Searches are synchronous, bounded, and relevance-ordered. The index never
// fails a query: an empty or unpopulated index simply matches nothing, so
// field editing keeps working even when the catalog has not loaded yet.
//
// # Matching
//
// Name matching is case- and diacritic-insensitive ("confianca" matches
// "CONFIANÇA") because hymn names are Portuguese and typed on whatever
// keyboard is at hand. Number matching is prefix-based.
package lookup

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSuggestions bounds every search result.
const MaxSuggestions = 8

// Entry is one addressable catalog item: a unique short number and a
// display name.
type Entry struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// indexed pairs an entry with its precomputed folded forms.
type indexed struct {
	entry        Entry
	foldedNumber string
	foldedName   string
}

// Index is a snapshot-swappable search index over the known catalog.
//
// # Concurrency
//
// Readers and the Replace writer may run concurrently; Replace swaps the
// whole dataset atomically under the write lock.
type Index struct {
	mu      sync.RWMutex
	entries []indexed
}

// NewIndex builds an index over the provided entries.
func NewIndex(entries []Entry) *Index {
	index := &Index{}
	index.Replace(entries)
	return index
}

// Replace swaps the entire dataset, e.g. after refetching the catalog from
// the server.
func (index *Index) Replace(entries []Entry) {
	next := make([]indexed, 0, len(entries))
	for _, entry := range entries {
		next = append(next, indexed{
			entry:        entry,
			foldedNumber: Fold(entry.Number),
			foldedName:   Fold(entry.Name),
		})
	}

	index.mu.Lock()
	index.entries = next
	index.mu.Unlock()
}

// SearchByNumber returns entries whose number starts with the query,
// exact match first, then shorter numbers first.
func (index *Index) SearchByNumber(query string) []Entry {
	folded := Fold(query)
	if folded == "" {
		return nil
	}

	index.mu.RLock()
	defer index.mu.RUnlock()

	var exact, prefixed []Entry
	for _, item := range index.entries {
		switch {
		case item.foldedNumber == folded:
			exact = append(exact, item.entry)
		case strings.HasPrefix(item.foldedNumber, folded):
			prefixed = append(prefixed, item.entry)
		}
	}

	// Shorter numbers are closer to what was typed ("A1" before "A12").
	sort.SliceStable(prefixed, func(i, j int) bool {
		a, b := prefixed[i], prefixed[j]
		if len(a.Number) != len(b.Number) {
			return len(a.Number) < len(b.Number)
		}
		return a.Number < b.Number
	})

	return bound(append(exact, prefixed...))
}

// SearchByName returns entries whose folded name contains the folded query,
// prefix matches ranked before substring matches.
func (index *Index) SearchByName(query string) []Entry {
	folded := Fold(query)
	if folded == "" {
		return nil
	}

	index.mu.RLock()
	defer index.mu.RUnlock()

	var prefixed, contained []Entry
	for _, item := range index.entries {
		switch {
		case strings.HasPrefix(item.foldedName, folded):
			prefixed = append(prefixed, item.entry)
		case strings.Contains(item.foldedName, folded):
			contained = append(contained, item.entry)
		}
	}

	return bound(append(prefixed, contained...))
}

// ResolveByNumber finds the entry with exactly this number.
func (index *Index) ResolveByNumber(number string) (Entry, bool) {
	folded := Fold(number)

	index.mu.RLock()
	defer index.mu.RUnlock()

	for _, item := range index.entries {
		if item.foldedNumber == folded {
			return item.entry, true
		}
	}
	return Entry{}, false
}

// ResolveByName finds the entry whose folded name equals the folded query.
func (index *Index) ResolveByName(name string) (Entry, bool) {
	folded := Fold(name)

	index.mu.RLock()
	defer index.mu.RUnlock()

	for _, item := range index.entries {
		if item.foldedName == folded {
			return item.entry, true
		}
	}
	return Entry{}, false
}

// Fold normalizes a string for matching: trims, decomposes to NFD, strips
// combining marks (accents), and upper-cases.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return strings.ToUpper(folded)
}

// bound truncates results to [MaxSuggestions].
func bound(entries []Entry) []Entry {
	if len(entries) > MaxSuggestions {
		return entries[:MaxSuggestions]
	}
	return entries
}

package lookup_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hinario/internal/core/lookup"
)

func catalogFixture() *lookup.Index {
	return lookup.NewIndex([]lookup.Entry{
		{Number: "A1", Name: "GRACE"},
		{Number: "A2", Name: "AMAZING GRACE"},
		{Number: "A10", Name: "CONFIANÇA"},
		{Number: "A12", Name: "PAZ"},
		{Number: "A21", Name: "GRAÇA DIVINA"},
	})
}

func TestSearchByNumber_ExactBeforePrefix(t *testing.T) {
	index := catalogFixture()

	results := index.SearchByNumber("A1")
	require.NotEmpty(t, results)

	// Exact match first, then shorter prefixed numbers.
	assert.Equal(t, "A1", results[0].Number)
	assert.Equal(t, []string{"A1", "A10", "A12"}, numbers(results))
}

func TestSearchByNumber_CaseInsensitive(t *testing.T) {
	index := catalogFixture()
	assert.Equal(t, []string{"A2", "A21"}, numbers(index.SearchByNumber("a2")))
}

func TestSearchByName_PrefixBeforeSubstring(t *testing.T) {
	index := catalogFixture()

	results := index.SearchByName("GRA")
	require.Len(t, results, 3)

	// GRACE and GRAÇA are prefix matches; AMAZING GRACE only contains it.
	assert.Equal(t, "GRACE", results[0].Name)
	assert.Equal(t, "GRAÇA DIVINA", results[1].Name)
	assert.Equal(t, "AMAZING GRACE", results[2].Name)
}

func TestSearchByName_FoldsDiacritics(t *testing.T) {
	index := catalogFixture()

	results := index.SearchByName("confianca")
	require.Len(t, results, 1)
	assert.Equal(t, "CONFIANÇA", results[0].Name)
}

func TestSearch_EmptyQueryMatchesNothing(t *testing.T) {
	index := catalogFixture()

	assert.Nil(t, index.SearchByNumber(""))
	assert.Nil(t, index.SearchByNumber("   "))
	assert.Nil(t, index.SearchByName(""))
}

func TestSearch_ResultsAreBounded(t *testing.T) {
	entries := make([]lookup.Entry, 0, 20)
	for i := 1; i <= 20; i++ {
		entries = append(entries, lookup.Entry{
			Number: fmt.Sprintf("A%d", i),
			Name:   fmt.Sprintf("HYMN %d", i),
		})
	}
	index := lookup.NewIndex(entries)

	assert.Len(t, index.SearchByName("HYMN"), lookup.MaxSuggestions)
	assert.Len(t, index.SearchByNumber("A"), lookup.MaxSuggestions)
}

func TestResolve(t *testing.T) {
	index := catalogFixture()

	entry, ok := index.ResolveByNumber("A10")
	require.True(t, ok)
	assert.Equal(t, "CONFIANÇA", entry.Name)

	entry, ok = index.ResolveByName("graça divina")
	require.True(t, ok)
	assert.Equal(t, "A21", entry.Number)

	_, ok = index.ResolveByName("UNKNOWN")
	assert.False(t, ok)
}

func TestReplace_SwapsDataset(t *testing.T) {
	index := catalogFixture()
	index.Replace([]lookup.Entry{{Number: "A99", Name: "NEW SONG"}})

	_, ok := index.ResolveByNumber("A1")
	assert.False(t, ok)

	entry, ok := index.ResolveByNumber("A99")
	require.True(t, ok)
	assert.Equal(t, "NEW SONG", entry.Name)
}

func TestEmptyIndex_NeverFails(t *testing.T) {
	index := lookup.NewIndex(nil)

	assert.Empty(t, index.SearchByName("GRACE"))
	_, ok := index.ResolveByNumber("A1")
	assert.False(t, ok)
}

func numbers(entries []lookup.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Number)
	}
	return out
}

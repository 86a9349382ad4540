package picker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hinario/internal/core/lookup"
	"github.com/taibuivan/hinario/internal/core/picker"
)

func TestRows_IndependentState(t *testing.T) {
	rows := picker.NewRows()
	first := rows.Mount("row-0", picker.RowConfig{Lookup: indexFixture()})
	second := rows.Mount("row-1", picker.RowConfig{Lookup: indexFixture()})

	first.SetName("luz")
	second.SetNumber("A1")

	assert.Equal(t, "LUZ", first.Name())
	assert.Equal(t, "", first.Number())
	assert.Equal(t, "A1", second.Number())
	assert.Equal(t, "", second.Name())

	assert.NotEmpty(t, first.Suggestions(picker.FieldName))
	assert.Empty(t, second.Suggestions(picker.FieldName))

	assert.Equal(t, 2, rows.Len())
}

func TestRows_GetReturnsMountedRow(t *testing.T) {
	rows := picker.NewRows()
	mounted := rows.Mount("row-0", picker.RowConfig{})

	got, ok := rows.Get("row-0")
	require.True(t, ok)
	assert.Same(t, mounted, got)

	_, ok = rows.Get("row-1")
	assert.False(t, ok)
}

func TestRows_RemountReplacesState(t *testing.T) {
	rows := picker.NewRows()
	first := rows.Mount("row-0", picker.RowConfig{Lookup: indexFixture()})
	first.SetName("luz")

	replacement := rows.Mount("row-0", picker.RowConfig{Lookup: indexFixture()})

	assert.NotSame(t, first, replacement)
	assert.Equal(t, "", replacement.Name())
	assert.Equal(t, 1, rows.Len())
}

func TestRows_UnmountRemovesRow(t *testing.T) {
	rows := picker.NewRows()
	rows.Mount("row-0", picker.RowConfig{})

	rows.Unmount("row-0")
	_, ok := rows.Get("row-0")
	assert.False(t, ok)
	assert.Equal(t, 0, rows.Len())

	// Unmounting twice is harmless.
	rows.Unmount("row-0")
}

func TestRows_RemountInvalidatesPendingCreation(t *testing.T) {
	creator := &stubCreator{
		entry: lookup.Entry{Number: "A11", Name: "NOVO HINO"},
		gate:  make(chan struct{}),
	}
	rows := picker.NewRows()

	row := rows.Mount("row-0", picker.RowConfig{
		Lookup:  indexFixture(),
		Creator: creator,
	})
	row.Focus(picker.FieldName)
	row.SetName("novo hino")
	require.NoError(t, row.RequestCreation(context.Background()))

	// The slot is recycled while the round trip is pending.
	replacement := rows.Mount("row-0", picker.RowConfig{Lookup: indexFixture()})
	close(creator.gate)
	time.Sleep(50 * time.Millisecond)

	// The late response belongs to the invalidated row and must not reach
	// the replacement.
	assert.Equal(t, "", replacement.Number())
	assert.Equal(t, "", replacement.Name())
}

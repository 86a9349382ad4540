package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hinario/internal/platform/apperr"
	"github.com/taibuivan/hinario/internal/platform/dberr"
)

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "list hymns"))
}

func TestWrap_NoRowsBecomesNotFound(t *testing.T) {
	wrapped := dberr.Wrap(pgx.ErrNoRows, "get hymn")

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

func TestWrap_SQLStateClassification(t *testing.T) {
	tests := []struct {
		name       string
		sqlState   string
		wantCode   string
		wantStatus int
	}{
		{
			// The hymn number carries a UNIQUE constraint; two creations
			// racing to the same number must both be classified, not retried.
			name:       "unique_violation_is_conflict",
			sqlState:   pgerrcode.UniqueViolation,
			wantCode:   "CONFLICT",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "serialization_failure_is_conflict",
			sqlState:   pgerrcode.SerializationFailure,
			wantCode:   "CONFLICT",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "deadlock_is_conflict",
			sqlState:   pgerrcode.DeadlockDetected,
			wantCode:   "CONFLICT",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "other_sqlstate_is_internal",
			sqlState:   pgerrcode.NotNullViolation,
			wantCode:   "INTERNAL_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgError := &pgconn.PgError{Code: tt.sqlState}

			wrapped := dberr.Wrap(pgError, "create hymn")

			appError := apperr.As(wrapped)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
		})
	}
}

func TestWrap_ClassifiesThroughWrappedChains(t *testing.T) {
	cause := fmt.Errorf("insert publichymn: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})

	appError := apperr.As(dberr.Wrap(cause, "create hymn"))
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

func TestWrap_UnknownErrorBecomesInternal(t *testing.T) {
	cause := errors.New("connection reset by peer")

	wrapped := dberr.Wrap(cause, "list hymns")

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, "INTERNAL_ERROR", appError.Code)
	// The cause is kept for logging, never for the client.
	assert.ErrorIs(t, wrapped, cause)
	assert.NotContains(t, appError.Message, "connection reset")
}

func TestIsConflict(t *testing.T) {
	assert.True(t, dberr.IsConflict(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, dberr.IsConflict(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))

	assert.False(t, dberr.IsConflict(pgx.ErrNoRows))
	assert.False(t, dberr.IsConflict(errors.New("connection reset by peer")))
}

// Copyright (c) 2026 Hinário. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
// The numbering-assignment path depends on this mapping: a unique-constraint
// violation on the hymn number, or a serialization failure of the
// count-then-insert transaction, must surface as a 409 CONFLICT so clients
// re-submit deliberately instead of the server retrying on their behalf.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/hinario/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			// Two writers raced inside a serializable transaction. The loser's
			// work is fully rolled back; the caller must re-submit.
			return apperr.Conflict("Concurrent modification, please retry")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsConflict reports whether err classifies as a storage-level conflict.
func IsConflict(err error) bool {
	ae := apperr.As(Wrap(err, ""))
	return ae != nil && ae.Code == "CONFLICT"
}

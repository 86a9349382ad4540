package hymn

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hinario/internal/platform/constants"
	"github.com/taibuivan/hinario/internal/platform/database/schema"
	"github.com/taibuivan/hinario/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListHymns(context context.Context) ([]PublicHymn, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.PublicHymn.ID, schema.PublicHymn.Number, schema.PublicHymn.Name,
		schema.PublicHymn.SubmittedBy, schema.PublicHymn.CreatedAt, schema.PublicHymn.UpdatedAt,
		schema.PublicHymn.Table, schema.PublicHymn.Number)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_public_hymns")
	}
	defer rows.Close()

	hymns := make([]PublicHymn, 0)
	for rows.Next() {
		var h PublicHymn
		if err := rows.Scan(&h.ID, &h.Number, &h.Name, &h.SubmittedBy, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_public_hymn")
		}
		hymns = append(hymns, h)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_public_hymns")
	}

	return hymns, nil
}

/*
CreateHymn assigns the next sequential "A" number and inserts the hymn.

Description: The count-read and the insert run inside a single SERIALIZABLE
transaction, so two concurrent creations cannot observe the same count. The
UNIQUE constraint on the number column is the backstop: if the database
still detects a collision (serialization failure or unique violation), the
whole creation fails, nothing is persisted, and the caller gets a CONFLICT
to re-submit deliberately. Never retried server-side.

Parameters:
  - context: context.Context
  - name: string (already trimmed and upper-cased by the service)
  - submittedBy: *string (optional attribution)

Returns:
  - *PublicHymn: The fully populated record including the store-assigned id
  - error: Validation-free storage errors (CONFLICT or INTERNAL)
*/
func (repository *PostgresRepository) CreateHymn(context context.Context, name string, submittedBy *string) (*PublicHymn, error) {

	// Establish the serializable transactional boundary
	transaction, err := repository.db.BeginTx(context, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, dberr.Wrap(err, "begin_create_hymn_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Read the current catalog size
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.PublicHymn.Table)

	var count int64
	if err := transaction.QueryRow(context, countQuery).Scan(&count); err != nil {
		return nil, dberr.Wrap(err, "count_public_hymns")
	}

	// Step 2: Mint the next number and insert
	number := fmt.Sprintf("%s%d", constants.NumberPrefix, count+1)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.PublicHymn.Table,
		schema.PublicHymn.Number, schema.PublicHymn.Name, schema.PublicHymn.SubmittedBy,
		schema.PublicHymn.CreatedAt, schema.PublicHymn.UpdatedAt,
		schema.PublicHymn.ID, schema.PublicHymn.CreatedAt, schema.PublicHymn.UpdatedAt,
	)

	hymn := &PublicHymn{Number: number, Name: name, SubmittedBy: submittedBy}
	err = transaction.QueryRow(context, insertQuery, number, name, submittedBy).
		Scan(&hymn.ID, &hymn.CreatedAt, &hymn.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "insert_public_hymn")
	}

	// Persist the atomic changeset
	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_create_hymn_tx")
	}

	return hymn, nil
}

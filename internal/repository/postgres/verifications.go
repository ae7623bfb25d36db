package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/quantifun/uxrp/internal/core/domain"
	"github.com/quantifun/uxrp/internal/repository"
)

const verificationsTable = "auth.verifications"

// VerificationRepository implements port.VerificationRepository using PostgreSQL.
type VerificationRepository struct {
	db      Querier
	builder squirrel.StatementBuilderType
}

// NewVerificationRepository wires a PostgreSQL-backed verification repository.
func NewVerificationRepository(db Querier) *VerificationRepository {
	return &VerificationRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a verification record keyed by the token digest.
func (r *VerificationRepository) Create(ctx context.Context, verification domain.Verification) error {
	query := r.builder.Insert(verificationsTable).
		Columns("id", "email", "created_at").
		Values(verification.ID, verification.Email, verification.CreatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert verification sql: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}

	return nil
}

// Consume deletes the verification record and returns the email it was
// issued for. Delete-with-returning is a single statement, so concurrent
// redemptions of one token settle in Postgres: exactly one caller gets the
// email, the rest observe repository.ErrNotFound.
func (r *VerificationRepository) Consume(ctx context.Context, id string) (string, error) {
	stmt, args, err := r.builder.
		Delete(verificationsTable).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING email").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build delete verification sql: %w", err)
	}

	var email string
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("consume verification: %w", err)
	}

	return email, nil
}

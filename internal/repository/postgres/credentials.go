package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quantifun/uxrp/internal/core/domain"
	"github.com/quantifun/uxrp/internal/repository"
)

const credentialsTable = "auth.credentials"

// CredentialRepository implements port.CredentialRepository using PostgreSQL.
type CredentialRepository struct {
	db      Querier
	builder squirrel.StatementBuilderType
}

// NewCredentialRepository wires a PostgreSQL-backed credential repository.
func NewCredentialRepository(db Querier) *CredentialRepository {
	return &CredentialRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the credential record only if its key is absent. The insert
// and the existence check are a single statement, so two racing creates for
// the same email settle inside Postgres: one row lands, the loser observes
// repository.ErrDuplicate.
func (r *CredentialRepository) Create(ctx context.Context, cred domain.Credential) error {
	query := r.builder.Insert(credentialsTable).
		Columns(
			"id",
			"user_id",
			"password_hash",
			"password_salt",
			"email_verified",
			"created_at",
		).
		Values(
			cred.ID,
			cred.UserID,
			cred.PasswordHash,
			cred.PasswordSalt,
			cred.EmailVerified,
			cred.CreatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert credential sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert credential: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrDuplicate
	}

	return nil
}

// GetByID retrieves a credential record by its derived key.
func (r *CredentialRepository) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	stmt, args, err := r.builder.
		Select(
			"id",
			"user_id",
			"password_hash",
			"password_salt",
			"email_verified",
			"created_at",
		).
		From(credentialsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select credential sql: %w", err)
	}

	var cred domain.Credential
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := row.Scan(
		&cred.ID,
		&cred.UserID,
		&cred.PasswordHash,
		&cred.PasswordSalt,
		&cred.EmailVerified,
		&cred.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}

	return &cred, nil
}

// MarkEmailVerified flips the verified flag for the credential. The update
// only ever writes true, so the transition cannot be reversed through this
// repository.
func (r *CredentialRepository) MarkEmailVerified(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Update(credentialsTable).
		Set("email_verified", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update credential sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

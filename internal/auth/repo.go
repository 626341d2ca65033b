package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the identity-directory collaborator and the login audit
// registry. The directory is the only I/O boundary of the core; callers own
// its timeout and retry policy through the context they pass in.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*IdentityRecord, error)
	RecordLogin(ctx context.Context, token string, customerID int64, role string, ip, ua string) error
	RecordLogout(ctx context.Context, token string) error
}

// PGRepository implements Repository against PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches an active account by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*IdentityRecord, error) {
	const query = `SELECT customer_id, name, email, COALESCE(role, ''), is_staff, is_admin
        FROM support_users
        WHERE email = $1 AND is_active`
	record := &IdentityRecord{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&record.CustomerID,
		&record.Name,
		&record.Email,
		&record.Role,
		&record.IsStaff,
		&record.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return record, nil
}

// RecordLogin stores a login row for auditing. Only a hash of the token is
// persisted. Inserting the same token twice is treated as already recorded.
func (r *PGRepository) RecordLogin(ctx context.Context, token string, customerID int64, role string, ip, ua string) error {
	const query = `INSERT INTO login_sessions (token_hash, customer_id, role, created_at, ip, ua)
        VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		hashToken(token),
		customerID,
		role,
		pgtype.Timestamptz{Time: now, Valid: true},
		pgtype.Text{String: ip, Valid: ip != ""},
		pgtype.Text{String: ua, Valid: ua != ""},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return nil
	}
	return err
}

// RecordLogout closes the login row for the token.
func (r *PGRepository) RecordLogout(ctx context.Context, token string) error {
	const query = `UPDATE login_sessions SET ended_at = $2 WHERE token_hash = $1 AND ended_at IS NULL`
	_, err := r.pool.Exec(ctx, query,
		hashToken(token),
		pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	)
	return err
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

var _ Repository = (*PGRepository)(nil)

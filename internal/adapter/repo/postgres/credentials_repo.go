package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

// PgxPool is the subset of *pgxpool.Pool used by the store.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `CREATE TABLE IF NOT EXISTS credentials (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// CredentialRepo stores credentials in the credentials table.
type CredentialRepo struct{ Pool PgxPool }

var _ domain.CredentialStore = (*CredentialRepo)(nil)

// NewCredentialRepo constructs a CredentialRepo with the given pool.
func NewCredentialRepo(p PgxPool) *CredentialRepo { return &CredentialRepo{Pool: p} }

// EnsureSchema creates the credentials table when missing.
func (r *CredentialRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("op=credential.schema: %w", err)
	}
	return nil
}

// Load reads the value stored under key.
func (r *CredentialRepo) Load(ctx context.Context, key string) (string, bool, error) {
	tracer := otel.Tracer("repo.credentials")
	ctx, span := tracer.Start(ctx, "credentials.Load")
	defer span.End()
	var value string
	err := r.Pool.QueryRow(ctx, `SELECT value FROM credentials WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("op=credential.load: %w", err)
	}
	return value, true, nil
}

// Save inserts or replaces the value under key.
func (r *CredentialRepo) Save(ctx context.Context, key, value string) error {
	tracer := otel.Tracer("repo.credentials")
	ctx, span := tracer.Start(ctx, "credentials.Save")
	defer span.End()
	q := `INSERT INTO credentials (key, value, updated_at) VALUES ($1,$2,$3)
	ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`
	if _, err := r.Pool.Exec(ctx, q, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=credential.save: %w", err)
	}
	return nil
}

// Clear deletes key. Missing keys are not an error.
func (r *CredentialRepo) Clear(ctx context.Context, key string) error {
	tracer := otel.Tracer("repo.credentials")
	ctx, span := tracer.Start(ctx, "credentials.Clear")
	defer span.End()
	if _, err := r.Pool.Exec(ctx, `DELETE FROM credentials WHERE key=$1`, key); err != nil {
		return fmt.Errorf("op=credential.clear: %w", err)
	}
	return nil
}

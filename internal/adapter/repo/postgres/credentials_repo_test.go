package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

func TestCredentialRepo_Load(t *testing.T) {
	p := &poolStub{row: rowStub{scan: func(dest ...any) error {
		*(dest[0].(*string)) = "AIza-token"
		return nil
	}}}
	repo := postgres.NewCredentialRepo(p)

	v, ok, err := repo.Load(context.Background(), domain.CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AIza-token", v)
	assert.Equal(t, []any{domain.CredentialKey}, p.args[0])
}

func TestCredentialRepo_LoadMissing(t *testing.T) {
	p := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	v, ok, err := postgres.NewCredentialRepo(p).Load(context.Background(), domain.CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestCredentialRepo_LoadError(t *testing.T) {
	p := &poolStub{}
	_, _, err := postgres.NewCredentialRepo(p).Load(context.Background(), domain.CredentialKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=credential.load")
}

func TestCredentialRepo_SaveUpserts(t *testing.T) {
	p := &poolStub{}
	require.NoError(t, postgres.NewCredentialRepo(p).Save(context.Background(), domain.CredentialKey, "tok"))
	require.Len(t, p.sqls, 1)
	assert.Contains(t, p.sqls[0], "ON CONFLICT (key)")
	assert.Equal(t, domain.CredentialKey, p.args[0][0])
	assert.Equal(t, "tok", p.args[0][1])
}

func TestCredentialRepo_ExecErrors(t *testing.T) {
	p := &poolStub{execErr: errors.New("conn reset")}
	repo := postgres.NewCredentialRepo(p)
	assert.ErrorContains(t, repo.Save(context.Background(), "k", "v"), "op=credential.save")
	assert.ErrorContains(t, repo.Clear(context.Background(), "k"), "op=credential.clear")
	assert.ErrorContains(t, repo.EnsureSchema(context.Background()), "op=credential.schema")
}

func TestCredentialRepo_Clear(t *testing.T) {
	p := &poolStub{}
	require.NoError(t, postgres.NewCredentialRepo(p).Clear(context.Background(), domain.CredentialKey))
	assert.Contains(t, p.sqls[0], "DELETE FROM credentials")
}

//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

func TestCredentialRepo_Postgres(t *testing.T) {
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "app"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(90 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)
	dsn := "postgres://postgres:postgres@" + host + ":" + port.Port() + "/app?sslmode=disable"

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.Eventually(t, func() bool { return pool.Ping(ctx) == nil }, 30*time.Second, time.Second)

	repo := postgres.NewCredentialRepo(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, ok, err := repo.Load(ctx, domain.CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, domain.CredentialKey, "first"))
	require.NoError(t, repo.Save(ctx, domain.CredentialKey, "second"))
	v, ok, err := repo.Load(ctx, domain.CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	require.NoError(t, repo.Clear(ctx, domain.CredentialKey))
	_, ok, err = repo.Load(ctx, domain.CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

package file

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "nested"))

	_, ok, err := s.Load(ctx, domain.CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing file means no credential")

	require.NoError(t, s.Save(ctx, domain.CredentialKey, "AIza-123"))
	require.NoError(t, s.Save(ctx, "other", "x"))

	v, ok, err := s.Load(ctx, domain.CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AIza-123", v)

	require.NoError(t, s.Clear(ctx, domain.CredentialKey))
	_, ok, err = s.Load(ctx, domain.CredentialKey)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Load(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestStore_FileIsYAMLAndPrivate(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(context.Background(), domain.CredentialKey, "tok"))

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "gemini_api_key: tok\n", string(b))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(s.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("- not\n- a map\n"), 0o600))
	_, _, err := New(dir).Load(context.Background(), domain.CredentialKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=file.read")
}

func TestStore_ClearMissing(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Clear(context.Background(), domain.CredentialKey))
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "clearing nothing does not create the file")
	assert.NoError(t, s.Ping(context.Background()))
}

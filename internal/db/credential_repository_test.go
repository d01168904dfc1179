package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/coachdesk/internal/session"
	"gorm.io/gorm"
)

var _ session.TokenStore = (*CredentialRepository)(nil)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "coachdesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func TestCredentialRepositoryRoundTrip(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewCredentialRepository(database, "https://api.example.com/")
	ctx := context.Background()

	token, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, repo.Save(ctx, "first"))
	require.NoError(t, repo.Save(ctx, " second "))

	token, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	var rows int64
	require.NoError(t, database.Table("credentials").Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	require.NoError(t, repo.Clear(ctx))
	token, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestCredentialRepositoryIgnoresOtherBackend(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	staging := NewCredentialRepository(database, "https://staging.example.com")
	staging.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, staging.Save(ctx, "staging-token"))

	production := NewCredentialRepository(database, "https://api.example.com")
	token, err := production.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = staging.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "staging-token", token)
}

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "library.sqlite")
	db, err := NewDatabase(dbPath, WithLogLevel("silent"))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_CreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "library.sqlite")

	db, err := NewDatabase(dbPath, WithLogLevel("silent"))
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	assert.True(t, db.DB.Migrator().HasTable("authors"))
	assert.True(t, db.DB.Migrator().HasTable("books"))
}

func TestDatabase_Do(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	t.Run("commits when the callback succeeds", func(t *testing.T) {
		err := db.Do(ctx, func(ctx context.Context, store catalog.Store) error {
			return store.CreateAuthor(ctx, &entities.Author{Name: "Committed"})
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.DB.Model(&entities.Author{}).Where("name = ?", "Committed").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rolls back when the callback fails", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.Do(ctx, func(ctx context.Context, store catalog.Store) error {
			if err := store.CreateAuthor(ctx, &entities.Author{Name: "Rolled Back"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int64
		require.NoError(t, db.DB.Model(&entities.Author{}).Where("name = ?", "Rolled Back").Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestDatabase_Ping(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Error, parseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}

func TestDSN(t *testing.T) {
	got := dsn("./data/library.sqlite", 5*time.Second)
	assert.Contains(t, got, "_foreign_keys=on")
	assert.Contains(t, got, "_busy_timeout=5000")
	assert.Contains(t, got, "_txlock=immediate")
}

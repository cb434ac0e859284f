package gormstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"deanery-backend/internal/model"
	"deanery-backend/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Group{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestCommitPersistsWorkingSet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := New[model.Group](db)

	require.NoError(t, s.Insert(ctx, model.Group{ID: "g1", Name: "KN-21", Specialization: "CS", Year: 2}))
	require.NoError(t, s.Insert(ctx, model.Group{ID: "g2", Name: "KN-22", Specialization: "CS", Year: 2,
		StudentIDs: []string{"s1", "s2"}}))

	// Another store over the same database sees nothing before Commit.
	other := New[model.Group](db)
	items, err := other.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.Commit(ctx))

	items, err = other.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	got, ok, err := other.GetByID(ctx, "g2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"s1", "s2"}, got.StudentIDs)
}

func TestCommitReconcilesDeletes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := New[model.Group](db)

	require.NoError(t, s.Insert(ctx, model.Group{ID: "g1", Name: "KN-21", Specialization: "CS", Year: 2}))
	require.NoError(t, s.Insert(ctx, model.Group{ID: "g2", Name: "KN-22", Specialization: "CS", Year: 2}))
	require.NoError(t, s.Commit(ctx))

	require.NoError(t, s.Delete(ctx, "g1"))
	require.NoError(t, s.Commit(ctx))

	fresh := New[model.Group](db)
	items, err := fresh.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "g2", items[0].ID)

	// Emptying the collection drops every row.
	require.NoError(t, s.Delete(ctx, "g2"))
	require.NoError(t, s.Commit(ctx))

	items, err = New[model.Group](db).ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReplaceUpdatesRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := New[model.Group](db)

	require.NoError(t, s.Insert(ctx, model.Group{ID: "g1", Name: "KN-21", Specialization: "CS", Year: 2}))
	require.NoError(t, s.Commit(ctx))

	got, ok, err := s.GetByID(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	got.Name = "KN-21m"
	got.StudentIDs = []string{"s1"}
	require.NoError(t, s.Replace(ctx, got))
	require.NoError(t, s.Commit(ctx))

	fresh, ok, err := New[model.Group](db).GetByID(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "KN-21m", fresh.Name)
	assert.Equal(t, []string{"s1"}, fresh.StudentIDs)
}

func TestMissingRecordErrors(t *testing.T) {
	ctx := context.Background()
	s := New[model.Group](newTestDB(t))

	var serr *storage.Error
	assert.ErrorAs(t, s.Replace(ctx, model.Group{ID: "ghost"}), &serr)
	assert.ErrorIs(t, s.Delete(ctx, "ghost"), storage.ErrNoSuchRecord)
}

package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deanery-backend/internal/storage"
)

type note struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func (n note) EntityID() string { return n.ID }

func newNoteStore(t *testing.T, dir string) *Store[note] {
	t.Helper()
	s, err := New[note](dir, "notes.json")
	require.NoError(t, err)
	return s
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	s := newNoteStore(t, t.TempDir())

	items, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	_, ok, err := s.GetByID(context.Background(), "n1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUncommittedWritesVisibleToSameStoreOnly(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := newNoteStore(t, dir)

	require.NoError(t, s.Insert(ctx, note{ID: "n1", Body: "first"}))

	// The writing store sees its own staged insert.
	got, ok, err := s.GetByID(ctx, "n1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", got.Body)

	// A second store over the same file sees nothing before Commit.
	other := newNoteStore(t, dir)
	items, err := other.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.Commit(ctx))

	items, err = other.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "n1", items[0].ID)
}

func TestReplaceAndDelete(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := newNoteStore(t, dir)

	require.NoError(t, s.Insert(ctx, note{ID: "n1", Body: "first"}))
	require.NoError(t, s.Insert(ctx, note{ID: "n2", Body: "second"}))
	require.NoError(t, s.Commit(ctx))

	require.NoError(t, s.Replace(ctx, note{ID: "n1", Body: "changed"}))
	require.NoError(t, s.Delete(ctx, "n2"))
	require.NoError(t, s.Commit(ctx))

	fresh := newNoteStore(t, dir)
	items, err := fresh.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, note{ID: "n1", Body: "changed"}, items[0])
}

func TestReplaceAndDeleteMissingRecord(t *testing.T) {
	ctx := context.Background()
	s := newNoteStore(t, t.TempDir())

	var serr *storage.Error
	err := s.Replace(ctx, note{ID: "ghost"})
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, storage.ErrNoSuchRecord)

	err = s.Delete(ctx, "ghost")
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, storage.ErrNoSuchRecord)
}

func TestCommitWithoutWritesLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := newNoteStore(t, dir)
	require.NoError(t, s.Insert(ctx, note{ID: "n1"}))
	require.NoError(t, s.Commit(ctx))

	// A clean store committing must not clobber the file with an empty set.
	fresh := newNoteStore(t, dir)
	require.NoError(t, fresh.Commit(ctx))

	items, err := fresh.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCorruptFileSurfacesStorageError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{not json"), 0o644))

	s := newNoteStore(t, dir)
	var serr *storage.Error
	_, err := s.ListAll(context.Background())
	assert.ErrorAs(t, err, &serr)
}

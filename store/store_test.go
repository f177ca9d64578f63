package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	alice, bob := uuid.NewString(), uuid.NewString()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := &Record{UserID: alice, URL: "https://a.test/1", Title: "One", OriginalText: "text one", SummaryText: "- one", CreatedAt: base}
	second := &Record{UserID: alice, URL: "https://a.test/2", OriginalText: "text two", SummaryText: "- two", CreatedAt: base.Add(time.Hour)}
	other := &Record{UserID: bob, URL: "https://b.test", OriginalText: "text", SummaryText: "- b", CreatedAt: base}
	for _, rec := range []*Record{first, second, other} {
		require.NoError(t, s.Create(ctx, rec))
		require.NotEmpty(t, rec.ID)
		assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	}

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.URL, got.URL)
	assert.Equal(t, "One", got.Title)
	assert.Equal(t, "text one", got.OriginalText)
	assert.True(t, base.Equal(got.CreatedAt))

	_, err = s.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := s.UpdateSummary(ctx, first.ID, "- edited")
	require.NoError(t, err)
	assert.Equal(t, "- edited", updated.SummaryText)
	assert.Equal(t, "text one", updated.OriginalText)
	assert.True(t, updated.UpdatedAt.After(base))
	assert.True(t, base.Equal(updated.CreatedAt))

	_, err = s.UpdateSummary(ctx, uuid.NewString(), "- x")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := s.ListByUser(ctx, alice, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	list, err = s.ListByUser(ctx, alice, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = s.ListByUser(ctx, uuid.NewString(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	testStore(t, s)
}

func TestMemory_DuplicateID(t *testing.T) {
	s := NewMemory()
	rec := &Record{ID: "fixed", UserID: "u"}
	require.NoError(t, s.Create(context.Background(), rec))
	assert.Error(t, s.Create(context.Background(), &Record{ID: "fixed"}))
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "pagebrief.db"))
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagebrief.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	rec := &Record{UserID: "u", URL: "https://x.test", OriginalText: "t", SummaryText: "- s"}
	require.NoError(t, s.Create(context.Background(), rec))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "- s", got.SummaryText)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("PAGEBRIEF_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PAGEBRIEF_TEST_DATABASE_URL not set")
	}
	s, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	defer s.Close()
	testStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, "sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, "mongo", "")
	assert.Error(t, err)

	_, err = Open(ctx, "sqlite", "")
	assert.Error(t, err)
}

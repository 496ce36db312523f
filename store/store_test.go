package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreGetPut(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			var got record
			found, err := s.Get(ctx, KeyBanking, &got)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.Put(ctx, KeyBanking, record{Name: "first", Score: 1}))
			require.NoError(t, s.Put(ctx, KeyBanking, record{Name: "second", Score: 72.5}))

			found, err = s.Get(ctx, KeyBanking, &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, record{Name: "second", Score: 72.5}, got)
		})
	}
}

func TestStoreAppendKeepsOrder(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := ListAll[record](ctx, s, KeyCases)
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, s.Append(ctx, KeyCases, record{Name: "a"}))
			require.NoError(t, s.Append(ctx, KeyCases, record{Name: "b"}))
			require.NoError(t, s.Append(ctx, KeyCases, record{Name: "a"}))
			require.NoError(t, s.Append(ctx, "other", record{Name: "z"}))

			items, err := ListAll[record](ctx, s, KeyCases)
			require.NoError(t, err)
			assert.Equal(t, []record{{Name: "a"}, {Name: "b"}, {Name: "a"}}, items)
		})
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "underwriting.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyWorkingCapital, record{Name: "wc", Score: 60}))
	require.NoError(t, s.Append(ctx, KeyCases, record{Name: "Acme Corp"}))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	var wc record
	found, err := reopened.Get(ctx, KeyWorkingCapital, &wc)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 60.0, wc.Score)

	cases, err := ListAll[record](ctx, reopened, KeyCases)
	require.NoError(t, err)
	assert.Equal(t, []record{{Name: "Acme Corp"}}, cases)
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Put(ctx, "k", 1), ErrClosed)
	assert.ErrorIs(t, s.Append(ctx, "k", 1), ErrClosed)

	_, err := s.Get(ctx, "k", new(int))
	assert.ErrorIs(t, err, ErrClosed)
}

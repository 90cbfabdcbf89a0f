package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/roster/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := DefaultConfig(filepath.Join(t.TempDir(), "roster.db"))
	s, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := newTestStore(t)

	users, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := []domain.User{
		{ID: "1", Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"},
		{ID: "2", Name: "Grace Hopper", Username: "grace", Email: "grace@example.com"},
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSaveReplacesAndKeepsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []domain.User{
		{ID: "a", Name: "A", Username: "a", Email: "a@x.com"},
		{ID: "b", Name: "B", Username: "b", Email: "b@x.com"},
	}))

	replacement := []domain.User{
		{ID: "c", Name: "C", Username: "c", Email: "c@x.com"},
		{ID: "b", Name: "B", Username: "b", Email: "b@x.com"},
		{ID: "a", Name: "A", Username: "a", Email: "a@x.com"},
	}
	require.NoError(t, s.Save(ctx, replacement))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, replacement, got)
}

package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "users.json"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
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

func TestSavePreservesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users := []domain.User{
		{ID: "c", Name: "C", Username: "c", Email: "c@x.com"},
		{ID: "a", Name: "A", Username: "a", Email: "a@x.com"},
		{ID: "b", Name: "B", Username: "b", Email: "b@x.com"},
	}
	require.NoError(t, s.Save(ctx, users))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSaveReplacesWholeCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []domain.User{
		{ID: "1", Name: "Ada", Username: "ada", Email: "ada@x.com"},
		{ID: "2", Name: "Grace", Username: "grace", Email: "grace@x.com"},
	}))
	require.NoError(t, s.Save(ctx, []domain.User{
		{ID: "3", Name: "Edsger", Username: "edsger", Email: "edsger@x.com"},
	}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)
}

func TestSaveEmptyCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []domain.User{{ID: "1", Name: "Ada", Username: "ada", Email: "ada@x.com"}}))
	require.NoError(t, s.Save(ctx, []domain.User{}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLoadCorruptFile(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, store.ErrCorrupt)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []domain.User{{ID: "1", Name: "Ada", Username: "ada", Email: "ada@x.com"}}))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, filepath.Base(s.Path()), entries[0].Name())
}

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prn-tf/roster/internal/domain"
)

// memStore is an in-memory RecordStore for repository tests.
type memStore struct {
	users   []domain.User
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load(_ context.Context) ([]domain.User, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.User(nil), m.users...), nil
}

func (m *memStore) Save(_ context.Context, users []domain.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.users = append([]domain.User(nil), users...)
	m.saves++
	return nil
}

func seeded() *memStore {
	return &memStore{users: []domain.User{
		{ID: "id-1", Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"},
		{ID: "id-2", Name: "Grace Hopper", Username: "grace", Email: "grace@example.com"},
	}}
}

func TestCreateThenGetByIDRoundTrip(t *testing.T) {
	repo := NewUserRepository(&memStore{})
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.UserFields{
		Name: "Ada", Username: "ada", Email: "ada@x.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Ada", created.Name)
	require.Equal(t, "ada", created.Username)
	require.Equal(t, "ada@x.com", created.Email)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	repo := NewUserRepository(&memStore{})
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		u, err := repo.Create(ctx, domain.UserFields{Name: "N", Username: "u", Email: "e@x.com"})
		require.NoError(t, err)
		require.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
	}
}

func TestCreateAppendsToEnd(t *testing.T) {
	st := seeded()
	repo := NewUserRepository(st)

	created, err := repo.Create(context.Background(), domain.UserFields{
		Name: "Edsger", Username: "edsger", Email: "edsger@x.com",
	})
	require.NoError(t, err)
	require.Len(t, st.users, 3)
	require.Equal(t, created.ID, st.users[2].ID)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewUserRepository(seeded())

	_, err := repo.GetByID(context.Background(), "does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllReturnsStorageOrder(t *testing.T) {
	repo := NewUserRepository(seeded())

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "id-1", users[0].ID)
	require.Equal(t, "id-2", users[1].ID)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := NewUserRepository(seeded())

	name := "Augusta Ada King"
	updated, err := repo.Update(context.Background(), "id-1", domain.UserPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "id-1", updated.ID)
	require.Equal(t, "Augusta Ada King", updated.Name)
	require.Equal(t, "ada", updated.Username)
	require.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewUserRepository(seeded())

	name := "X"
	_, err := repo.Update(context.Background(), "does-not-exist", domain.UserPatch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePersists(t *testing.T) {
	st := seeded()
	repo := NewUserRepository(st)

	email := "ada@lovelace.dev"
	_, err := repo.Update(context.Background(), "id-1", domain.UserPatch{Email: &email})
	require.NoError(t, err)
	require.Equal(t, 1, st.saves)
	require.Equal(t, "ada@lovelace.dev", st.users[0].Email)
}

func TestDeleteRemovesAndReports(t *testing.T) {
	st := seeded()
	repo := NewUserRepository(st)
	ctx := context.Background()

	removed, err := repo.Delete(ctx, "id-1")
	require.NoError(t, err)
	require.True(t, removed)
	require.Len(t, st.users, 1)

	_, err = repo.GetByID(ctx, "id-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingIsNoOp(t *testing.T) {
	st := seeded()
	repo := NewUserRepository(st)

	removed, err := repo.Delete(context.Background(), "does-not-exist")
	require.NoError(t, err)
	require.False(t, removed)
	require.Equal(t, 0, st.saves)
}

func TestStoreErrorsPropagate(t *testing.T) {
	ioErr := errors.New("disk gone")
	repo := NewUserRepository(&memStore{loadErr: ioErr})
	ctx := context.Background()

	_, err := repo.GetAll(ctx)
	require.ErrorIs(t, err, ioErr)

	_, err = repo.Create(ctx, domain.UserFields{Name: "N", Username: "u", Email: "e@x.com"})
	require.ErrorIs(t, err, ioErr)

	_, err = repo.Delete(ctx, "id-1")
	require.ErrorIs(t, err, ioErr)
}

func TestSaveErrorDoesNotReportDeletion(t *testing.T) {
	st := seeded()
	st.saveErr = errors.New("disk full")
	repo := NewUserRepository(st)

	removed, err := repo.Delete(context.Background(), "id-1")
	require.Error(t, err)
	require.False(t, removed)
}

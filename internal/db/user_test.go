package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/internal/db"
	"github.com/synctv-org/authd/internal/db/dbtest"
	"github.com/synctv-org/authd/internal/model"
)

func TestFindUserByEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := dbtest.Open(t)

	u := &model.User{Name: "alice", Email: model.EmptyNullEmail("Alice@Example.com")}
	require.NoError(t, s.CreateUser(ctx, u))
	require.NotZero(t, u.ID)

	got, err := s.FindUserByEmail(ctx, "ALICE@example.COM")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "alice@example.com", got.EmailString())

	_, err = s.FindUserByEmail(ctx, "bob@example.com")
	require.ErrorIs(t, err, db.ErrNotFound)

	_, err = s.FindUserByID(ctx, u.ID+100)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := dbtest.Open(t)

	require.NoError(t, s.CreateUser(ctx, &model.User{Name: "a", Email: model.EmptyNullEmail("a@example.com")}))
	err := s.CreateUser(ctx, &model.User{Name: "b", Email: model.EmptyNullEmail("A@example.com")})
	require.ErrorIs(t, err, db.ErrDuplicate)
}

func TestProviderLinks(t *testing.T) {
	ctx := context.Background()
	s := dbtest.Open(t)

	a := &model.User{Name: "a"}
	b := &model.User{Name: "b"}
	require.NoError(t, s.CreateUser(ctx, a))
	require.NoError(t, s.CreateUser(ctx, b))

	key := model.ProviderLinkKey{Provider: "github", ProviderUserID: "42"}
	require.NoError(t, s.CreateProviderLink(ctx, &model.UserProvider{Provider: "github", ProviderUserID: "42", UserID: a.ID}))

	got, err := s.FindUserByProvider(ctx, key)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	err = s.CreateProviderLink(ctx, &model.UserProvider{Provider: "github", ProviderUserID: "42", UserID: b.ID})
	require.ErrorIs(t, err, db.ErrDuplicate)

	_, err = s.FindUserByProvider(ctx, model.ProviderLinkKey{Provider: "google", ProviderUserID: "42"})
	require.ErrorIs(t, err, db.ErrNotFound)
}

// Relinking an owned provider identity moves it to the new user.
func TestUpsertProviderLinkLastWriterWins(t *testing.T) {
	ctx := context.Background()
	s := dbtest.Open(t)

	a := &model.User{Name: "a"}
	b := &model.User{Name: "b"}
	require.NoError(t, s.CreateUser(ctx, a))
	require.NoError(t, s.CreateUser(ctx, b))

	key := model.ProviderLinkKey{Provider: "github", ProviderUserID: "42"}
	require.NoError(t, s.UpsertProviderLink(ctx, &model.UserProvider{Provider: "github", ProviderUserID: "42", UserID: a.ID}))
	require.NoError(t, s.UpsertProviderLink(ctx, &model.UserProvider{Provider: "github", ProviderUserID: "42", UserID: b.ID}))

	got, err := s.FindUserByProvider(ctx, key)
	require.NoError(t, err)
	require.Equal(t, b.ID, got.ID)

	links, err := s.ListProviderLinks(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, links)

	links, err = s.ListProviderLinks(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
}

func TestTransactionalRollsBack(t *testing.T) {
	ctx := context.Background()
	s := dbtest.Open(t)

	owner := &model.User{Name: "owner"}
	require.NoError(t, s.CreateUser(ctx, owner))
	require.NoError(t, s.CreateProviderLink(ctx, &model.UserProvider{Provider: "github", ProviderUserID: "42", UserID: owner.ID}))

	err := s.Transactional(ctx, func(tx db.Repository) error {
		u := &model.User{Name: "orphan", Email: model.EmptyNullEmail("orphan@example.com")}
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		return tx.CreateProviderLink(ctx, &model.UserProvider{Provider: "github", ProviderUserID: "42", UserID: u.ID})
	})
	require.ErrorIs(t, err, db.ErrDuplicate)

	_, err = s.FindUserByEmail(ctx, "orphan@example.com")
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestTransactionalCommits(t *testing.T) {
	ctx := context.Background()
	s := dbtest.Open(t)

	var id uint
	err := s.Transactional(ctx, func(tx db.Repository) error {
		u := &model.User{Name: "new"}
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		id = u.ID
		return tx.CreateProviderLink(ctx, &model.UserProvider{Provider: "gitlab", ProviderUserID: "7", UserID: u.ID})
	})
	require.NoError(t, err)

	got, err := s.FindUserByProvider(ctx, model.ProviderLinkKey{Provider: "gitlab", ProviderUserID: "7"})
	require.NoError(t, err)
	require.Equal(t, id, got.ID)

	sentinel := errors.New("stop")
	err = s.Transactional(ctx, func(tx db.Repository) error { return sentinel })
	require.ErrorIs(t, err, sentinel)
}

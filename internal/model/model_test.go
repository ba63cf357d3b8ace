package model_test

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/internal/model"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sqlite.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(new(model.User), new(model.UserProvider)))
	return db
}

func TestNullEmailsDoNotCollide(t *testing.T) {
	db := openDB(t)

	require.NoError(t, db.Create(&model.User{Name: "a"}).Error)
	require.NoError(t, db.Create(&model.User{Name: "b"}).Error)

	require.NoError(t, db.Create(&model.User{Name: "c", Email: model.EmptyNullEmail("c@example.com")}).Error)
	require.Error(t, db.Create(&model.User{Name: "d", Email: model.EmptyNullEmail("C@Example.com ")}).Error)
}

func TestCreateUserWithProvider(t *testing.T) {
	db := openDB(t)

	user := model.User{
		Name: "octocat",
		UserProviders: []*model.UserProvider{{
			Provider:       "github",
			ProviderUserID: "583231",
		}},
	}
	require.NoError(t, db.Create(&user).Error)
	require.NotZero(t, user.ID)
	require.False(t, user.HasPassword())

	var link model.UserProvider
	require.NoError(t, db.First(&link).Error)
	require.Equal(t, user.ID, link.UserID)
	require.Equal(t, model.ProviderLinkKey{Provider: "github", ProviderUserID: "583231"}, link.Key())
}

func TestEmptyNullEmail(t *testing.T) {
	require.Nil(t, model.EmptyNullEmail("   "))
	require.Equal(t, "alice@example.com", *model.EmptyNullEmail(" Alice@Example.COM"))

	u := model.User{}
	require.Equal(t, "", u.EmailString())
}

package db

import (
	"context"

	"github.com/synctv-org/authd/internal/model"
	"gorm.io/gorm/clause"
)

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("email = ?", model.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, HandleNotFound(err, "user")
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, HandleNotFound(err, "user")
	}
	return &user, nil
}

func (s *Store) FindUserByProvider(ctx context.Context, p model.ProviderLinkKey) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Joins("JOIN user_providers ON users.id = user_providers.user_id").
		Where("user_providers.provider = ? AND user_providers.provider_user_id = ?", p.Provider, p.ProviderUserID).
		First(&user).Error
	if err != nil {
		return nil, HandleNotFound(err, "user")
	}
	return &user, nil
}

// CreateUser inserts u and fills in its id. A taken email yields ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	if u.Email != nil {
		u.Email = model.EmptyNullEmail(*u.Email)
	}
	return HandleDuplicate(s.db.WithContext(ctx).Omit("UserProviders").Create(u).Error, "user")
}

// CreateProviderLink inserts a new link and fails with ErrDuplicate when the
// (provider, provider_user_id) pair is already owned.
func (s *Store) CreateProviderLink(ctx context.Context, l *model.UserProvider) error {
	return HandleDuplicate(s.db.WithContext(ctx).Create(l).Error, "provider link")
}

// UpsertProviderLink points the (provider, provider_user_id) pair at
// l.UserID, replacing any previous owner.
func (s *Store) UpsertProviderLink(ctx context.Context, l *model.UserProvider) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "updated_at"}),
	}).Create(l).Error
}

func (s *Store) ListProviderLinks(ctx context.Context, userID uint) ([]*model.UserProvider, error) {
	var links []*model.UserProvider
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("provider").
		Find(&links).Error
	return links, err
}

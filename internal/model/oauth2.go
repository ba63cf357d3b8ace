package model

import (
	"time"

	"github.com/synctv-org/authd/internal/provider"
)

// UserProvider links a user to an identity at an OAuth2 provider. The
// (provider, provider_user_id) pair is the primary key, so a provider
// identity belongs to at most one user.
type UserProvider struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Provider       provider.OAuth2Provider `gorm:"primaryKey;type:varchar(32)"`
	ProviderUserID string                  `gorm:"primaryKey;type:varchar(64)"`
	UserID         uint                    `gorm:"not null;index"`
}

// ProviderLinkKey identifies an account at a provider.
type ProviderLinkKey struct {
	Provider       provider.OAuth2Provider
	ProviderUserID string
}

func (l *UserProvider) Key() ProviderLinkKey {
	return ProviderLinkKey{Provider: l.Provider, ProviderUserID: l.ProviderUserID}
}

package identity

import (
	"context"

	"github.com/synctv-org/authd/internal/provider"
)

// EmailTrust decides whether the email asserted by a provider may be used
// to find or create a user by email. An untrusted email is treated as absent.
type EmailTrust func(ctx context.Context, id ProviderIdentity) bool

func TrustVerifiedEmail(_ context.Context, id ProviderIdentity) bool {
	return id.EmailVerified
}

// TrustVerifiedEmailFrom trusts verified emails only from the listed providers.
func TrustVerifiedEmailFrom(ps ...provider.OAuth2Provider) EmailTrust {
	allowed := make(map[provider.OAuth2Provider]struct{}, len(ps))
	for _, p := range ps {
		allowed[p] = struct{}{}
	}
	return func(ctx context.Context, id ProviderIdentity) bool {
		if _, ok := allowed[id.Provider]; !ok {
			return false
		}
		return TrustVerifiedEmail(ctx, id)
	}
}

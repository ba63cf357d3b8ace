package identity

import (
	log "github.com/sirupsen/logrus"
)

type Option func(*Resolver)

func WithEmailTrust(trust EmailTrust) Option {
	return func(r *Resolver) {
		if trust != nil {
			r.trust = trust
		}
	}
}

func WithLogger(l log.FieldLogger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithAttempts bounds how many times provider resolution restarts after
// losing a uniqueness race.
func WithAttempts(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.attempts = n
		}
	}
}

package conf

import "time"

//nolint:tagliatelle
type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET"      yaml:"secret"      hc:"cookie signing key, generated on first start"`
	CookieName string        `env:"SESSION_COOKIE_NAME" yaml:"cookie_name"`
	TTL        time.Duration `env:"SESSION_TTL"         yaml:"ttl"         hc:"session lifetime, renewed on activity"`
	Secure     bool          `env:"SESSION_SECURE"      yaml:"secure"      hc:"only send cookies over https"`
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName: "authd_session",
		TTL:        7 * 24 * time.Hour,
		Secure:     false,
	}
}

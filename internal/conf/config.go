package conf

import (
	"github.com/synctv-org/authd/utils"
)

//nolint:tagliatelle
type Config struct {
	// Log
	Log LogConfig `yaml:"log"`

	// Server
	Server ServerConfig `yaml:"server"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Redis
	Redis RedisConfig `yaml:"redis"`

	// Session
	Session SessionConfig `yaml:"session"`

	// Password
	Password PasswordConfig `yaml:"password"`

	// OAuth2
	OAuth2 OAuth2Config `yaml:"oauth2"`
}

func (c *Config) Save(file string) error {
	return utils.WriteYaml(file, c)
}

func DefaultConfig() *Config {
	return &Config{
		// Log
		Log: DefaultLogConfig(),

		// Server
		Server: DefaultServerConfig(),

		// Database
		Database: DefaultDatabaseConfig(),

		// Redis
		Redis: DefaultRedisConfig(),

		// Session
		Session: DefaultSessionConfig(),

		// Password
		Password: DefaultPasswordConfig(),

		// OAuth2
		OAuth2: DefaultOAuth2Config(),
	}
}

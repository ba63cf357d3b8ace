package conf

//nolint:tagliatelle
type RedisConfig struct {
	Enable   bool   `env:"REDIS_ENABLE"   yaml:"enable"   hc:"when disabled, sessions are kept in process memory"`
	Addr     string `env:"REDIS_ADDR"     yaml:"addr"`
	Username string `env:"REDIS_USERNAME" yaml:"username"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
	Prefix   string `env:"REDIS_PREFIX"   yaml:"prefix"   hc:"key prefix for session ids"`
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Enable: false,
		Addr:   "127.0.0.1:6379",
		Prefix: "authd:sess:",
	}
}

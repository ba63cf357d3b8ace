package conf

//nolint:tagliatelle
type PasswordConfig struct {
	BcryptCost  int `env:"PASSWORD_BCRYPT_COST" yaml:"bcrypt_cost"`
	Concurrency int `env:"PASSWORD_CONCURRENCY" yaml:"concurrency" hc:"max concurrent hash operations, 0 means GOMAXPROCS"`
}

func DefaultPasswordConfig() PasswordConfig {
	return PasswordConfig{
		BcryptCost:  10,
		Concurrency: 0,
	}
}

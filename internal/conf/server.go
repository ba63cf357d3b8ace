package conf

//nolint:tagliatelle
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http"`

	FrontendURL string   `env:"SERVER_FRONTEND_URL" yaml:"frontend_url" hc:"redirect target after oauth2 login"`
	CorsOrigins []string `env:"SERVER_CORS_ORIGINS" yaml:"cors_origins" hc:"empty allows the frontend url only"`
	Metrics     bool     `env:"SERVER_METRICS"      yaml:"metrics"      hc:"expose prometheus metrics at /metrics"`
}

//nolint:tagliatelle
type HTTPServerConfig struct {
	Listen string `env:"SERVER_LISTEN" yaml:"listen"`
	Port   uint16 `env:"SERVER_PORT"   yaml:"port"`

	CertPath string `env:"SERVER_CERT_PATH" yaml:"cert_path"`
	KeyPath  string `env:"SERVER_KEY_PATH"  yaml:"key_path"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTP: HTTPServerConfig{
			Listen:   "0.0.0.0",
			Port:     8080,
			CertPath: "",
			KeyPath:  "",
		},
		FrontendURL: "http://localhost:3000",
		Metrics:     true,
	}
}

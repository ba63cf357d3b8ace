package conf

//nolint:tagliatelle
type LogConfig struct {
	Level     string `env:"LOG_LEVEL"  yaml:"level"      hc:"can be set: debug | info | warn | error, dev mode forces debug"`
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format" hc:"can be set: text | json"`

	Enable     bool   `env:"LOG_ENABLE"      yaml:"enable"      hc:"also write to a rotated file"`
	FilePath   string `env:"LOG_FILE_PATH"   yaml:"file_path"   hc:"relative paths are under the data dir"`
	MaxSize    int    `env:"LOG_MAX_SIZE"    yaml:"max_size"    cm:"mb"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" yaml:"max_backups"`
	MaxAge     int    `env:"LOG_MAX_AGE"     yaml:"max_age"     cm:"days"`
	Compress   bool   `env:"LOG_COMPRESS"    yaml:"compress"`
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		LogFormat:  "text",
		Enable:     true,
		FilePath:   "log/authd.log",
		MaxSize:    10,
		MaxBackups: 10,
		MaxAge:     28,
	}
}

package flags

var (
	Dev         bool
	LogStd      bool
	DataDir     string
	SkipConfig  bool
	SkipEnv     bool
	EnvNoPrefix bool
)

const (
	ENV_PREFIX = "AUTHD_"
)

package conf

// Conf is set once during bootstrap and read-only afterwards.
var Conf *Config

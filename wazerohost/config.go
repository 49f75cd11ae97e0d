package wazerohost

import "go.uber.org/zap"

// ModuleName is the import module guests use for reference functions.
const ModuleName = "hostbridge"

// DefaultMaxFrames bounds how many frames may be open at once.
const DefaultMaxFrames = 32

// Config holds configuration for an Env.
type Config struct {
	// Logger receives reference diagnostics. Nil uses Logger().
	Logger *zap.Logger

	// MaxFrames limits nested frames. 0 means DefaultMaxFrames.
	MaxFrames int
}

// Option mutates Config.
type Option func(*Config)

func WithMaxFrames(n int) Option {
	return func(c *Config) {
		c.MaxFrames = n
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

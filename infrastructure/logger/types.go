package logger

// Config controls logger construction.
type Config struct {
	// Level is the minimum level: debug, info, warn, error or fatal.
	Level string `env:"LOG_LEVEL" yaml:"level"`
	// Format is accepted for config compatibility; output is always JSON.
	Format string `env:"LOG_FORMAT" yaml:"format"`
	// Development disables sampling.
	Development bool `yaml:"development"`
	// OutputPaths are zap sink URLs or file paths.
	OutputPaths []string `yaml:"output_paths"`
}

const (
	// DefaultLevel is used when Level is empty.
	DefaultLevel = "info"
	// DefaultFormat is used when Format is empty.
	DefaultFormat = "json"
)

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stdout"}
	}
}

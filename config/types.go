package config

// Config represents the complete configuration structure
type Config struct {
	Instance InstanceConfig `mapstructure:"instance"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// InstanceConfig holds WriteFreely instance connection details
type InstanceConfig struct {
	URL       string `mapstructure:"url"`
	Token     string `mapstructure:"token"`
	Timeout   int    `mapstructure:"timeout"`
	UserAgent string `mapstructure:"user_agent"`
}

// FilterConfig contains post filter definitions
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

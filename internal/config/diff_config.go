package config

// DiffConfig defines configuration for content diffing
type DiffConfig struct {
	IgnoreWhitespace bool `json:"ignore_whitespace" yaml:"ignore_whitespace"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		IgnoreWhitespace: DefaultDiffIgnoreWhitespace,
	}
}

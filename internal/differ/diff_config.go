package differ

// LineDiffConfig holds configuration for line-based diffing
type LineDiffConfig struct {
	IgnoreWhitespace bool
}

// DefaultLineDiffConfig returns default configuration
func DefaultLineDiffConfig() LineDiffConfig {
	return LineDiffConfig{
		IgnoreWhitespace: true,
	}
}

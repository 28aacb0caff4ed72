package config

// ReporterConfig defines configuration for rendering comparison output
type ReporterConfig struct {
	ContextLines int    `json:"context_lines,omitempty" yaml:"context_lines,omitempty" validate:"omitempty,min=0"`
	Format       string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,outputformat"`
	NoColor      bool   `json:"no_color" yaml:"no_color"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		ContextLines: DefaultReporterContextLines,
		Format:       DefaultReporterFormat,
		NoColor:      false,
	}
}

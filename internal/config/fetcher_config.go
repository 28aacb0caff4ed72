package config

// FetcherConfig defines configuration for the HTTP fetcher
type FetcherConfig struct {
	EnableHTTP2        bool   `json:"enable_http2" yaml:"enable_http2"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MaxContentSizeMB   int    `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"omitempty,min=1"`
	MaxRedirects       int    `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"omitempty,min=0"`
	TimeoutSecs        int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultFetcherConfig creates default fetcher configuration
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		EnableHTTP2:      DefaultFetcherEnableHTTP2,
		MaxContentSizeMB: DefaultFetcherMaxContentSizeMB,
		MaxRedirects:     DefaultFetcherMaxRedirects,
		TimeoutSecs:      DefaultFetcherTimeoutSecs,
		UserAgent:        DefaultFetcherUserAgent,
	}
}

// MaxContentSizeBytes converts the configured limit to bytes.
// A zero or negative limit disables the size cap.
func (fc FetcherConfig) MaxContentSizeBytes() int64 {
	if fc.MaxContentSizeMB <= 0 {
		return 0
	}
	return int64(fc.MaxContentSizeMB) * 1024 * 1024
}

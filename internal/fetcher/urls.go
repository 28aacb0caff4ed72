package fetcher

import (
	"net/url"
	"strings"

	"pagediff/internal/common"
)

// NormalizeTargetURL validates a comparison target and returns it in a
// fetchable form. Bare hostnames get an https scheme so command-line
// arguments like "example.com" work without ceremony.
func NormalizeTargetURL(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", common.NewError("target URL is empty or only whitespace")
	}

	if !strings.Contains(trimmedURL, "://") && !strings.HasPrefix(trimmedURL, "//") {
		trimmedURL = "https://" + trimmedURL
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return "", common.WrapErrorf(err, "could not parse URL '%s'", rawURL)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", common.NewError("unsupported URL scheme '%s' in '%s'", parsedURL.Scheme, rawURL)
	}

	if parsedURL.Host == "" {
		return "", common.NewError("URL '%s' lacks a hostname", rawURL)
	}

	return parsedURL.String(), nil
}

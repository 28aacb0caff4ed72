// Package fetcher retrieves the two pages of a comparison over HTTP.
package fetcher

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"pagediff/internal/common"
	"pagediff/internal/config"
	"pagediff/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/sync/errgroup"
)

const (
	dialTimeout         = 10 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	idleConnTimeout     = 90 * time.Second
	maxIdleConns        = 100
	maxIdleConnsPerHost = 10

	// maxErrorBodySize caps how much of a failed response is kept in the error message.
	maxErrorBodySize = 1024
)

// Fetcher downloads page content with a shared, tuned HTTP client.
type Fetcher struct {
	client *http.Client
	config config.FetcherConfig
	logger zerolog.Logger
}

// FetcherBuilder provides fluent interface for creating Fetcher
type FetcherBuilder struct {
	config config.FetcherConfig
	logger zerolog.Logger
}

// NewFetcherBuilder creates a new fetcher builder
func NewFetcherBuilder(logger zerolog.Logger) *FetcherBuilder {
	return &FetcherBuilder{
		config: config.NewDefaultFetcherConfig(),
		logger: logger,
	}
}

// WithConfig sets the fetcher configuration
func (fb *FetcherBuilder) WithConfig(cfg config.FetcherConfig) *FetcherBuilder {
	fb.config = cfg
	return fb
}

// Build creates the fetcher instance
func (fb *FetcherBuilder) Build() (*Fetcher, error) {
	logger := fb.logger.With().Str("component", "Fetcher").Logger()

	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		DialContext: (&net.Dialer{
			Timeout: dialTimeout,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: fb.config.InsecureSkipVerify,
		},
	}

	if fb.config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2 transport, falling back to HTTP/1.1")
		}
	}

	maxRedirects := fb.config.MaxRedirects
	client := &http.Client{
		Transport: transport,
		Timeout:   time.Duration(fb.config.TimeoutSecs) * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// MaxRedirects of zero disables redirect following entirely.
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &Fetcher{
		client: client,
		config: fb.config,
		logger: logger,
	}, nil
}

// Fetch performs a GET request and returns the retrieved document.
// Any non-2xx status is reported as an HTTPError, transport failures
// as a NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*models.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to create request for '%s'", rawURL)
	}

	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "*/*")

	startTime := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, common.NewNetworkError(rawURL, "request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := f.readBody(resp)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read response body from '%s'", rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody := body
		if len(errorBody) > maxErrorBodySize {
			errorBody = errorBody[:maxErrorBodySize]
		}
		return nil, common.NewHTTPError(resp.StatusCode, string(errorBody), rawURL)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	duration := time.Since(startTime)
	f.logger.Debug().
		Str("url", rawURL).
		Int("status_code", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", duration).
		Msg("Fetched page")

	return &models.Document{
		URL:         rawURL,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   startTime,
		Duration:    duration,
	}, nil
}

// FetchPair retrieves both pages concurrently. The first failure cancels
// the sibling fetch and aborts the whole operation without a partial result.
func (f *Fetcher) FetchPair(ctx context.Context, oldURL, newURL string) (*models.DocumentPair, error) {
	g, groupCtx := errgroup.WithContext(ctx)

	pair := &models.DocumentPair{}

	g.Go(func() error {
		doc, err := f.Fetch(groupCtx, oldURL)
		if err != nil {
			return err
		}
		pair.Old = doc
		return nil
	})

	g.Go(func() error {
		doc, err := f.Fetch(groupCtx, newURL)
		if err != nil {
			return err
		}
		pair.New = doc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pair, nil
}

// readBody reads the response body, enforcing the configured size limit.
func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	maxSize := f.config.MaxContentSizeBytes()
	if maxSize <= 0 {
		return io.ReadAll(resp.Body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxSize {
		return nil, common.NewError("response body exceeds the %d MB content size limit", f.config.MaxContentSizeMB)
	}
	return body, nil
}

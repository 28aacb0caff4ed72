package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.Equal(t, tt.originalError, errors.Unwrap(wrappedError))
		})
	}
}

func TestWrapError_NilError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "context"))
	assert.NoError(t, WrapErrorf(nil, "context for '%s'", "value"))
}

func TestWrapErrorf(t *testing.T) {
	original := errors.New("connection refused")
	wrapped := WrapErrorf(original, "failed to reach '%s'", "https://example.com")

	assert.Error(t, wrapped)
	assert.Equal(t, "failed to reach 'https://example.com': connection refused", wrapped.Error())
	assert.Equal(t, original, errors.Unwrap(wrapped))
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name            string
		format          string
		args            []interface{}
		expectedMessage string
	}{
		{
			name:            "simple message",
			format:          "simple error message",
			args:            nil,
			expectedMessage: "simple error message",
		},
		{
			name:            "formatted message",
			format:          "error with value: %d",
			args:            []interface{}{42},
			expectedMessage: "error with value: 42",
		},
		{
			name:            "multiple arguments",
			format:          "error: %s occurred at %s",
			args:            []interface{}{"connection failed", "localhost:8080"},
			expectedMessage: "error: connection failed occurred at localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.format, tt.args...)
			assert.Error(t, err)
			assert.Equal(t, tt.expectedMessage, err.Error())
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name            string
		field           string
		value           interface{}
		message         string
		expectedMessage string
	}{
		{
			name:            "string field validation",
			field:           "user_agent",
			value:           "",
			message:         "must not be empty",
			expectedMessage: "validation failed for field 'user_agent': must not be empty (value: )",
		},
		{
			name:            "numeric field validation",
			field:           "timeout_secs",
			value:           -5,
			message:         "must be positive",
			expectedMessage: "validation failed for field 'timeout_secs': must be positive (value: -5)",
		},
		{
			name:            "nil value validation",
			field:           "config_file",
			value:           nil,
			message:         "cannot be nil",
			expectedMessage: "validation failed for field 'config_file': cannot be nil (value: <nil>)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validationErr := NewValidationError(tt.field, tt.value, tt.message)

			assert.Error(t, validationErr)
			assert.Equal(t, tt.expectedMessage, validationErr.Error())
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, tt.value, validationErr.Value)
			assert.Equal(t, tt.message, validationErr.Message)
		})
	}
}

func TestNetworkError(t *testing.T) {
	tests := []struct {
		name            string
		url             string
		reason          string
		wrappedError    error
		expectedMessage string
	}{
		{
			name:            "simple network error",
			url:             "https://example.com",
			reason:          "connection timeout",
			wrappedError:    nil,
			expectedMessage: "network error for 'https://example.com': connection timeout",
		},
		{
			name:            "network error with wrapped error",
			url:             "https://api.example.com/data",
			reason:          "request failed",
			wrappedError:    errors.New("no such host"),
			expectedMessage: "network error for 'https://api.example.com/data': request failed: no such host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			networkErr := NewNetworkError(tt.url, tt.reason, tt.wrappedError)

			assert.Error(t, networkErr)
			assert.Equal(t, tt.expectedMessage, networkErr.Error())
			assert.Equal(t, tt.url, networkErr.URL)
			assert.Equal(t, tt.reason, networkErr.Reason)
			assert.Equal(t, tt.wrappedError, networkErr.Unwrap())
		})
	}
}

func TestHTTPError(t *testing.T) {
	tests := []struct {
		name            string
		statusCode      int
		message         string
		url             string
		expectedMessage string
	}{
		{
			name:            "not found error",
			statusCode:      http.StatusNotFound,
			message:         "resource not found",
			url:             "https://example.com/products/123",
			expectedMessage: "HTTP 404 error for 'https://example.com/products/123': resource not found",
		},
		{
			name:            "server error",
			statusCode:      http.StatusInternalServerError,
			message:         "internal server error",
			url:             "https://api.example.com/data",
			expectedMessage: "HTTP 500 error for 'https://api.example.com/data': internal server error",
		},
		{
			name:            "error without URL",
			statusCode:      http.StatusBadGateway,
			message:         "bad gateway",
			url:             "",
			expectedMessage: "HTTP 502 error: bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := NewHTTPError(tt.statusCode, tt.message, tt.url)

			assert.Error(t, httpErr)
			assert.Equal(t, tt.expectedMessage, httpErr.Error())
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Equal(t, tt.url, httpErr.URL)
		})
	}
}

func TestErrorChaining(t *testing.T) {
	originalErr := errors.New("connection reset by peer")
	networkErr := NewNetworkError("https://example.com", "request failed", originalErr)
	wrappedErr := WrapError(networkErr, "could not fetch old page")

	assert.Error(t, wrappedErr)
	assert.Contains(t, wrappedErr.Error(), "could not fetch old page")
	assert.Contains(t, wrappedErr.Error(), "network error")

	var netErr *NetworkError
	assert.True(t, errors.As(wrappedErr, &netErr))
	assert.Equal(t, "https://example.com", netErr.URL)
	assert.Equal(t, originalErr, netErr.Unwrap())
}

func TestCombineErrors(t *testing.T) {
	first := errors.New("first failure")
	second := errors.New("second failure")

	assert.NoError(t, CombineErrors(nil))
	assert.Equal(t, first, CombineErrors([]error{first}))

	combined := CombineErrors([]error{first, second})
	assert.Error(t, combined)
	assert.Contains(t, combined.Error(), "first failure")
	assert.Contains(t, combined.Error(), "second failure")
}

func TestErrorCollector(t *testing.T) {
	collector := &ErrorCollector{}

	assert.False(t, collector.HasErrors())
	assert.NoError(t, collector.Error())

	collector.Add(nil)
	assert.False(t, collector.HasErrors())

	collector.Add(errors.New("block 0 unparseable"))
	collector.AddWithContext(errors.New("unexpected token"), "block 2")

	assert.True(t, collector.HasErrors())
	assert.Len(t, collector.Errors(), 2)

	combined := collector.Error()
	assert.Error(t, combined)
	assert.Contains(t, combined.Error(), "block 0 unparseable")
	assert.Contains(t, combined.Error(), "block 2: unexpected token")
}

package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "network timeout",
			err:      NewNetworkTimeoutError("timeout"),
			expected: true,
		},
		{
			name:     "invalid response",
			err:      NewNetworkInvalidResponseError("unexpected payload"),
			expected: true,
		},
		{
			name:     "wrapped network error",
			err:      NewServiceError("rpc failed", NewNetworkConnectionRefusedError("refused")),
			expected: true,
		},
		{
			name:     "dial string",
			err:      fmt.Errorf("dial tcp 127.0.0.1:1: connect: connection refused"),
			expected: true,
		},
		{
			name:     "configuration error",
			err:      NewConfigurationError("missing active address"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNetworkError(tt.err))
		})
	}
}

func TestIsConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"configuration", NewConfigurationError("bad yaml"), true},
		{"key not found", NewKeyNotFoundError("no key"), true},
		{"invalid argument", NewInvalidArgumentError("bad target"), true},
		{"wrapped", fmt.Errorf("load: %w", NewConfigurationError("bad yaml")), true},
		{"tx rejected", NewTxRejectedError("failure"), false},
		{"plain", fmt.Errorf("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConfigurationError(tt.err))
		})
	}
}

func TestIsContextError(t *testing.T) {
	assert.False(t, IsContextError(nil))
	assert.True(t, IsContextError(context.Canceled))
	assert.True(t, IsContextError(context.DeadlineExceeded))
	assert.True(t, IsContextError(NewContextCanceledError("stopped")))
	assert.True(t, IsContextError(NewServiceError("call failed", context.DeadlineExceeded)))
	assert.False(t, IsContextError(NewTxError("tx failed")))
}

func TestIsTemporaryError(t *testing.T) {
	assert.False(t, IsTemporaryError(nil))
	assert.True(t, IsTemporaryError(NewServiceUnavailableError("down")))
	assert.True(t, IsTemporaryError(NewNetworkTimeoutError("slow")))
	assert.False(t, IsTemporaryError(NewTxRejectedError("failure")))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, "none"},
		{"context", context.Canceled, "context"},
		{"network", NewNetworkTimeoutError("slow"), "network"},
		{"configuration", NewConfigurationError("bad"), "configuration"},
		{"wallet", NewKeyNotFoundError("missing"), "wallet"},
		{"no funded coin", NewNoFundedCoinError("empty"), "wallet"},
		{"transaction", NewTxRejectedError("failure"), "transaction"},
		{"service", NewServiceError("bad gateway"), "service"},
		{"storage", NewStorageError("write failed"), "storage"},
		{"temporary", NewServiceUnavailableError("down"), "service"},
		{"unknown", fmt.Errorf("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.err))
		})
	}
}

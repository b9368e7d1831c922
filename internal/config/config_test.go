package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				assert.Panics(t, func() { requireEnv(tt.key) })
				return
			}
			assert.Equal(t, tt.value, requireEnv(tt.key))
		})
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_GETENV", "set")
	assert.Equal(t, "set", getenv("TEST_GETENV", "def"))
	assert.Equal(t, "def", getenv("TEST_GETENV_MISSING", "def"))
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		expected int
	}{
		{name: "valid integer", value: "42", set: true, expected: 42},
		{name: "invalid integer falls back", value: "nope", set: true, expected: 7},
		{name: "unset falls back", expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_INT", tt.value)
			}
			assert.Equal(t, tt.expected, getenvInt("TEST_INT", 7))
		})
	}
}

func TestMustBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	assert.False(t, mustBool("TEST_BOOL", true))

	t.Setenv("TEST_BOOL", "not_a_bool")
	assert.True(t, mustBool("TEST_BOOL", true))
}

func TestMustDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, mustDuration("TEST_DUR", time.Minute))

	t.Setenv("TEST_DUR", "ninety")
	assert.Equal(t, time.Minute, mustDuration("TEST_DUR", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "quay.local", expected: []string{"quay.local"}},
		{
			name:     "spaces and quotes",
			input:    ` "quay.local" , 'nav.home.lan' ,, `,
			expected: []string{"quay.local", "nav.home.lan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitAndTrim(tt.input))
		})
	}
}

func TestLoadMemoryBackend(t *testing.T) {
	t.Setenv("QUAY_STORE", "memory")
	t.Setenv("QUAY_COOKIE_MAX_AGE", "30m")

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 30*time.Minute, cfg.CookieMaxAge)
	assert.Equal(t, ":8080", cfg.ListenPort)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("QUAY_STORE", "postgres")
	assert.Panics(t, func() { Load() })
}

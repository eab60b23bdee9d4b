package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOpenAIKey(t *testing.T) {
	originalKey := os.Getenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", originalKey)

	testCases := []struct {
		name          string
		key           string
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid key",
			key:         "sk-1234567890abcdef1234567890abcdef",
			expectError: false,
		},
		{
			name:        "empty key is allowed",
			key:         "",
			expectError: false,
		},
		{
			name:          "wrong prefix",
			key:           "invalid-key-1234567890abcdef",
			expectError:   true,
			errorContains: "must start with 'sk-'",
		},
		{
			name:          "too short",
			key:           "sk-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:        "surrounding whitespace is trimmed",
			key:         "  sk-1234567890abcdef1234567890abcdef  ",
			expectError: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Setenv("OPENAI_API_KEY", tc.key)

			key, err := GetOpenAIKey()
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}
			require.NoError(t, err)
			if tc.key != "" {
				assert.Equal(t, "sk-1234567890abcdef1234567890abcdef", key)
			}
		})
	}
}

func TestRequireOpenAIKey(t *testing.T) {
	originalKey := os.Getenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", originalKey)

	os.Setenv("OPENAI_API_KEY", "")
	_, err := RequireOpenAIKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY must be set")

	os.Setenv("OPENAI_API_KEY", "sk-1234567890abcdef1234567890abcdef")
	key, err := RequireOpenAIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-1234567890abcdef1234567890abcdef", key)
}

func TestGetServerConfig(t *testing.T) {
	originalPort := os.Getenv("PORT")
	originalOffset := os.Getenv("CLINIC_UTC_OFFSET_HOURS")
	defer func() {
		os.Setenv("PORT", originalPort)
		os.Setenv("CLINIC_UTC_OFFSET_HOURS", originalOffset)
	}()

	os.Unsetenv("PORT")
	os.Unsetenv("CLINIC_UTC_OFFSET_HOURS")

	cfg := GetServerConfig()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, DefaultClinicOffset, cfg.ClinicOffset)

	os.Setenv("PORT", "9001")
	os.Setenv("CLINIC_UTC_OFFSET_HOURS", "-8")

	cfg = GetServerConfig()
	assert.Equal(t, "9001", cfg.Port)
	assert.Equal(t, -8*time.Hour, cfg.ClinicOffset)
}

func TestGetServerConfigIgnoresBadOffset(t *testing.T) {
	originalOffset := os.Getenv("CLINIC_UTC_OFFSET_HOURS")
	defer os.Setenv("CLINIC_UTC_OFFSET_HOURS", originalOffset)

	os.Setenv("CLINIC_UTC_OFFSET_HOURS", "not-a-number")
	cfg := GetServerConfig()
	assert.Equal(t, DefaultClinicOffset, cfg.ClinicOffset)
}

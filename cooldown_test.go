package auth_test

import (
	"testing"
	"time"

	auth "github.com/iam-mahendravarma/MCP-XGeneOps"
	"github.com/stretchr/testify/assert"
)

func TestLoginCooldownActive(t *testing.T) {
	tests := []struct {
		name        string
		lastAttempt time.Time
		window      string
		expected    bool
		wantErr     bool
	}{
		{
			name:        "Recent attempt keeps the cooldown active",
			lastAttempt: time.Now().Add(-1 * time.Hour),
			window:      "24h",
			expected:    true,
		},
		{
			name:        "Stale attempt falls outside the window",
			lastAttempt: time.Now().Add(-25 * time.Hour),
			window:      "24h",
			expected:    false,
		},
		{
			name:        "Future attempt is still inside the window",
			lastAttempt: time.Now().Add(time.Minute),
			window:      "24h",
			expected:    true,
		},
		{
			name:        "Invalid window expression",
			lastAttempt: time.Now(),
			window:      "not-a-duration",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, err := auth.LoginCooldownActive(tt.lastAttempt, tt.window)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, active)
		})
	}
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_URL", "http://decision.local:5000/")
	t.Setenv("NAV_TRANSITION_DELAY", "")

	cfg := Load()

	assert.Equal(t, "http://decision.local:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 400*time.Millisecond, cfg.UI.NavTransitionDelay)
	assert.Equal(t, 3500*time.Millisecond, cfg.UI.ToastDuration)
	assert.Equal(t, 5000*time.Millisecond, cfg.UI.BannerDuration)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.BookingReturnDelay)
	assert.NotEmpty(t, cfg.Doctors)
}

func TestDurationOverrides(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"go duration", "250ms", 250 * time.Millisecond},
		{"bare milliseconds", "1200", 1200 * time.Millisecond},
		{"garbage keeps fallback", "soon", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BANNER_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("BANNER_DURATION", 5*time.Second))
		})
	}
}

func TestDoctorList(t *testing.T) {
	t.Setenv("DOCTORS", " Dr. Rao , ,Dr. Iyer")
	assert.Equal(t, []string{"Dr. Rao", "Dr. Iyer"}, getEnvAsList("DOCTORS", nil))

	t.Setenv("DOCTORS", " , ")
	assert.Equal(t, []string{"fallback"}, getEnvAsList("DOCTORS", []string{"fallback"}))
}

func TestTracingConfig(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	cfg := Load()
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRatio)
	assert.Equal(t, "localhost:4318", cfg.Tracing.Endpoint)
}

func TestLogPaths(t *testing.T) {
	for _, key := range []string{"WEBSOCKET_LOG_PATH", "JOURNAL_LOG_PATH"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	cfg := Load()
	assert.Equal(t, "logs/websocket.log", cfg.App.WebSocketLogPath)
	assert.Equal(t, "logs/journal.log", cfg.App.JournalLogPath)

	t.Setenv("WEBSOCKET_LOG_PATH", "/var/log/medfollow/ws.log")
	assert.Equal(t, "/var/log/medfollow/ws.log", Load().App.WebSocketLogPath)
}

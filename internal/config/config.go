package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Backend     BackendConfig
	UI          UIConfig
	Speech      SpeechConfig
	Preferences PreferencesConfig
	I18n        I18nConfig
	Tracing     TracingConfig
	Doctors     []string
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	JournalLogPath     string
	WebSocketLogPath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// UIConfig holds the fixed delays of the screen and alert timers.
type UIConfig struct {
	NavTransitionDelay time.Duration
	ToastDuration      time.Duration
	BannerDuration     time.Duration
	BookingReturnDelay time.Duration
}

type SpeechConfig struct {
	STTURL   string // empty disables recognition
	TTSURL   string // empty relays synthesis to the browser
	TTSVoice string
	CacheTTL time.Duration
}

type PreferencesConfig struct {
	Backend  string // "file" | "redis" | "memory"
	FilePath string
	DeviceID string
}

type I18nConfig struct {
	Strict bool
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/client.log"),
			JournalLogPath:     getEnv("JOURNAL_LOG_PATH", "logs/journal.log"),
			WebSocketLogPath:   getEnv("WEBSOCKET_LOG_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getEnv("API_URL", "http://localhost:5000"), "/"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 30*time.Second),
		},
		UI: UIConfig{
			NavTransitionDelay: getEnvAsDuration("NAV_TRANSITION_DELAY", 400*time.Millisecond),
			ToastDuration:      getEnvAsDuration("TOAST_DURATION", 3500*time.Millisecond),
			BannerDuration:     getEnvAsDuration("BANNER_DURATION", 5000*time.Millisecond),
			BookingReturnDelay: getEnvAsDuration("BOOKING_RETURN_DELAY", 1500*time.Millisecond),
		},
		Speech: SpeechConfig{
			STTURL:   getEnv("STT_URL", ""),
			TTSURL:   getEnv("TTS_URL", ""),
			TTSVoice: getEnv("TTS_VOICE", ""),
			CacheTTL: getEnvAsDuration("TTS_CACHE_TTL", 30*time.Minute),
		},
		Preferences: PreferencesConfig{
			Backend:  getEnv("PREFS_BACKEND", "file"),
			FilePath: getEnv("PREFS_FILE", ".medfollow/preferences.json"),
			DeviceID: getEnv("DEVICE_ID", "default"),
		},
		I18n: I18nConfig{
			Strict: getEnvAsBool("I18N_STRICT", true),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
		Doctors: getEnvAsList("DOCTORS", []string{
			"General Physician",
			"Orthopedic Surgeon",
			"Cardiologist",
			"General Surgeon",
		}),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("400ms") or bare milliseconds ("400").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// AI
	OpenAIModel   string
	OpenAIBaseURL string // опционально, прокси

	// таймаут на каждый внешний вызов
	RequestTimeout time.Duration

	// аудио
	AudioOutputDir string
	CloudTTSURL    string
	LocalTTSBinary string

	// бесплатный переводчик
	GoogleTranslateURL string

	SessionIdle        time.Duration
	RateLimitPerMinute int

	// S3, опционально
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string

	// алерты админу, опционально
	NotifyBotToken string
	NotifyChatID   int64
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:                get("PORT", "8080"),
		OpenAIModel:         get("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:       get("OPENAI_BASE_URL", ""),
		AudioOutputDir:      get("AUDIO_OUTPUT_DIR", "./audio"),
		CloudTTSURL:         get("CLOUD_TTS_URL", "https://translate.google.com"),
		LocalTTSBinary:      get("LOCAL_TTS_BINARY", "espeak-ng"),
		GoogleTranslateURL:  get("GOOGLE_TRANSLATE_URL", "https://translate.googleapis.com"),
		S3Endpoint:          get("S3_ENDPOINT", ""),
		S3AccessKey:         get("S3_ACCESS_KEY", ""),
		S3SecretKey:         get("S3_SECRET_KEY", ""),
		S3Bucket:            get("S3_BUCKET", ""),
		S3Region:            get("S3_REGION", ""),
		NotifyBotToken:      get("NOTIFY_BOT_TOKEN", ""),
	}

	timeoutMs, err := strconv.Atoi(get("REQUEST_TIMEOUT_MS", "15000"))
	if err != nil || timeoutMs <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_MS %q", get("REQUEST_TIMEOUT_MS", ""))
	}
	cfg.RequestTimeout = time.Duration(timeoutMs) * time.Millisecond

	idle, err := strconv.Atoi(get("SESSION_IDLE_MINUTES", "60"))
	if err != nil || idle <= 0 {
		return nil, fmt.Errorf("invalid SESSION_IDLE_MINUTES %q", get("SESSION_IDLE_MINUTES", ""))
	}
	cfg.SessionIdle = time.Duration(idle) * time.Minute

	rate, err := strconv.Atoi(get("RATE_LIMIT_PER_MINUTE", "30"))
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", get("RATE_LIMIT_PER_MINUTE", ""))
	}
	cfg.RateLimitPerMinute = rate

	if v := get("NOTIFY_CHAT_ID", ""); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_CHAT_ID: %w", err)
		}
		cfg.NotifyChatID = id
	}

	return cfg, nil
}

func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

func (c *Config) NotifyEnabled() bool {
	return c.NotifyBotToken != "" && c.NotifyChatID != 0
}

package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/universal_translator/internal/ai"
	"github.com/Vovarama1992/universal_translator/internal/config"
	"github.com/Vovarama1992/universal_translator/internal/delivery"
	"github.com/Vovarama1992/universal_translator/internal/error_notificator"
	"github.com/Vovarama1992/universal_translator/internal/infra"
	"github.com/Vovarama1992/universal_translator/internal/languages"
	"github.com/Vovarama1992/universal_translator/internal/ports"
	"github.com/Vovarama1992/universal_translator/internal/session"
	"github.com/Vovarama1992/universal_translator/internal/speech"
	"github.com/Vovarama1992/universal_translator/internal/translation"
	"github.com/Vovarama1992/universal_translator/internal/translator"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	var publisher ports.ArtifactPublisher
	if cfg.S3Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Client, err := infra.NewS3Client(ctx, cfg)
		cancel()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		publisher = infra.NewArtifactPublisher(s3Client)
	}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var errInfra error_notificator.Notificator = error_notificator.NewLogInfra(zl)
	if cfg.NotifyEnabled() {
		tg, err := error_notificator.NewTelegramInfra(cfg.NotifyBotToken, cfg.NotifyChatID, zl)
		if err != nil {
			log.Fatalf("failed to init notify bot: %v", err)
		}
		errInfra = tg
	}
	errService := error_notificator.NewService(errInfra, 5*time.Minute)

	// =========================================================================
	// CLIENTS (TRANSLATE / AI / TTS)
	// =========================================================================

	googleClient := translation.NewGoogleClient(cfg.GoogleTranslateURL)
	openAIClient := ai.NewOpenAIClient(cfg.OpenAIModel, cfg.OpenAIBaseURL)
	cloudTTS := speech.NewGoogleTTSClient(cfg.CloudTTSURL)
	localTTS := speech.NewEspeakClient(cfg.LocalTTSBinary)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	registry := languages.MustDefault()
	sessions := session.NewStore()

	translationService := translation.NewService(googleClient, cfg.RequestTimeout)
	aiService := ai.NewService(openAIClient, cfg.RequestTimeout)
	speechService := speech.NewService(cloudTTS, localTTS, cfg.AudioOutputDir, cfg.RequestTimeout, publisher, zl)

	translatorService := translator.NewService(
		registry,
		translationService,
		aiService,
		speechService,
		sessions,
		errService,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	translateHandler := delivery.NewTranslateHandler(translatorService, speechService, zl)
	delivery.RegisterRoutes(r, translateHandler, cfg.RateLimitPerMinute)

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if n := sessions.Cleanup(cfg.SessionIdle); n > 0 {
				log.Printf("[cleanup-sessions] removed %d idle sessions", n)
			}
		}
	}()

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "universal_translator",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lumident/dental-clinic-platform/cmd/mainconfig"
	"github.com/lumident/dental-clinic-platform/internal/api/router"
	"github.com/lumident/dental-clinic-platform/internal/assistant"
	"github.com/lumident/dental-clinic-platform/internal/chat"
	appconfig "github.com/lumident/dental-clinic-platform/internal/config"
	"github.com/lumident/dental-clinic-platform/internal/contact"
	"github.com/lumident/dental-clinic-platform/internal/intake"
	"github.com/lumident/dental-clinic-platform/internal/leads"
	"github.com/lumident/dental-clinic-platform/internal/notify"
	"github.com/lumident/dental-clinic-platform/internal/observability/metrics"
	"github.com/lumident/dental-clinic-platform/internal/testimonials"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting dental-clinic-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage. Without DATABASE_URL the API runs on in-memory repositories;
	// testimonials and contact submissions do not survive a restart.
	var (
		testimonialsRepo testimonials.Repository
		contactRepo      contact.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		testimonialsRepo = testimonials.NewPostgresRepository(pool)
		contactRepo = contact.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		testimonialsRepo = testimonials.NewInMemoryRepository()
		contactRepo = contact.NewInMemoryRepository()
	}

	// Chat history. Optional: without redis the chat still answers, history
	// is simply not retained.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	} else {
		logger.Warn("REDIS_ADDR not set, chat history disabled")
	}
	transcriptStore := chat.NewTranscriptStore(redisClient, int64(cfg.ChatMaxHistory))

	// Language model: Gemini primary, Bedrock fallback.
	var gemini *assistant.GeminiClient
	if cfg.GeminiAPIKey != "" {
		var err error
		gemini, err = assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to initialize gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
	}

	var bedrock *assistant.BedrockClient
	if cfg.BedrockModelID != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		bedrock = assistant.NewBedrockClient(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
	}

	var llm assistant.StreamingLLMClient
	switch {
	case gemini != nil && bedrock != nil:
		llm = assistant.NewFallbackClient(gemini, bedrock, logger)
	case gemini != nil:
		llm = assistant.NewFallbackClient(gemini, nil, logger)
	case bedrock != nil:
		llm = assistant.NewFallbackClient(bedrock, nil, logger)
	default:
		logger.Warn("no LLM provider configured, chat disabled and summaries fall back to transcripts")
	}

	platformMetrics := metrics.NewPlatformMetrics(nil)

	var summaryClient assistant.LLMClient
	if llm != nil {
		summaryClient = llm
	}
	summarizer := assistant.NewSummarizer(summaryClient, cfg.GeminiModelID, platformMetrics, logger)

	sender := buildEmailSender(ctx, cfg, logger)
	dispatcher := notify.NewDispatcher(sender, cfg.LeadRecipients, cfg.ClinicName, platformMetrics, logger)

	extractor := intake.NewExtractor(cfg.ServiceTerms, cfg.Practitioners)
	urgency := intake.NewUrgencyDetector(cfg.UrgencyTerms)

	persona := assistant.ChatPersona(assistant.PersonaConfig{
		ClinicName:    cfg.ClinicName,
		ClinicPhone:   cfg.ClinicPhone,
		ClinicHours:   cfg.ClinicHours,
		Services:      cfg.ServiceTerms,
		Practitioners: cfg.Practitioners,
	})

	leadsHandler := leads.NewHandler(extractor, urgency, summarizer, dispatcher, platformMetrics, logger)
	chatHandler := chat.NewHandler(llm, persona, cfg.GeminiModelID, urgency, transcriptStore, cfg.ClinicPhone, platformMetrics, logger)
	testimonialsHandler := testimonials.NewHandler(testimonialsRepo, logger)
	contactHandler := contact.NewHandler(contactRepo, sender, cfg.LeadRecipients, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		LeadsHandler:        leadsHandler,
		ChatHandler:         chatHandler,
		TestimonialsHandler: testimonialsHandler,
		ContactHandler:      contactHandler,
		MetricsHandler:      promhttp.Handler(),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // streamed chat replies can run long
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the outbound email provider. "auto" prefers
// SendGrid, then SES, then the logging stub.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	trySendGrid := func() notify.EmailSender {
		sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sg == nil {
			return nil
		}
		return sg
	}
	trySES := func() notify.EmailSender {
		if cfg.SESFromEmail == "" {
			return nil
		}
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config for SES", "error", err)
			return nil
		}
		s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if s == nil {
			return nil
		}
		return s
	}

	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		sender = trySendGrid()
	case "ses":
		sender = trySES()
	case "stub":
		// fall through to the stub below
	default: // "auto"
		sender = trySendGrid()
		if sender == nil {
			sender = trySES()
		}
	}

	if sender == nil {
		logger.Warn("no email provider configured, notifications are logged only")
		sender = notify.NewStubEmailSender(logger)
	}
	return sender
}

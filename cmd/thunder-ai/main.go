package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/thundertactical/thunder-ai-backend/pkg/api"
	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/intent"
	"github.com/thundertactical/thunder-ai-backend/pkg/llm"
	"github.com/thundertactical/thunder-ai-backend/pkg/masking"
	"github.com/thundertactical/thunder-ai-backend/pkg/metrics"
	"github.com/thundertactical/thunder-ai-backend/pkg/order"
	"github.com/thundertactical/thunder-ai-backend/pkg/reply"
	"github.com/thundertactical/thunder-ai-backend/pkg/services"
	"github.com/thundertactical/thunder-ai-backend/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	// Load .env before anything reads the environment
	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	slog.SetDefault(newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))

	if err := run(*configDir); err != nil {
		slog.Error("Thunder AI backend exited with error", "error", err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Initialize(ctx, configDir)
	if err != nil {
		return err
	}

	slog.Info("Starting Thunder AI backend",
		"version", version.Full(),
		"port", cfg.Server.Port,
		"config_dir", configDir)

	m := metrics.New()
	masker := masking.NewService(cfg.OrderPlatform.AccessToken, cfg.OrderPlatform.ClientID, cfg.LLM.APIKey)

	detector, err := intent.New(cfg.Intent.Strategy, cfg.Intent.Keywords)
	if err != nil {
		return err
	}

	chatService := services.NewChatService(
		order.NewClient(cfg.OrderPlatform, masker),
		llm.NewOpenAIClient(cfg.LLM, m),
		detector,
		reply.NewComposer(cfg.Assistant),
		cfg.Server.MaxMessageLength,
		m,
	)
	slog.Info("Services initialized", "intent_strategy", detector.Name())

	server := api.NewServer(cfg, chatService, m)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + cfg.Server.Port
		slog.Info("HTTP server listening", "addr", addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down HTTP server", "timeout", cfg.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Shutdown complete")
	return nil
}

// newLogger builds the process logger. level is debug|info|warn|error
// (default info); format "json" selects the JSON handler, anything else text.
func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

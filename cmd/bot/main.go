package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	agripay "github.com/set-night/agripay"
	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/handler"
	"github.com/set-night/agripay/internal/httpserver"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/middleware"
	"github.com/set-night/agripay/internal/repository"
	"github.com/set-night/agripay/internal/service"
	"github.com/set-night/agripay/internal/telegram"
	"github.com/set-night/agripay/internal/workspace"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Farm data: Postgres when configured, the demo farm otherwise
	var store service.FarmStore
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(agripay.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		store = repository.NewPGStore(pool)
	} else {
		slog.Info("DATABASE_URL not set, serving the demo farm from memory")
		store = repository.NewMemoryStore()
	}

	// Initialize services
	farm := service.NewFarmService(store)
	gemini := service.NewGeminiService(cfg.GeminiAPIKey,
		service.WithBaseURL(cfg.GeminiBaseURL),
		service.WithModel(cfg.GeminiModel),
	)
	previews := capture.NewPreviewStore()

	var device capture.Device
	if cfg.CameraSnapshotURL != "" {
		device = capture.NewSnapshotDevice(cfg.CameraSnapshotURL,
			&http.Client{Timeout: config.CameraFetchTimeout},
			config.CameraPollInterval,
		)
	} else {
		slog.Warn("CAMERA_SNAPSHOT_URL not set, camera capture will report the device as unavailable")
		device = capture.NewSnapshotDevice("", nil, config.CameraPollInterval)
	}

	lang, ok := i18n.ParseLanguage(cfg.DefaultLanguage)
	if !ok {
		slog.Warn("unknown DEFAULT_LANGUAGE, using primary", "value", cfg.DefaultLanguage, "language", lang)
	}

	registry := workspace.NewRegistry(workspace.Deps{
		Advisor:         gemini,
		CropPlanner:     gemini,
		Device:          device,
		Previews:        previews,
		DefaultLanguage: lang,
	})
	defer registry.Close()

	limiter := middleware.NewChatLimiter(config.RateLimitPerMinute, config.RateLimitBurst)
	registry.OnRemove(func(ws *workspace.Workspace) {
		limiter.Forget(ws.ChatID)
	})

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(cfg),
			middleware.Logging(),
			middleware.RateLimit(limiter, func(chatID int64) string {
				noticeLang := lang
				if ws, ok := registry.Lookup(chatID); ok {
					noticeLang = ws.Locale.Language()
				}
				return i18n.T(noticeLang, "rate_limited")
			}),
			middleware.WorkspaceLoader(registry),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			h.HandleMessage(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize telegram logger
	tgLogger := telegram.NewTelegramLogger(b, cfg)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Registry: registry,
		Farm:     farm,
		Previews: previews,
		TgLogger: tgLogger,
	})

	// Register all handlers
	h.Register()

	// HTTP side server
	srv := httpserver.New(store, previews, func(ctx context.Context, fileID string) ([]byte, error) {
		return telegram.DownloadFile(ctx, b, fileID)
	}).HTTP(fmt.Sprintf(":%d", cfg.Port))

	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
	}()

	// Start idle workspace cleanup goroutine
	go func() {
		ticker := time.NewTicker(config.WorkspaceSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := registry.Sweep(config.WorkspaceMaxIdle); n > 0 {
					slog.Info("swept idle workspaces", "count", n, "remaining", registry.Len())
				}
			}
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", "error", err)
	}

	slog.Info("bot stopped gracefully")
}

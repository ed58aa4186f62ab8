package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/service"
	"github.com/set-night/agripay/internal/telegram"
	"github.com/set-night/agripay/internal/workspace"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	registry *workspace.Registry
	farm     *service.FarmService
	previews *capture.PreviewStore
	tgLogger *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Registry *workspace.Registry
	Farm     *service.FarmService
	Previews *capture.PreviewStore
	TgLogger *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	h := &Handler{
		bot:      deps.Bot,
		cfg:      deps.Cfg,
		registry: deps.Registry,
		farm:     deps.Farm,
		previews: deps.Previews,
		tgLogger: deps.TgLogger,
	}
	deps.Registry.OnCreate(h.attachWorkspace)
	return h
}

package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/workspace"
)

type ctxKey string

const WorkspaceKey ctxKey = "workspace"

// GetWorkspace extracts the chat's workspace from context.
func GetWorkspace(ctx context.Context) *workspace.Workspace {
	ws, ok := ctx.Value(WorkspaceKey).(*workspace.Workspace)
	if !ok {
		return nil
	}
	return ws
}

// WorkspaceLoader returns middleware that puts the chat's workspace into context.
func WorkspaceLoader(registry *workspace.Registry) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if chatID := ChatID(update); chatID != 0 {
				ctx = context.WithValue(ctx, WorkspaceKey, registry.Get(chatID))
			}
			next(ctx, b, update)
		}
	}
}

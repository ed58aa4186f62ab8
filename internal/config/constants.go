package config

import "time"

const (
	// AI request timeout; a hung advisory call resolves as a failure after this.
	RequestTimeout = 90 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Camera still size (pixels)
	CameraStillWidth  = 1280
	CameraStillHeight = 720

	// Snapshot camera polling
	CameraPollInterval = 500 * time.Millisecond
	CameraFetchTimeout = 10 * time.Second

	// Dashboard
	DashboardRecentTransactions = 4
	DashboardCacheDuration      = 1 * time.Minute

	// Rate limits (messages per minute per chat)
	RateLimitPerMinute = 20
	RateLimitBurst     = 5

	// Idle workspace cleanup
	WorkspaceSweepInterval = 5 * time.Minute
	WorkspaceMaxIdle       = 2 * time.Hour

	// Typing indicator refresh
	TypingInterval = 4 * time.Second

	// Replies sent after a background request resolves
	SendTimeout = 30 * time.Second

	// Same ops event reported at most once per cooldown
	OpsReportCooldown = 10 * time.Minute
)

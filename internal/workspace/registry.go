package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/service"
)

type Deps struct {
	Advisor         service.Advisor
	CropPlanner     service.CropPlanner
	Device          capture.Device
	Previews        *capture.PreviewStore
	DefaultLanguage i18n.Language
}

// Registry owns one Workspace per chat.
type Registry struct {
	ctx    context.Context
	cancel context.CancelFunc
	deps   Deps
	now    func() time.Time

	mu       sync.Mutex
	items    map[int64]*Workspace
	onCreate func(*Workspace)
	onRemove func(*Workspace)
}

func NewRegistry(deps Deps) *Registry {
	if deps.Previews == nil {
		deps.Previews = capture.NewPreviewStore()
	}
	if deps.DefaultLanguage == "" {
		deps.DefaultLanguage = i18n.Primary
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		ctx:    ctx,
		cancel: cancel,
		deps:   deps,
		now:    time.Now,
		items:  make(map[int64]*Workspace),
	}
}

// Get returns the chat's workspace, creating it on first use.
func (r *Registry) Get(chatID int64) *Workspace {
	r.mu.Lock()
	if ws, ok := r.items[chatID]; ok {
		r.mu.Unlock()
		ws.touch(r.now())
		return ws
	}

	locale := i18n.NewLocale(r.deps.DefaultLanguage)
	ws := &Workspace{
		ChatID:       chatID,
		Locale:       locale,
		Conversation: service.NewConversation(r.ctx, r.deps.Advisor, locale),
		Planner:      service.NewPlanner(r.deps.CropPlanner),
		device:       r.deps.Device,
		previews:     r.deps.Previews,
		page:         domain.PageDashboard,
		lastSeen:     r.now(),
	}
	r.items[chatID] = ws
	onCreate := r.onCreate
	r.mu.Unlock()

	slog.Debug("workspace created", "chat_id", chatID)
	if onCreate != nil {
		onCreate(ws)
	}
	return ws
}

// Lookup returns the chat's workspace if it exists. It neither creates one
// nor counts as activity.
func (r *Registry) Lookup(chatID int64) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.items[chatID]
	return ws, ok
}

// OnCreate sets a hook run once for every new workspace.
func (r *Registry) OnCreate(fn func(*Workspace)) {
	r.mu.Lock()
	r.onCreate = fn
	r.mu.Unlock()
}

// OnRemove sets a hook run for every swept workspace.
func (r *Registry) OnRemove(fn func(*Workspace)) {
	r.mu.Lock()
	r.onRemove = fn
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep closes workspaces idle for longer than maxIdle. Workspaces with a
// request in flight are kept.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*Workspace
	for id, ws := range r.items {
		if ws.LastSeen().Before(cutoff) && ws.Conversation.State() == service.StateIdle && !ws.Planner.Busy() {
			stale = append(stale, ws)
			delete(r.items, id)
		}
	}
	onRemove := r.onRemove
	r.mu.Unlock()

	for _, ws := range stale {
		ws.Close()
		if onRemove != nil {
			onRemove(ws)
		}
	}
	if len(stale) > 0 {
		slog.Info("workspaces swept", "count", len(stale))
	}
	return len(stale)
}

// Close tears down every workspace and stops the shared request context.
func (r *Registry) Close() {
	r.mu.Lock()
	items := r.items
	r.items = make(map[int64]*Workspace)
	r.mu.Unlock()

	for _, ws := range items {
		ws.Close()
	}
	r.cancel()
}

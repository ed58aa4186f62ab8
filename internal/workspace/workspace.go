// Package workspace keeps the per-chat view state: the selected page, the
// display language, the advisory conversation, the camera dialog and the
// crop planner.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/service"
)

type Workspace struct {
	ChatID       int64
	Locale       *i18n.Locale
	Conversation *service.Conversation
	Planner      *service.Planner

	device   capture.Device
	previews *capture.PreviewStore

	camMu sync.Mutex // serializes OpenCamera

	mu          sync.Mutex
	page        domain.Page
	pageMsgID   int
	camera      *capture.CameraSession
	cameraMsgID int
	planForm    *service.PlanDetails
	lastSeen    time.Time
	unsubs      []func()
	closed      bool
}

func (w *Workspace) Page() domain.Page {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page
}

func (w *Workspace) SetPage(p domain.Page) {
	w.mu.Lock()
	w.page = p
	w.mu.Unlock()
}

// PageMessage is the id of the message the current page was last rendered in.
func (w *Workspace) PageMessage() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pageMsgID
}

func (w *Workspace) SetPageMessage(id int) {
	w.mu.Lock()
	w.pageMsgID = id
	w.mu.Unlock()
}

// Camera returns the open camera session, or nil.
func (w *Workspace) Camera() *capture.CameraSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.camera
}

// OpenCamera starts a new camera dialog, closing any previous one first.
// Opens on one workspace run one at a time, so at most one session holds the
// device. A closed workspace refuses with domain.ErrWorkspaceClosed.
func (w *Workspace) OpenCamera(ctx context.Context) (*capture.CameraSession, error) {
	w.camMu.Lock()
	defer w.camMu.Unlock()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, domain.ErrWorkspaceClosed
	}
	old := w.camera
	w.camera = nil
	w.mu.Unlock()

	if old != nil {
		old.Close()
	}

	cam := capture.OpenCamera(ctx, w.device, w.previews)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		cam.Close()
		return nil, domain.ErrWorkspaceClosed
	}
	w.camera = cam
	w.mu.Unlock()
	return cam, nil
}

// CloseCamera closes and forgets the camera dialog. It returns the message id
// the dialog was rendered in, or 0.
func (w *Workspace) CloseCamera() int {
	w.mu.Lock()
	cam := w.camera
	msgID := w.cameraMsgID
	w.camera = nil
	w.cameraMsgID = 0
	w.mu.Unlock()

	if cam != nil {
		cam.Close()
	}
	return msgID
}

// CameraMessage is the id of the message showing the camera dialog.
func (w *Workspace) CameraMessage() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cameraMsgID
}

func (w *Workspace) SetCameraMessage(id int) {
	w.mu.Lock()
	w.cameraMsgID = id
	w.mu.Unlock()
}

// PlanForm is the last accepted planner form.
func (w *Workspace) PlanForm() (service.PlanDetails, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.planForm == nil {
		return service.PlanDetails{}, false
	}
	return *w.planForm, true
}

func (w *Workspace) SetPlanForm(d service.PlanDetails) {
	w.mu.Lock()
	w.planForm = &d
	w.mu.Unlock()
}

// OnLanguageChange subscribes fn to the workspace locale until the workspace closes.
func (w *Workspace) OnLanguageChange(fn func(i18n.Language)) {
	unsub := w.Locale.Subscribe(fn)
	w.mu.Lock()
	w.unsubs = append(w.unsubs, unsub)
	w.mu.Unlock()
}

func (w *Workspace) Previews() *capture.PreviewStore {
	return w.previews
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Close stops the camera, drops the draft and releases every preview the
// conversation still references.
func (w *Workspace) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	cam := w.camera
	w.camera = nil
	unsubs := w.unsubs
	w.unsubs = nil
	w.mu.Unlock()

	if cam != nil {
		cam.Close()
	}
	for _, unsub := range unsubs {
		unsub()
	}

	w.Conversation.ClearAttachment()
	for _, m := range w.Conversation.Messages() {
		if m.HasImage() {
			w.previews.Release(m.AttachedImage)
		}
	}
}

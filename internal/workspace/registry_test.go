package workspace

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoAdvisor struct{}

func (echoAdvisor) Advise(_ context.Context, prompt string, _ i18n.Language, _ *domain.InlineImage) service.Advice {
	return service.Advice{Text: "re: " + prompt}
}

type nopPlanner struct{}

func (nopPlanner) GenerateCropPlan(context.Context, service.PlanDetails, i18n.Language) service.Advice {
	return service.Advice{}
}

type countingTrack struct {
	mu      sync.Mutex
	stopped bool
}

func (t *countingTrack) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *countingTrack) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}

type oneTrackStream struct{ track *countingTrack }

func (s oneTrackStream) Tracks() []capture.Track { return []capture.Track{s.track} }

func (s oneTrackStream) Frame() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

type recordingDevice struct {
	delay time.Duration

	mu     sync.Mutex
	tracks []*countingTrack
}

func (d *recordingDevice) Open(context.Context, capture.Constraints) (capture.Stream, error) {
	time.Sleep(d.delay)
	tr := &countingTrack{}
	d.mu.Lock()
	d.tracks = append(d.tracks, tr)
	d.mu.Unlock()
	return oneTrackStream{track: tr}, nil
}

func (d *recordingDevice) opened() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tracks)
}

func (d *recordingDevice) active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, t := range d.tracks {
		if t.Active() {
			n++
		}
	}
	return n
}

func newTestRegistry(dev capture.Device) *Registry {
	return NewRegistry(Deps{
		Advisor:         echoAdvisor{},
		CropPlanner:     nopPlanner{},
		Device:          dev,
		DefaultLanguage: i18n.French,
	})
}

func TestRegistryGet(t *testing.T) {
	r := newTestRegistry(nil)
	defer r.Close()

	ws := r.Get(42)
	assert.Same(t, ws, r.Get(42))
	assert.NotSame(t, ws, r.Get(43))
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, domain.PageDashboard, ws.Page())
	assert.Equal(t, i18n.French, ws.Locale.Language())
	assert.Equal(t, i18n.T(i18n.French, "assistant_greeting"), ws.Conversation.Messages()[0].Text)
}

func TestRegistryLookup(t *testing.T) {
	r := newTestRegistry(nil)
	defer r.Close()

	now := time.Now()
	r.now = func() time.Time { return now }

	_, ok := r.Lookup(42)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	ws := r.Get(42)
	now = now.Add(time.Hour)
	got, ok := r.Lookup(42)
	require.True(t, ok)
	assert.Same(t, ws, got)
	assert.True(t, ws.LastSeen().Before(now))
	assert.Equal(t, 1, r.Sweep(30*time.Minute))
}

func TestWorkspaceCameraLifecycle(t *testing.T) {
	dev := &recordingDevice{}
	r := newTestRegistry(dev)
	defer r.Close()
	ws := r.Get(1)

	first, err := ws.OpenCamera(context.Background())
	require.NoError(t, err)
	assert.Equal(t, capture.CameraLive, first.State())
	ws.SetCameraMessage(99)

	second, err := ws.OpenCamera(context.Background())
	require.NoError(t, err)
	assert.Equal(t, capture.CameraClosed, first.State())
	assert.Same(t, second, ws.Camera())
	assert.Equal(t, 1, dev.active())

	assert.Equal(t, 99, ws.CloseCamera())
	assert.Nil(t, ws.Camera())
	assert.Equal(t, 0, dev.active())
	assert.Equal(t, 0, ws.CloseCamera())
}

func TestWorkspaceConcurrentCameraOpens(t *testing.T) {
	dev := &recordingDevice{delay: 20 * time.Millisecond}
	r := newTestRegistry(dev)
	defer r.Close()
	ws := r.Get(1)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ws.OpenCamera(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, dev.opened())
	assert.Equal(t, 1, dev.active())

	ws.CloseCamera()
	assert.Equal(t, 0, dev.active())
}

func TestWorkspaceCameraAfterClose(t *testing.T) {
	dev := &recordingDevice{}
	r := newTestRegistry(dev)
	ws := r.Get(1)
	r.Close()

	cam, err := ws.OpenCamera(context.Background())
	assert.ErrorIs(t, err, domain.ErrWorkspaceClosed)
	assert.Nil(t, cam)
	assert.Nil(t, ws.Camera())
	assert.Equal(t, 0, dev.active())
}

func TestWorkspaceCloseDuringCameraOpen(t *testing.T) {
	dev := &recordingDevice{delay: 50 * time.Millisecond}
	r := newTestRegistry(dev)
	ws := r.Get(1)

	done := make(chan error, 1)
	go func() {
		_, err := ws.OpenCamera(context.Background())
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	r.Close()

	assert.ErrorIs(t, <-done, domain.ErrWorkspaceClosed)
	assert.Nil(t, ws.Camera())
	assert.Equal(t, 0, dev.active())
}

func TestRegistrySweep(t *testing.T) {
	dev := &recordingDevice{}
	r := newTestRegistry(dev)
	defer r.Close()

	now := time.Now()
	r.now = func() time.Time { return now }

	idle := r.Get(1)
	idle.OpenCamera(context.Background())
	idle.Conversation.AttachImage(capture.SelectFile(idle.Previews(), capture.File{Name: "a.jpg", Load: capture.BytesLoader([]byte{1})}))

	now = now.Add(time.Hour)
	r.Get(2)

	assert.Equal(t, 1, r.Sweep(30*time.Minute))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, dev.active())
	assert.Equal(t, 0, idle.Previews().Len())
}

func TestRegistryCloseReleasesPreviews(t *testing.T) {
	r := newTestRegistry(nil)
	ws := r.Get(7)

	att := capture.SelectFile(ws.Previews(), capture.File{Name: "leaf.jpg", Load: capture.BytesLoader([]byte{1, 2})})
	ws.Conversation.AttachImage(att)
	p, err := ws.Conversation.Submit()
	require.NoError(t, err)
	<-p.Done()
	require.Equal(t, 1, ws.Previews().Len())

	r.Close()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, ws.Previews().Len())
}

func TestWorkspaceLanguageSubscribers(t *testing.T) {
	r := newTestRegistry(nil)
	ws := r.Get(5)

	var got []i18n.Language
	ws.OnLanguageChange(func(l i18n.Language) { got = append(got, l) })

	ws.Locale.Set(i18n.English)
	assert.Equal(t, []i18n.Language{i18n.English}, got)

	r.Close()
	ws.Locale.Set(i18n.French)
	assert.Len(t, got, 1)
}

func TestWorkspacePlanForm(t *testing.T) {
	r := newTestRegistry(nil)
	defer r.Close()
	ws := r.Get(3)

	_, ok := ws.PlanForm()
	assert.False(t, ok)

	ws.SetPlanForm(service.PlanDetails{Crop: "Maize"})
	d, ok := ws.PlanForm()
	assert.True(t, ok)
	assert.Equal(t, "Maize", d.Crop)
}

func TestRegistryHooks(t *testing.T) {
	r := newTestRegistry(nil)
	defer r.Close()

	var created, removed []int64
	r.OnCreate(func(ws *Workspace) { created = append(created, ws.ChatID) })
	r.OnRemove(func(ws *Workspace) { removed = append(removed, ws.ChatID) })

	r.Get(1)
	r.Get(1)
	r.Get(2)
	assert.Equal(t, []int64{1, 2}, created)

	assert.Equal(t, 2, r.Sweep(-time.Hour))
	assert.ElementsMatch(t, []int64{1, 2}, removed)
}

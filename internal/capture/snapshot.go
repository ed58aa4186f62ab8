package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/set-night/agripay/internal/domain"
)

const maxSnapshotBytes = 20 << 20

// SnapshotDevice is a fixed field camera that serves its current picture as a
// JPEG or PNG at a URL. Only one stream may hold it at a time.
type SnapshotDevice struct {
	url      string
	client   *http.Client
	interval time.Duration

	mu   sync.Mutex
	held bool
}

func NewSnapshotDevice(url string, client *http.Client, interval time.Duration) *SnapshotDevice {
	if client == nil {
		client = http.DefaultClient
	}
	return &SnapshotDevice{url: url, client: client, interval: interval}
}

// Open fetches one frame to prove the camera is reachable, then keeps polling
// until the stream's track is stopped.
func (d *SnapshotDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	if d.url == "" || c.Facing == FacingUser || c.Audio {
		return nil, domain.ErrCameraUnavailable
	}

	d.mu.Lock()
	if d.held {
		d.mu.Unlock()
		return nil, domain.ErrDeviceBusy
	}
	d.held = true
	d.mu.Unlock()

	frame, err := d.fetch(ctx)
	if err != nil {
		d.unlock()
		return nil, fmt.Errorf("%w: %v", domain.ErrCameraUnavailable, err)
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	st := &snapshotStream{device: d}
	st.frame.Store(&frame)
	st.track = &snapshotTrack{stop: func() {
		cancel()
		d.unlock()
	}}
	st.track.active.Store(true)

	go st.poll(pollCtx, d.interval)
	return st, nil
}

// Busy reports whether a stream currently holds the device.
func (d *SnapshotDevice) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.held
}

func (d *SnapshotDevice) unlock() {
	d.mu.Lock()
	d.held = false
	d.mu.Unlock()
}

func (d *SnapshotDevice) fetch(ctx context.Context) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return img, nil
}

type snapshotStream struct {
	device *SnapshotDevice
	frame  atomic.Pointer[image.Image]
	track  *snapshotTrack
}

func (s *snapshotStream) Tracks() []Track {
	return []Track{s.track}
}

func (s *snapshotStream) Frame() (image.Image, error) {
	if !s.track.Active() {
		return nil, domain.ErrNoFrame
	}
	p := s.frame.Load()
	if p == nil {
		return nil, domain.ErrNoFrame
	}
	return *p, nil
}

func (s *snapshotStream) poll(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			img, err := s.device.fetch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Debug("snapshot poll failed", "error", err)
				}
				continue
			}
			s.frame.Store(&img)
		}
	}
}

type snapshotTrack struct {
	once   sync.Once
	active atomic.Bool
	stop   func()
}

func (t *snapshotTrack) Stop() {
	t.once.Do(func() {
		t.active.Store(false)
		t.stop()
	})
}

func (t *snapshotTrack) Active() bool {
	return t.active.Load()
}

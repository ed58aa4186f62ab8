package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"sync"

	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/domain"
	"golang.org/x/image/draw"
)

type Facing string

const (
	FacingAny         Facing = ""
	FacingEnvironment Facing = "environment" // rear camera
	FacingUser        Facing = "user"
)

type Constraints struct {
	Facing Facing
	Audio  bool
}

// Device is a host camera.
type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is a live feed holding the device until all of its tracks are stopped.
type Stream interface {
	Tracks() []Track
	Frame() (image.Image, error)
}

type Track interface {
	Stop()
	Active() bool
}

type CameraState int

const (
	CameraRequesting CameraState = iota
	CameraLive
	CameraFrozen
	CameraFailed
	CameraClosed
)

func (s CameraState) String() string {
	switch s {
	case CameraRequesting:
		return "requesting"
	case CameraLive:
		return "live"
	case CameraFrozen:
		return "frozen"
	case CameraFailed:
		return "failed"
	case CameraClosed:
		return "closed"
	}
	return fmt.Sprintf("CameraState(%d)", int(s))
}

const (
	CaptureFileName = "capture.jpg"
	captureMime     = "image/jpeg"
	jpegQuality     = 85
)

// CameraSession drives one capture dialog: Requesting -> Live -> Frozen -> Closed.
// Every exit from a state that holds a stream goes through release.
type CameraSession struct {
	mu       sync.Mutex
	device   Device
	previews *PreviewStore
	state    CameraState
	stream   Stream
	still    *image.RGBA
	err      error
}

// OpenCamera requests the rear camera. On failure the session is left in
// CameraFailed holding no stream.
func OpenCamera(ctx context.Context, device Device, previews *PreviewStore) *CameraSession {
	s := &CameraSession{device: device, previews: previews}
	s.mu.Lock()
	s.acquire(ctx)
	s.mu.Unlock()
	return s
}

func (s *CameraSession) State() CameraState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the device error that put the session in CameraFailed.
func (s *CameraSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ActiveTracks counts the tracks still running on the held stream.
func (s *CameraSession) ActiveTracks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return 0
	}
	n := 0
	for _, t := range s.stream.Tracks() {
		if t.Active() {
			n++
		}
	}
	return n
}

// LiveFrame returns the current frame of the live feed.
func (s *CameraSession) LiveFrame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != CameraLive {
		return nil, domain.ErrCameraState
	}
	return s.stream.Frame()
}

// Still returns the captured image while Frozen.
func (s *CameraSession) Still() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != CameraFrozen {
		return nil, domain.ErrCameraState
	}
	return s.still, nil
}

// Capture freezes the current frame into a fixed-size still and stops the stream.
func (s *CameraSession) Capture() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case CameraLive:
	case CameraFailed:
		return domain.ErrCameraUnavailable
	default:
		return domain.ErrCameraState
	}

	frame, err := s.stream.Frame()
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}

	s.still = scaleToStill(frame)
	s.release()
	s.state = CameraFrozen
	return nil
}

// Retake discards the still and requests a fresh stream.
func (s *CameraSession) Retake(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != CameraFrozen {
		return domain.ErrCameraState
	}
	s.still = nil
	s.acquire(ctx)
	return nil
}

// Accept encodes the still as a JPEG attachment and closes the session.
func (s *CameraSession) Accept() (*Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != CameraFrozen {
		return nil, domain.ErrCameraState
	}

	data, err := EncodeJPEG(s.still)
	if err != nil {
		return nil, fmt.Errorf("encode still: %w", err)
	}

	att := SelectFile(s.previews, File{
		Name:     CaptureFileName,
		MimeType: captureMime,
		Preview:  Preview{MimeType: captureMime, Data: data},
		Load:     BytesLoader(data),
	})

	s.still = nil
	s.release()
	s.state = CameraClosed
	return att, nil
}

// Close ends the session from any state. It is safe to call more than once.
func (s *CameraSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.still = nil
	s.release()
	s.state = CameraClosed
}

// acquire enters Requesting and opens a new stream, stopping any stale one first.
// Caller holds mu.
func (s *CameraSession) acquire(ctx context.Context) {
	s.release()
	s.state = CameraRequesting
	s.err = nil

	if s.device == nil {
		s.state = CameraFailed
		s.err = domain.ErrCameraUnavailable
		return
	}

	stream, err := s.device.Open(ctx, Constraints{Facing: FacingEnvironment})
	if err != nil {
		slog.Warn("camera open failed", "error", err)
		s.state = CameraFailed
		s.err = err
		return
	}
	s.stream = stream
	s.state = CameraLive
}

// release stops every track of the held stream. Caller holds mu.
func (s *CameraSession) release() {
	if s.stream == nil {
		return
	}
	for _, t := range s.stream.Tracks() {
		t.Stop()
	}
	s.stream = nil
}

func scaleToStill(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, config.CameraStillWidth, config.CameraStillHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// EncodeJPEG encodes img for transport and previews.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package domain

import "errors"

var (
	ErrEmptyDraft        = errors.New("draft is empty")
	ErrRequestInFlight   = errors.New("active request exists")
	ErrInvalidPlanForm   = errors.New("crop plan form is incomplete")
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrCameraState       = errors.New("operation not allowed in current camera state")
	ErrDeviceBusy        = errors.New("camera device is held by another stream")
	ErrPreviewNotFound   = errors.New("preview not found")
	ErrNoFrame           = errors.New("no frame available")
	ErrWorkspaceClosed   = errors.New("workspace is closed")
)

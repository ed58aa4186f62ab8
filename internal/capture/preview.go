// Package capture turns picked files and camera frames into draft attachments.
package capture

import (
	"sync"

	"github.com/google/uuid"
	"github.com/set-night/agripay/internal/domain"
)

// Preview is what a view needs to display an attachment before and after it is sent.
// Exactly one of Data or FileID is normally set.
type Preview struct {
	MimeType string
	Data     []byte
	FileID   string // Telegram file id of an already uploaded photo
}

// PreviewStore issues opaque handles for previews, like object URLs in a browser.
type PreviewStore struct {
	mu    sync.RWMutex
	items map[string]Preview
}

func NewPreviewStore() *PreviewStore {
	return &PreviewStore{items: make(map[string]Preview)}
}

// Put stores p and returns its handle. It never blocks on I/O.
func (s *PreviewStore) Put(p Preview) string {
	handle := uuid.NewString()
	s.mu.Lock()
	s.items[handle] = p
	s.mu.Unlock()
	return handle
}

func (s *PreviewStore) Get(handle string) (Preview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[handle]
	if !ok {
		return Preview{}, domain.ErrPreviewNotFound
	}
	return p, nil
}

// Release forgets handle. Releasing an unknown handle is a no-op.
func (s *PreviewStore) Release(handle string) {
	s.mu.Lock()
	delete(s.items, handle)
	s.mu.Unlock()
}

func (s *PreviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

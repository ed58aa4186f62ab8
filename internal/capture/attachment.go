package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"github.com/set-night/agripay/internal/domain"
)

const defaultImageMime = "image/jpeg"

// Loader produces the raw bytes of an attachment when the request is built.
type Loader func(ctx context.Context) ([]byte, error)

// File is a host file-picker result.
type File struct {
	Name     string
	MimeType string
	Preview  Preview
	Load     Loader
}

// Attachment is the single pending image of a draft.
type Attachment struct {
	MimeType string
	Preview  string // handle in the preview store

	load     Loader
	previews *PreviewStore
	once     sync.Once
}

// SelectFile accepts any picked file and issues its preview handle synchronously.
// The bytes are not read until Encode.
func SelectFile(previews *PreviewStore, f File) *Attachment {
	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name)))
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	if mimeType == "" {
		mimeType = defaultImageMime
	}

	preview := f.Preview
	if preview.MimeType == "" {
		preview.MimeType = mimeType
	}

	return &Attachment{
		MimeType: mimeType,
		Preview:  previews.Put(preview),
		load:     f.Load,
		previews: previews,
	}
}

// Encode reads the attachment and returns it in transport encoding.
func (a *Attachment) Encode(ctx context.Context) (domain.InlineImage, error) {
	if a.load == nil {
		return domain.InlineImage{}, fmt.Errorf("attachment has no data source")
	}
	data, err := a.load(ctx)
	if err != nil {
		return domain.InlineImage{}, fmt.Errorf("load attachment: %w", err)
	}
	if len(data) == 0 {
		return domain.InlineImage{}, fmt.Errorf("attachment is empty")
	}
	return domain.InlineImage{
		MimeType: a.MimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Release drops the preview handle. Used when the attachment is removed before
// it is sent; a sent attachment's handle lives on in the message log.
func (a *Attachment) Release() {
	a.once.Do(func() {
		if a.previews != nil {
			a.previews.Release(a.Preview)
		}
	})
}

// BytesLoader wraps in-memory data as a Loader.
func BytesLoader(data []byte) Loader {
	return func(context.Context) ([]byte, error) {
		return data, nil
	}
}

package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFileMimeType(t *testing.T) {
	store := NewPreviewStore()

	cases := []struct {
		file File
		want string
	}{
		{File{Name: "leaf.PNG"}, "image/png"},
		{File{Name: "leaf.jpg"}, "image/jpeg"},
		{File{Name: "leaf", MimeType: "image/webp"}, "image/webp"},
		{File{Name: "noext"}, "image/jpeg"},
	}
	for _, tc := range cases {
		att := SelectFile(store, tc.file)
		assert.Equal(t, tc.want, att.MimeType, tc.file.Name)
		assert.NotEmpty(t, att.Preview)
	}
	assert.Equal(t, len(cases), store.Len())
}

func TestAttachmentEncode(t *testing.T) {
	store := NewPreviewStore()
	att := SelectFile(store, File{Name: "a.png", Load: BytesLoader([]byte("pixels"))})

	img, err := att.Encode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pixels")), img.Data)
}

func TestAttachmentEncodeFailures(t *testing.T) {
	store := NewPreviewStore()
	ctx := context.Background()

	_, err := SelectFile(store, File{Name: "a.png"}).Encode(ctx)
	assert.Error(t, err)

	_, err = SelectFile(store, File{Name: "a.png", Load: BytesLoader(nil)}).Encode(ctx)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = SelectFile(store, File{Name: "a.png", Load: func(context.Context) ([]byte, error) {
		return nil, boom
	}}).Encode(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestAttachmentRelease(t *testing.T) {
	store := NewPreviewStore()
	att := SelectFile(store, File{Name: "a.png"})
	require.Equal(t, 1, store.Len())

	att.Release()
	att.Release()
	assert.Equal(t, 0, store.Len())
}

package capture

import (
	"testing"

	"github.com/set-night/agripay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewStore(t *testing.T) {
	store := NewPreviewStore()

	a := store.Put(Preview{MimeType: "image/png", Data: []byte{1, 2}})
	b := store.Put(Preview{FileID: "file-1"})
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, store.Len())

	got, err := store.Get(a)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MimeType)

	store.Release(a)
	store.Release(a)
	_, err = store.Get(a)
	assert.ErrorIs(t, err, domain.ErrPreviewNotFound)
	assert.Equal(t, 1, store.Len())
}

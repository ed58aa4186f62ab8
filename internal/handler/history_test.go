package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers Bot API calls, rejecting every sendPhoto.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string
	texts []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	_ = r.ParseMultipartForm(1 << 20)

	f.mu.Lock()
	f.calls = append(f.calls, method)
	if method == "sendMessage" {
		f.texts = append(f.texts, r.FormValue("text"))
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if method == "sendPhoto" {
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: wrong type of the web page content"}`))
		return
	}
	w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":7,"type":"private"}}}`))
}

func newHistoryHandler(t *testing.T) (*Handler, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	b, err := bot.New("1:test", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return &Handler{bot: b, previews: capture.NewPreviewStore()}, api
}

func TestReplayHistoryKeepsGoingPastBadImages(t *testing.T) {
	h, api := newHistoryHandler(t)
	doc := h.previews.Put(capture.Preview{MimeType: "image/png", FileID: "doc-file"})

	msgs := []domain.Message{
		{Role: domain.RoleModel, Text: "Hello"},
		{Role: domain.RoleUser, Text: "is this blight?", AttachedImage: doc},
		{Role: domain.RoleUser, AttachedImage: "released-handle"},
		{Role: domain.RoleModel, Text: "Looks like early blight"},
		{Role: domain.RoleUser, Text: "thanks"},
	}

	sent := h.replayHistory(t.Context(), 7, i18n.Primary, msgs)
	assert.Equal(t, len(msgs), sent)

	assert.Equal(t, []string{"sendMessage", "sendPhoto", "sendMessage", "sendMessage", "sendMessage", "sendMessage"}, api.calls)
	require.Len(t, api.texts, 5)
	assert.Contains(t, api.texts[1], "is this blight?")
	assert.Contains(t, api.texts[2], i18n.T(i18n.Primary, "assistant_photo_caption"))
	assert.Contains(t, api.texts[3], "early blight")
	assert.Contains(t, api.texts[4], "thanks")
}

func TestReplayHistoryEmptyPreview(t *testing.T) {
	h, api := newHistoryHandler(t)
	empty := h.previews.Put(capture.Preview{MimeType: "image/png"})

	sent := h.replayHistory(t.Context(), 7, i18n.Primary, []domain.Message{
		{Role: domain.RoleUser, Text: "leaf", AttachedImage: empty},
	})
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"sendMessage"}, api.calls)
}

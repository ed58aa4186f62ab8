package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-telegram/bot"
	"github.com/set-night/agripay/internal/config"
)

// Bot API downloads are capped at 20 MB.
const maxDownloadBytes = 20 << 20

var downloadClient = &http.Client{Timeout: config.RequestTimeout}

// DownloadFile fetches a stored file's bytes by file id.
func DownloadFile(ctx context.Context, b *bot.Bot, fileID string) ([]byte, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if file.FileSize > maxDownloadBytes {
		return nil, fmt.Errorf("file %s is %d bytes, over the download limit", fileID, file.FileSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", file.FilePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %s", file.FilePath, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	switch {
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", file.FilePath, err)
	case len(data) > maxDownloadBytes:
		return nil, fmt.Errorf("download %s: body over the download limit", file.FilePath)
	}
	return data, nil
}

// FileLoader defers DownloadFile until the bytes are needed.
func FileLoader(b *bot.Bot, fileID string) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		return DownloadFile(ctx, b, fileID)
	}
}

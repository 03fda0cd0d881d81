// AngelaMos | 2026
// store.go

package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carterperez-dev/coursekit/internal/config"
	"github.com/carterperez-dev/coursekit/internal/core"
)

// Store persists an uploaded asset and returns its public URL. The disk
// implementation below is the default; an object-storage implementation
// satisfies the same interface.
type Store interface {
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
}

type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(cfg config.MediaConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	return &DiskStore{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Save writes the asset under a random name. Client-supplied filenames never
// reach the filesystem.
func (s *DiskStore) Save(
	ctx context.Context,
	ext string,
	r io.Reader,
) (string, error) {
	token, err := core.GenerateSecureToken(16)
	if err != nil {
		return "", err
	}

	name := token + sanitizeExt(ext)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()       //nolint:errcheck // cleanup on write failure
		_ = os.Remove(path) //nolint:errcheck // cleanup on write failure
		return "", fmt.Errorf("write media file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(filepath.Ext("x" + ext))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".webm", ".pdf":
		return ext
	default:
		return ""
	}
}

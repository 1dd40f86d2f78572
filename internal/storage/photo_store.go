// Package storage keeps uploaded profile photos on a filesystem.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"saathi/internal/config"
	"saathi/internal/domain"
	"saathi/internal/util"

	"github.com/spf13/afero"
)

const (
	MsgPhotoTooLarge   = "Profile photo must be 2MB or smaller"
	MsgPhotoType       = "Profile photo must be a JPEG, PNG or WebP image"
	MsgPhotoEmpty      = "Profile photo is empty"
	photoSubdirectory  = "avatars"
	defaultMaxPhotoLen = 2 * 1024 * 1024
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PhotoStore writes photos under Dir and serves them from PublicPrefix.
type PhotoStore struct {
	fs       afero.Fs
	dir      string
	prefix   string
	maxBytes int64
}

// NewPhotoStore uses the OS filesystem rooted at cfg.Dir.
func NewPhotoStore(cfg config.UploadsConfig) *PhotoStore {
	return NewPhotoStoreWithFs(afero.NewOsFs(), cfg)
}

func NewPhotoStoreWithFs(fs afero.Fs, cfg config.UploadsConfig) *PhotoStore {
	limit := cfg.MaxPhotoBytes
	if limit <= 0 {
		limit = defaultMaxPhotoLen
	}
	return &PhotoStore{fs: fs, dir: cfg.Dir, prefix: cfg.PublicPrefix, maxBytes: limit}
}

// Fs exposes the backing filesystem so the HTTP layer can serve it.
func (s *PhotoStore) Fs() afero.Fs {
	return afero.NewBasePathFs(s.fs, s.dir)
}

// SavePhoto validates data by size and sniffed content type, stores it and
// returns its public URL. The previous photo of the user is replaced.
func (s *PhotoStore) SavePhoto(ctx context.Context, userID string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", domain.NewInvalidInputError(MsgPhotoEmpty)
	}
	if int64(len(data)) > s.maxBytes {
		return "", domain.NewInvalidInputError(MsgPhotoTooLarge)
	}

	ext, ok := photoExtensions[http.DetectContentType(data)]
	if !ok {
		return "", domain.NewUnsupportedMediaError(MsgPhotoType)
	}

	dir := filepath.Join(s.dir, photoSubdirectory, userID)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewInternalError("Failed to store profile photo", err)
	}
	if err := s.removeExisting(dir); err != nil {
		return "", domain.NewInternalError("Failed to store profile photo", err)
	}

	name := util.NewULID() + ext
	if err := afero.WriteReader(s.fs, filepath.Join(dir, name), bytes.NewReader(data)); err != nil {
		return "", domain.NewInternalError("Failed to store profile photo", err)
	}
	return path.Join(s.prefix, photoSubdirectory, userID, name), nil
}

func (s *PhotoStore) removeExisting(dir string) error {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := s.fs.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

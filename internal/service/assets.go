package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AssetStore persists uploaded menu images under a local directory and
// hands back the URL clients fetch them from. It stands in for the managed
// object storage the mobile app originally uploaded to.
type AssetStore struct {
	dir     string
	baseURL string
}

// NewAssetStore creates the images directory if needed.
func NewAssetStore(dir, baseURL string) (*AssetStore, error) {
	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}
	return &AssetStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the root assets directory, for the static file route.
func (s *AssetStore) Dir() string {
	return s.dir
}

// SaveImage writes an uploaded image under images/ and returns its public
// URL. The stored name is a fresh uuid plus the original extension, so
// uploads never collide or traverse outside the directory.
func (s *AssetStore) SaveImage(fileName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedImageExts[ext] {
		return "", api.Errorf(api.KindValidation, "unsupported image type %q", ext)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, "images", name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return s.baseURL + "/assets/images/" + name, nil
}

// RemoveImage deletes a stored image by its public URL. Only the final path
// element is used, so the URL cannot reach outside the images directory.
func (s *AssetStore) RemoveImage(url string) error {
	name := filepath.Base(url)
	return os.Remove(filepath.Join(s.dir, "images", name))
}

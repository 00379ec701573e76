package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"runoot/logger"
	"runoot/utils"

	"github.com/google/uuid"
)

// MaxImageSize caps uploaded listing and request images at 8 MiB
const MaxImageSize = 8 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Store writes uploaded images under a local base directory, keyed as
// {ownerID}/{entityID}/{timestamp}-{slug}{ext}, and serves them from a
// public base URL.
type Store struct {
	BaseDir string
	BaseURL string
}

func New() *Store {
	baseDir := os.Getenv("UPLOAD_DIR")
	if baseDir == "" {
		baseDir = "uploads"
	}
	baseURL := os.Getenv("UPLOAD_BASE_URL")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &Store{BaseDir: baseDir, BaseURL: baseURL}
}

// ValidateImage checks content type and size before anything is written
func (s *Store) ValidateImage(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[contentType]; !ok {
		return fmt.Errorf("invalid file type %q, only JPEG, PNG and WebP images are allowed", contentType)
	}
	if file.Size > MaxImageSize {
		return fmt.Errorf("file too large, maximum size is 8 MiB")
	}
	return nil
}

// SaveImage stores the uploaded file and returns its public URL and storage
// path. The caller decides whether a failure is fatal.
func (s *Store) SaveImage(ownerID, entityID uint, file *multipart.FileHeader) (string, string, error) {
	if err := s.ValidateImage(file); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if mapped, ok := allowedImageTypes[file.Header.Get("Content-Type")]; ok && ext == "" {
		ext = mapped
	}

	slug := utils.Slugify(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))
	key := fmt.Sprintf("%d/%d/%d-%s-%s%s",
		ownerID, entityID, time.Now().Unix(), slug, uuid.NewString()[:8], ext)

	fullPath := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create stored object: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", "", fmt.Errorf("failed to write stored object: %w", err)
	}

	url := strings.TrimRight(s.BaseURL, "/") + "/" + key
	return url, key, nil
}

// Delete removes a stored object by key. Missing objects are not an error.
func (s *Store) Delete(key string) error {
	if key == "" {
		return nil
	}
	fullPath := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		logger.Error(fmt.Sprintf("failed to delete stored object %s", key), err)
		return err
	}
	return nil
}

// Package blob stores uploaded files (avatars, message attachments,
// pathway photos) and hands back a retrievable URL. Uploads are capped
// before anything touches the backend so an oversized file can never
// block or pollute storage.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxUploadBytes caps individual uploads (avatars, attachments).
const MaxUploadBytes = 600 * 1024

// ErrTooLarge means the upload exceeds MaxUploadBytes.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Store saves blobs and returns URLs they can be fetched from later.
type Store interface {
	// Put stores the blob under a generated name keeping ext (".jpg")
	// and returns its public URL.
	Put(ctx context.Context, prefix, ext string, r io.Reader) (string, error)
}

// ReadCapped reads r fully, failing with ErrTooLarge past the cap.
func ReadCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// LocalStore writes blobs under a directory served at baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: baseURL}
}

func (s *LocalStore) Put(ctx context.Context, prefix, ext string, r io.Reader) (string, error) {
	data, err := ReadCapped(r)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dir := filepath.Join(s.dir, prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join(s.baseURL, prefix, name), nil
}

// Dir is the root the HTTP server should serve at the base URL.
func (s *LocalStore) Dir() string {
	return s.dir
}

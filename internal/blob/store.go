// Package blob keeps uploaded claim documents, on the local filesystem or
// in an S3 bucket.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultURLPrefix is where saved files are served from.
const DefaultURLPrefix = "/uploads"

// Store saves one uploaded document and returns the URL it can be fetched from.
type Store interface {
	Save(ctx context.Context, claimID, filename string, r io.Reader) (string, error)
}

// objectName is a random name that keeps the lower-cased extension of filename.
func objectName(claimID, filename string) (string, error) {
	if claimID == "" || claimID != filepath.Base(claimID) || claimID == "." || claimID == ".." {
		return "", fmt.Errorf("invalid claim id %q", claimID)
	}
	name := strings.ReplaceAll(uuid.New().String(), "-", "")
	return name + strings.ToLower(filepath.Ext(filename)), nil
}

// FileStore writes each claim's files into its own directory under root.
type FileStore struct {
	root      string
	urlPrefix string
}

func NewFileStore(root, urlPrefix string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("blob root directory is required")
	}
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root: %w", err)
	}
	return &FileStore{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Root is the directory files are written under.
func (s *FileStore) Root() string { return s.root }

// URLPrefix is the path prefix returned URLs start with.
func (s *FileStore) URLPrefix() string { return s.urlPrefix }

// Save copies r into a new file with a random name that keeps the original
// extension and returns its URL path.
func (s *FileStore) Save(ctx context.Context, claimID, filename string, r io.Reader) (string, error) {
	name, err := objectName(claimID, filename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, claimID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create claim directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path.Join(s.urlPrefix, claimID, name), nil
}

// Package export stores comparison snapshots as PNG files.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Store writes snapshots to a directory. The file name is the SHA-256 of
// the encoded PNG, so identical snapshots share one file.
type Store struct {
	basePath string
}

// NewStore creates the directory if needed.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Put encodes img as PNG and returns its identifier.
func (s *Store) Put(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	hash := sha256.Sum256(buf.Bytes())
	id := hex.EncodeToString(hash[:])
	if err := os.WriteFile(s.Path(id), buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return id, nil
}

// Path returns the file path for a snapshot identifier.
func (s *Store) Path(id string) string {
	return filepath.Join(s.basePath, id+".png")
}

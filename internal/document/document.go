// Package document opens paginated documents and rasterizes their pages.
package document

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

var (
	// ErrNotPDF is returned by the structural probe for files it cannot parse.
	ErrNotPDF = errors.New("not a valid PDF document")
	// ErrPageRange is returned when a page index is outside [0, PageCount).
	ErrPageRange = errors.New("page index out of range")
)

// Document is an open paginated source. A Document is owned by exactly one
// viewer and is not safe for concurrent use.
type Document interface {
	PageCount() int
	// RenderPage rasterizes page index at its natural resolution. hintHeight
	// may only influence raster quality; scaling is left to the caller.
	RenderPage(index, hintHeight int) (image.Image, error)
	Close() error
}

// Opener creates Documents from paths.
type Opener interface {
	Open(path string) (Document, error)
}

// OpenError reports a path that could not be opened as a document.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open document %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// IsOpenError reports whether err is, or wraps, an *OpenError.
func IsOpenError(err error) bool {
	var oe *OpenError
	return errors.As(err, &oe)
}

// IsPDFPath reports whether a dropped path names a PDF file.
func IsPDFPath(path string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(path)), ".pdf")
}

// CleanDropPath strips the braces some platforms wrap around dropped paths
// containing spaces.
func CleanDropPath(path string) string {
	return strings.Trim(strings.TrimSpace(path), "{}")
}

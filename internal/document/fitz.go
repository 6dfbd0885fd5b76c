package document

import (
	"errors"
	"fmt"
	"image"
	"os"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/sirupsen/logrus"
)

// FitzOptions tunes MuPDF rasterization.
type FitzOptions struct {
	// DPI is the natural rasterization resolution; 72 renders one pixel per point.
	DPI float64
	// MaxDPI caps the resolution chosen when Hinted is set.
	MaxDPI float64
	// Hinted raises the DPI so the raster is at least as tall as the hint.
	Hinted bool
	// Probe validates the file with the structural probe before handing it to MuPDF.
	Probe bool
}

// FitzOpener opens documents with MuPDF.
type FitzOpener struct {
	opts FitzOptions
	log  *logrus.Entry
}

// NewFitzOpener creates a MuPDF-backed opener.
func NewFitzOpener(opts FitzOptions, log *logrus.Entry) *FitzOpener {
	if opts.DPI <= 0 {
		opts.DPI = 72
	}
	if opts.MaxDPI < opts.DPI {
		opts.MaxDPI = opts.DPI
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &FitzOpener{opts: opts, log: log.WithField("component", "document")}
}

// Open opens path. Every failure is reported as an *OpenError.
func (o *FitzOpener) Open(path string) (Document, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if fi.IsDir() {
		return nil, &OpenError{Path: path, Err: errors.New("is a directory")}
	}
	if o.opts.Probe {
		if _, err := Probe(path); err != nil {
			return nil, &OpenError{Path: path, Err: err}
		}
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	o.log.WithFields(logrus.Fields{"path": path, "pages": doc.NumPage()}).Debug("document opened")
	return &fitzDocument{doc: doc, opts: o.opts}, nil
}

type fitzDocument struct {
	doc  *fitz.Document
	opts FitzOptions
}

func (d *fitzDocument) PageCount() int { return d.doc.NumPage() }

func (d *fitzDocument) RenderPage(index, hintHeight int) (image.Image, error) {
	if index < 0 || index >= d.doc.NumPage() {
		return nil, fmt.Errorf("render page %d: %w", index, ErrPageRange)
	}
	dpi := d.opts.DPI
	if d.opts.Hinted && hintHeight > 0 {
		bound, err := d.doc.Bound(index)
		if err != nil {
			return nil, fmt.Errorf("page %d bounds: %w", index, err)
		}
		dpi = hintedDPI(dpi, d.opts.MaxDPI, bound.Dy(), hintHeight)
	}
	img, err := d.doc.ImageDPI(index, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error { return d.doc.Close() }

// hintedDPI picks the smallest DPI in [base, maxDPI] at which a page that is
// pointsHigh tall at 72 DPI rasterizes to at least hint pixels.
func hintedDPI(base, maxDPI float64, pointsHigh, hint int) float64 {
	if pointsHigh <= 0 {
		return base
	}
	want := 72 * float64(hint) / float64(pointsHigh)
	return min(max(want, base), maxDPI)
}

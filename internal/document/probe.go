package document

import (
	"fmt"
	"os"

	"rsc.io/pdf"
)

// Info is the structural summary of a PDF file.
type Info struct {
	Path      string
	PageCount int
	// Width and Height are the first page's MediaBox in points.
	Width  float64
	Height float64
}

// Probe parses path with a pure-Go PDF reader without rasterizing anything.
func Probe(path string) (info Info, err error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Info{}, err
	}

	// the reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			info, err = Info{}, fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	info = Info{Path: path, PageCount: r.NumPage()}
	if info.PageCount > 0 {
		info.Width, info.Height = mediaBox(r.Page(1).V)
	}
	return info, nil
}

// mediaBox walks up the page tree since MediaBox is inheritable.
func mediaBox(v pdf.Value) (float64, float64) {
	for i := 0; i < 32 && v.Kind() == pdf.Dict; i++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			return abs(w), abs(h)
		}
		v = v.Key("Parent")
	}
	return 0, 0
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// Package viewer holds the per-side navigation state of the comparison and
// the pair that mirrors page changes between the two sides.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaywantadh/DuoView/internal/document"
	"github.com/jaywantadh/DuoView/internal/input"
	"github.com/jaywantadh/DuoView/internal/render"
)

// State is a snapshot of a viewer, delivered to listeners after every
// successful load, page change or resize.
type State struct {
	Side      render.Side
	Loaded    bool
	Path      string
	Page      int // 0-based
	PageCount int
	Frame     render.Frame
}

// DisplayPage returns the 1-based page number shown to users.
func (s State) DisplayPage() int { return s.Page + 1 }

// Listener observes a viewer.
type Listener func(State)

type coordinator interface {
	propagate(from render.Side, page int) error
}

// Viewer is one side of the comparison. It is driven from a single event
// loop and is not safe for concurrent use.
type Viewer struct {
	id       uuid.UUID
	side     render.Side
	opener   document.Opener
	renderer *render.Renderer
	log      *logrus.Entry

	doc  document.Document
	path string
	page int

	native image.Image // last raster from the document, rescaled on resize
	frame  render.Frame
	size   render.Size

	coord     coordinator
	listeners []Listener
}

// New creates an empty viewer for side.
func New(side render.Side, opener document.Opener, renderer *render.Renderer, log *logrus.Entry) *Viewer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	id := uuid.New()
	return &Viewer{
		id:       id,
		side:     side,
		opener:   opener,
		renderer: renderer,
		log:      log.WithFields(logrus.Fields{"side": side.String(), "viewer": id.String()}),
	}
}

func (v *Viewer) ID() uuid.UUID       { return v.id }
func (v *Viewer) Side() render.Side   { return v.side }
func (v *Viewer) Loaded() bool        { return v.doc != nil }
func (v *Viewer) Page() int           { return v.page }
func (v *Viewer) Path() string        { return v.path }
func (v *Viewer) Frame() render.Frame { return v.frame }

// PageCount returns 0 while no document is loaded.
func (v *Viewer) PageCount() int {
	if v.doc == nil {
		return 0
	}
	return v.doc.PageCount()
}

// State returns the current snapshot.
func (v *Viewer) State() State {
	return State{
		Side:      v.side,
		Loaded:    v.doc != nil,
		Path:      v.path,
		Page:      v.page,
		PageCount: v.PageCount(),
		Frame:     v.frame,
	}
}

// Subscribe registers l for state updates.
func (v *Viewer) Subscribe(l Listener) {
	v.listeners = append(v.listeners, l)
}

// Load opens path and shows its first page. On failure the viewer keeps
// whatever it showed before and the error is an *document.OpenError.
func (v *Viewer) Load(path string) error {
	doc, err := v.opener.Open(path)
	if err != nil {
		if !document.IsOpenError(err) {
			err = &document.OpenError{Path: path, Err: err}
		}
		v.log.WithError(err).WithField("path", path).Warn("load failed")
		return err
	}
	return v.LoadDocument(doc, path)
}

// LoadDocument takes ownership of doc and shows its first page. The
// previous document is closed only once doc has rendered.
func (v *Viewer) LoadDocument(doc document.Document, path string) error {
	if doc.PageCount() < 1 {
		doc.Close()
		return &document.OpenError{Path: path, Err: errors.New("document has no pages")}
	}
	native, err := doc.RenderPage(0, v.renderer.TargetHeight(v.size))
	if err != nil {
		doc.Close()
		return &document.OpenError{Path: path, Err: err}
	}

	prev := v.doc
	v.doc, v.path, v.page = doc, path, 0
	v.show(native)
	if prev != nil {
		if err := prev.Close(); err != nil {
			v.log.WithError(err).Warn("closing previous document")
		}
	}
	v.log.WithFields(logrus.Fields{"path": path, "pages": doc.PageCount()}).Info("document loaded")
	v.notify()
	return nil
}

// Resize rescales the last raster for a new viewport size without going
// back to the document.
func (v *Viewer) Resize(size render.Size) {
	v.size = size
	if v.native == nil {
		return
	}
	v.show(v.native)
	v.notify()
}

// GotoPage navigates to page n (0-based), clamped to the document. Moving
// to the current page does nothing. A real change is mirrored to the
// partner when the viewer belongs to a linked pair.
func (v *Viewer) GotoPage(n int) error {
	return v.gotoPage(n, Local())
}

// Navigate applies an input command.
func (v *Viewer) Navigate(cmd input.Command) error {
	if v.doc == nil || cmd.Op == input.OpNone {
		return nil
	}
	return v.GotoPage(cmd.Target(v.page, v.doc.PageCount()))
}

// CommitPageText handles a committed page-number field. text is 1-based;
// anything that is not an integer leaves the viewer where it is.
func (v *Viewer) CommitPageText(text string) error {
	if v.doc == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		v.log.WithField("text", text).Debug("ignoring page entry")
		return nil
	}
	return v.GotoPage(n - 1)
}

// Close releases the document.
func (v *Viewer) Close() error {
	if v.doc == nil {
		return nil
	}
	err := v.doc.Close()
	v.doc, v.native, v.frame, v.path, v.page = nil, nil, render.Frame{}, "", 0
	return err
}

func (v *Viewer) gotoPage(n int, origin Origin) error {
	if v.doc == nil {
		return nil
	}
	target := clamp(n, 0, v.doc.PageCount()-1)
	if target == v.page {
		return nil
	}

	native, err := v.doc.RenderPage(target, v.renderer.TargetHeight(v.size))
	if err != nil {
		return fmt.Errorf("render page %d of %s: %w", target+1, v.path, err)
	}
	v.page = target
	v.show(native)
	v.log.WithFields(logrus.Fields{"page": target, "origin": origin.String()}).Debug("page changed")
	v.notify()

	if origin.Propagated() || v.coord == nil {
		return nil
	}
	return v.coord.propagate(v.side, target)
}

func (v *Viewer) show(native image.Image) {
	v.native = native
	v.frame = v.renderer.Render(native, v.side, v.size)
}

func (v *Viewer) notify() {
	s := v.State()
	for _, l := range v.listeners {
		l(s)
	}
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

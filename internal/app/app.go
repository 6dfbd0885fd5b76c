// Package app wires configuration into a ready-to-use viewer pair.
package app

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jaywantadh/DuoView/config"
	"github.com/jaywantadh/DuoView/internal/document"
	"github.com/jaywantadh/DuoView/internal/input"
	"github.com/jaywantadh/DuoView/internal/render"
	"github.com/jaywantadh/DuoView/internal/session"
	"github.com/jaywantadh/DuoView/internal/viewer"
)

// Compare is one comparison window's worth of state.
type Compare struct {
	Pair       *viewer.Pair
	Dispatcher *input.Dispatcher
	log        *logrus.Entry
}

// New builds a Compare backed by MuPDF.
func New(cfg *config.AppConfig, log *logrus.Entry) (*Compare, error) {
	opener := document.NewFitzOpener(document.FitzOptions{
		DPI:    cfg.Document.DPI,
		MaxDPI: cfg.Document.MaxDPI,
		Hinted: cfg.Document.Hinted,
		Probe:  cfg.Document.Probe,
	}, log)
	return NewWithOpener(cfg, opener, log)
}

// NewWithOpener builds a Compare around any document opener.
func NewWithOpener(cfg *config.AppConfig, opener document.Opener, log *logrus.Entry) (*Compare, error) {
	renderer, err := render.NewRenderer(render.Options{
		FallbackHeight: cfg.Render.FallbackHeight,
		MinHeight:      cfg.Render.MinHeight,
		Filter:         cfg.Render.Filter,
	})
	if err != nil {
		return nil, err
	}
	dispatcher, err := input.NewDispatcher(cfg.Keys)
	if err != nil {
		return nil, err
	}

	left := viewer.New(render.Left, opener, renderer, log)
	right := viewer.New(render.Right, opener, renderer, log)
	pair, err := viewer.NewPair(left, right, log)
	if err != nil {
		return nil, err
	}
	pair.SetLinked(cfg.Sync.Linked)
	return &Compare{Pair: pair, Dispatcher: dispatcher, log: log}, nil
}

// Handle routes an input event to the viewer on side.
func (c *Compare) Handle(side render.Side, ev input.Event) error {
	return c.Pair.Viewer(side).Navigate(c.Dispatcher.Handle(ev))
}

// LoadStartup loads startup paths into the left and right viewers. Paths
// that are not existing regular files are skipped.
func (c *Compare) LoadStartup(left, right string) error {
	for side, path := range [2]string{left, right} {
		if !isFile(path) {
			continue
		}
		if err := c.Pair.Viewer(render.Side(side)).Load(path); err != nil {
			return fmt.Errorf("startup %s: %w", render.Side(side), err)
		}
	}
	return nil
}

// Restore reopens a saved session. The pages are restored without
// mirroring so each side returns to exactly where it was; the saved sync
// setting applies afterwards.
func (c *Compare) Restore(snap session.Snapshot) error {
	c.Pair.SetLinked(false)
	defer c.Pair.SetLinked(snap.Linked)

	for side, s := range [2]session.Side{snap.Left, snap.Right} {
		if !isFile(s.Path) {
			continue
		}
		v := c.Pair.Viewer(render.Side(side))
		if err := v.Load(s.Path); err != nil {
			return err
		}
		if err := v.GotoPage(s.Page); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot captures the pair for the session store.
func (c *Compare) Snapshot() session.Snapshot {
	l, r := c.Pair.Left(), c.Pair.Right()
	return session.Snapshot{
		Left:   session.Side{Path: l.Path(), Page: l.Page()},
		Right:  session.Side{Path: r.Path(), Page: r.Page()},
		Linked: c.Pair.Linked(),
	}
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

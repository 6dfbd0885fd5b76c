package viewer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jaywantadh/DuoView/internal/render"
)

// Origin tags a navigation with where it came from. Navigations that were
// propagated from the partner are never propagated again, which bounds
// mirroring to a single hop.
type Origin struct {
	propagated bool
	from       render.Side
}

// Local is a navigation requested on the viewer itself.
func Local() Origin { return Origin{} }

// PropagatedFrom is a navigation mirrored from the viewer on side s.
func PropagatedFrom(s render.Side) Origin { return Origin{propagated: true, from: s} }

func (o Origin) Propagated() bool { return o.propagated }

// From returns the originating side of a propagated navigation.
func (o Origin) From() render.Side { return o.from }

func (o Origin) String() string {
	if !o.propagated {
		return "local"
	}
	return "from-" + o.from.String()
}

// Pair owns the left and right viewers and mirrors page changes between
// them while linked. Viewers reach their partner only through the pair,
// by side.
type Pair struct {
	viewers [2]*Viewer
	linked  bool
	log     *logrus.Entry
}

// NewPair links left and right.
func NewPair(left, right *Viewer, log *logrus.Entry) (*Pair, error) {
	if left.Side() != render.Left || right.Side() != render.Right {
		return nil, fmt.Errorf("pair needs a left and a right viewer, got %s and %s", left.Side(), right.Side())
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	p := &Pair{
		viewers: [2]*Viewer{left, right},
		linked:  true,
		log:     log.WithField("component", "sync"),
	}
	left.coord = p
	right.coord = p
	return p, nil
}

func (p *Pair) Left() *Viewer                { return p.viewers[render.Left] }
func (p *Pair) Right() *Viewer               { return p.viewers[render.Right] }
func (p *Pair) Viewer(s render.Side) *Viewer { return p.viewers[s] }
func (p *Pair) Linked() bool                 { return p.linked }

// SetLinked turns mirroring on or off.
func (p *Pair) SetLinked(linked bool) {
	p.linked = linked
	p.log.WithField("linked", linked).Info("sync toggled")
}

// Close closes both viewers.
func (p *Pair) Close() error {
	errL := p.Left().Close()
	errR := p.Right().Close()
	if errL != nil {
		return errL
	}
	return errR
}

func (p *Pair) propagate(from render.Side, page int) error {
	if !p.linked {
		return nil
	}
	partner := p.viewers[from.Other()]
	p.log.WithFields(logrus.Fields{"from": from.String(), "page": page}).Debug("mirroring page")
	if err := partner.gotoPage(page, PropagatedFrom(from)); err != nil {
		return fmt.Errorf("sync %s viewer: %w", partner.Side(), err)
	}
	return nil
}

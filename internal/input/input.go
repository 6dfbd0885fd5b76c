// Package input maps logical input events to navigation commands through a
// declarative binding table.
package input

import (
	"fmt"
	"strings"
)

// Key is a logical, platform-independent key.
type Key string

const (
	KeyUp       Key = "up"
	KeyDown     Key = "down"
	KeyPageUp   Key = "pageup"
	KeyPageDown Key = "pagedown"
	KeyHome     Key = "home"
	KeyEnd      Key = "end"
	// KeyWheelUp and KeyWheelDown are discrete wheel buttons.
	KeyWheelUp   Key = "wheelup"
	KeyWheelDown Key = "wheeldown"
)

// EventKind distinguishes key presses from continuous wheel gestures.
type EventKind uint8

const (
	KeyEvent EventKind = iota
	WheelEvent
)

// Event is one input event delivered to a viewport.
type Event struct {
	Kind EventKind
	Key  Key
	// WheelDelta is the signed wheel movement; only its sign is used.
	WheelDelta float64
}

// Op is the kind of navigation a Command performs.
type Op uint8

const (
	OpNone Op = iota
	OpRelative
	OpAbsolute
	OpLast
)

// Command is a navigation request independent of any document.
type Command struct {
	Op    Op
	Value int
}

var (
	None   = Command{Op: OpNone}
	Prev   = Command{Op: OpRelative, Value: -1}
	Next   = Command{Op: OpRelative, Value: 1}
	Prev10 = Command{Op: OpRelative, Value: -10}
	Next10 = Command{Op: OpRelative, Value: 10}
	First  = Command{Op: OpAbsolute, Value: 0}
	Last   = Command{Op: OpLast}
)

var actions = map[string]Command{
	"none":   None,
	"prev":   Prev,
	"next":   Next,
	"prev10": Prev10,
	"next10": Next10,
	"first":  First,
	"last":   Last,
}

// Goto returns an absolute navigation to a 0-based page.
func Goto(page int) Command {
	return Command{Op: OpAbsolute, Value: page}
}

// Target resolves the command against the current page of a document with
// count pages. The result is not clamped.
func (c Command) Target(current, count int) int {
	switch c.Op {
	case OpRelative:
		return current + c.Value
	case OpAbsolute:
		return c.Value
	case OpLast:
		return count - 1
	}
	return current
}

// ParseAction resolves an action name as used in configuration.
func ParseAction(name string) (Command, error) {
	c, ok := actions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return None, fmt.Errorf("unknown action %q", name)
	}
	return c, nil
}

// DefaultBindings returns the stock key table.
func DefaultBindings() map[Key]Command {
	return map[Key]Command{
		KeyUp:        Prev,
		KeyDown:      Next,
		KeyPageUp:    Prev10,
		KeyPageDown:  Next10,
		KeyHome:      First,
		KeyEnd:       Last,
		KeyWheelUp:   Prev,
		KeyWheelDown: Next,
	}
}

// Dispatcher turns events into commands.
type Dispatcher struct {
	bindings map[Key]Command
}

// NewDispatcher builds a dispatcher from the default table with overrides
// applied. Overrides map key names to action names.
func NewDispatcher(overrides map[string]string) (*Dispatcher, error) {
	b := DefaultBindings()
	for k, action := range overrides {
		c, err := ParseAction(action)
		if err != nil {
			return nil, fmt.Errorf("binding for %q: %w", k, err)
		}
		key := Key(strings.ToLower(strings.TrimSpace(k)))
		if _, known := b[key]; !known {
			return nil, fmt.Errorf("unknown key %q", k)
		}
		b[key] = c
	}
	return &Dispatcher{bindings: b}, nil
}

// Handle maps an event to a command. A positive wheel delta goes to the
// previous page, a negative one to the next page.
func (d *Dispatcher) Handle(ev Event) Command {
	switch ev.Kind {
	case WheelEvent:
		switch {
		case ev.WheelDelta > 0:
			return Prev
		case ev.WheelDelta < 0:
			return Next
		}
		return None
	case KeyEvent:
		if c, ok := d.bindings[ev.Key]; ok {
			return c
		}
	}
	return None
}

// Package panel is the view model shared by calculator front-ends.
//
// A Panel owns one editor State along with the display flags that surround
// it: scientific mode, the history drawer, and the color theme. Front-ends
// pass it the controls and keys the user activates and render the Frame it
// returns after each one.
package panel

import (
	"context"
	"io"
	"log"
	"slices"

	"github.com/zephyrtronium/bigcalc/editor"
	"github.com/zephyrtronium/bigcalc/prefs"
)

// Status labels.
const (
	StatusBasic = "BASIC OPS"
	StatusSci   = "SCI MODE"
)

// Control is an on-screen control. Exactly one of Value and Action is
// normally set; Fn names the function when Action is "func".
type Control struct {
	Value  string `json:"value,omitempty"`
	Action string `json:"action,omitempty"`
	Fn     string `json:"fn,omitempty"`
}

// Frame is everything a front-end renders.
type Frame struct {
	// Display is the expression, or "0" if it is empty.
	Display string `json:"display"`
	// Previous labels the last result.
	Previous string `json:"previous"`
	// History lists recent evaluations, newest first.
	History []string `json:"history"`
	// Memory is whether the memory register holds a value.
	Memory bool `json:"memory"`
	// Status is StatusSci in scientific mode and StatusBasic otherwise.
	Status string `json:"status"`
	// Sci is whether scientific controls are shown.
	Sci bool `json:"sci"`
	// Drawer is whether the history drawer is open.
	Drawer bool `json:"drawer"`
	// Theme is prefs.Light or prefs.Dark.
	Theme string `json:"theme"`
}

// Panel is a calculator session. It is not safe for concurrent use.
type Panel struct {
	ev     editor.Evaluator
	store  prefs.Store
	logger *log.Logger

	state  editor.State
	sci    bool
	drawer bool
	theme  string
}

// New creates a panel with an empty editor. The theme is loaded from store.
// Errors from store are logged to logger, or discarded if logger is nil.
func New(ctx context.Context, ev editor.Evaluator, store prefs.Store, logger *log.Logger) *Panel {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	p := &Panel{ev: ev, store: store, logger: logger}
	theme, err := prefs.Theme(ctx, store)
	if err != nil {
		logger.Print(err)
	}
	p.theme = theme
	return p
}

// Press activates a control.
func (p *Panel) Press(ctx context.Context, c Control) Frame {
	switch {
	case c.Value != "":
		p.apply(editor.Value(c.Value))
	case c.Action == "theme":
		p.toggleTheme(ctx)
	case c.Action == "sci":
		p.sci = !p.sci
	case c.Action == "history":
		p.drawer = !p.drawer
	case c.Action == "close-history":
		p.drawer = false
	case c.Action != "":
		p.apply(editor.Action(c.Action, c.Fn))
	}
	return p.Frame()
}

// Key handles a physical key by name, like "7", "Enter", or "Backspace".
func (p *Panel) Key(name string) Frame {
	p.apply(editor.Key(name))
	return p.Frame()
}

// State returns the editor state.
func (p *Panel) State() editor.State {
	return p.state
}

func (p *Panel) apply(tok editor.Token) {
	if tok.Kind == editor.None {
		return
	}
	p.state = editor.Apply(p.state, tok, p.ev)
}

func (p *Panel) toggleTheme(ctx context.Context) {
	if p.theme == prefs.Light {
		p.theme = prefs.Dark
	} else {
		p.theme = prefs.Light
	}
	if err := prefs.SetTheme(ctx, p.store, p.theme); err != nil {
		p.logger.Print(err)
	}
}

// Frame renders the current state.
func (p *Panel) Frame() Frame {
	f := Frame{
		Display:  p.state.Expression,
		Previous: p.state.LastResult,
		History:  slices.Clone(p.state.History),
		Memory:   p.state.Memory != nil,
		Status:   StatusBasic,
		Sci:      p.sci,
		Drawer:   p.drawer,
		Theme:    p.theme,
	}
	if f.Display == "" {
		f.Display = "0"
	}
	if f.History == nil {
		f.History = []string{}
	}
	if p.sci {
		f.Status = StatusSci
	}
	return f
}

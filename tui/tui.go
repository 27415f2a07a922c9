// Package tui runs the calculator in a terminal.
package tui

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/zephyrtronium/bigcalc/panel"
)

// width is the width of the calculator on screen.
const width = 4*keyW + 3*keyGap

// UI draws a panel to a screen and feeds it keyboard and mouse input.
type UI struct {
	screen   tcell.Screen
	panel    *panel.Panel
	palettes Palettes

	frame   panel.Frame
	buttons []Button
	mouse   tcell.ButtonMask
}

// New creates a UI. The screen must already be initialized.
func New(screen tcell.Screen, p *panel.Panel, palettes Palettes) *UI {
	u := &UI{screen: screen, panel: p, palettes: palettes}
	u.update(p.Frame())
	return u
}

// Frame returns the last frame the UI drew.
func (u *UI) Frame() panel.Frame {
	return u.frame
}

// Run handles events until the user quits, ctx is canceled, or the screen is
// finalized.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	defer u.screen.DisableMouse()
	stop := context.AfterFunc(ctx, func() {
		u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()
	u.draw()
	for {
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		case *tcell.EventResize:
			u.screen.Sync()
			u.draw()
		case *tcell.EventKey:
			name, cmd := keyCommand(ev)
			switch cmd {
			case cmdQuit:
				return nil
			case cmdControl:
				u.update(u.panel.Press(ctx, panel.Control{Action: name}))
			case cmdKey:
				u.update(u.panel.Key(name))
			}
			u.draw()
		case *tcell.EventMouse:
			x, y := ev.Position()
			b := ev.Buttons()
			// Only the press of the primary button activates a control.
			pressed := b&tcell.Button1 != 0 && u.mouse&tcell.Button1 == 0
			u.mouse = b
			if !pressed {
				continue
			}
			if c, ok := Hit(u.buttons, x, y); ok {
				u.update(u.panel.Press(ctx, c))
				u.draw()
			}
		}
	}
}

type command int

const (
	cmdNone command = iota
	cmdQuit
	// cmdControl means the name is a panel action.
	cmdControl
	// cmdKey means the name is a key for the panel.
	cmdKey
)

// keyCommand maps a key event to a key name or a panel action.
func keyCommand(ev *tcell.EventKey) (string, command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", cmdQuit
	case tcell.KeyEnter:
		return "Enter", cmdKey
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace", cmdKey
	case tcell.KeyRune:
		// handled below
	default:
		return "", cmdNone
	}
	switch r := ev.Rune(); r {
	case 'q':
		return "", cmdQuit
	case 't':
		return "theme", cmdControl
	case 's':
		return "sci", cmdControl
	case 'h':
		return "history", cmdControl
	default:
		return string(r), cmdKey
	}
}

func (u *UI) update(f panel.Frame) {
	u.frame = f
	u.buttons = Layout(f)
}

func (u *UI) draw() {
	s := u.screen
	pal := u.palettes.For(u.frame.Theme)
	display := styleFrom(pal.Display)
	label := styleFrom(pal.Label)
	s.SetStyle(display)
	s.Clear()

	status := styleFrom(pal.Status)
	fill(s, 0, rowStatus, width, status)
	put(s, 1, rowStatus, status, u.frame.Status)
	if u.frame.Memory {
		put(s, width-2, rowStatus, status, "M")
	}
	rightAlign(s, rowPrev, label, u.frame.Previous)
	rightAlign(s, rowDisplay, display, u.frame.Display)

	keyStyle, opStyle := styleFrom(pal.Key), styleFrom(pal.Op)
	for _, b := range u.buttons {
		st := keyStyle
		if b.Op {
			st = opStyle
		}
		fill(s, b.X, b.Y, b.W, st)
		put(s, b.X+(b.W-len(b.Label))/2, b.Y, st, b.Label)
	}

	if u.frame.Drawer {
		hist := styleFrom(pal.History)
		y := historyRow(u.buttons)
		put(s, 0, y, label, "HISTORY")
		for i, h := range u.frame.History {
			put(s, 0, y+1+i, hist, h)
		}
	}
	s.Show()
}

func put(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func fill(s tcell.Screen, x, y, w int, style tcell.Style) {
	put(s, x, y, style, strings.Repeat(" ", w))
}

// rightAlign draws str ending at the calculator's right edge. Text wider
// than the calculator shows its end.
func rightAlign(s tcell.Screen, y int, style tcell.Style, str string) {
	if len(str) > width {
		str = str[len(str)-width:]
	}
	put(s, width-len(str), y, style, str)
}

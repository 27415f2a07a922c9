package tui

import "github.com/zephyrtronium/bigcalc/panel"

// Button is a keypad button on screen. Buttons are one row tall.
type Button struct {
	Label   string
	Control panel.Control
	X, Y, W int
	// Op is whether the button is drawn in the operator color.
	Op bool
}

// Contains returns whether the cell x, y is on the button.
func (b Button) Contains(x, y int) bool {
	return y == b.Y && b.X <= x && x < b.X+b.W
}

const (
	// keyW is the width of a keypad button.
	keyW = 6
	// keyGap is the space between keypad columns.
	keyGap = 1
	// Rows of the screen before the keypad.
	rowStatus  = 0
	rowToggles = 1
	rowPrev    = 3
	rowDisplay = 4
	rowKeypad  = 6
)

type key struct {
	label string
	c     panel.Control
	op    bool
}

func val(v string) key       { return key{label: v, c: panel.Control{Value: v}} }
func op(v string) key        { return key{label: v, c: panel.Control{Value: v}, op: true} }
func act(l, a string) key    { return key{label: l, c: panel.Control{Action: a}} }
func fn(name string) key     { return key{label: name, c: panel.Control{Action: "func", Fn: name}} }
func toggle(l, a string) key { return key{label: l, c: panel.Control{Action: a}, op: true} }

var toggles = []key{toggle("SCI", "sci"), toggle("HIST", "history"), toggle("THEME", "theme")}

var sciRows = [][]key{
	{fn("sin"), fn("cos"), fn("tan"), op("^")},
	{fn("log"), fn("ln"), fn("sqrt"), val("pi")},
	{val("e"), val("("), val(")")},
}

var basicRows = [][]key{
	{act("mc", "mc"), act("mr", "mr"), act("m+", "mplus"), act("m-", "mminus")},
	{act("C", "clear"), act("DEL", "back"), op("/"), op("*")},
	{val("7"), val("8"), val("9"), op("-")},
	{val("4"), val("5"), val("6"), op("+")},
	{val("1"), val("2"), val("3"), {label: "=", c: panel.Control{Action: "equals"}, op: true}},
	{val("0"), val(".")},
}

// Layout places the toggles and the keypad for a frame. The keypad grows by
// the scientific rows when f.Sci is set.
func Layout(f panel.Frame) []Button {
	var r []Button
	r = placeRow(r, toggles, rowToggles)
	y := rowKeypad
	if f.Sci {
		for _, row := range sciRows {
			r = placeRow(r, row, y)
			y += 2
		}
	}
	for _, row := range basicRows {
		r = placeRow(r, row, y)
		y += 2
	}
	return r
}

func placeRow(r []Button, row []key, y int) []Button {
	for i, k := range row {
		r = append(r, Button{
			Label:   k.label,
			Control: k.c,
			X:       i * (keyW + keyGap),
			Y:       y,
			W:       keyW,
			Op:      k.op,
		})
	}
	return r
}

// Hit returns the control of the button containing the cell x, y.
func Hit(buttons []Button, x, y int) (panel.Control, bool) {
	for _, b := range buttons {
		if b.Contains(x, y) {
			return b.Control, true
		}
	}
	return panel.Control{}, false
}

// historyRow returns the first row below the keypad.
func historyRow(buttons []Button) int {
	y := rowKeypad
	for _, b := range buttons {
		y = max(y, b.Y+2)
	}
	return y
}

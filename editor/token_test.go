package editor_test

import (
	"testing"

	"github.com/zephyrtronium/bigcalc/editor"
)

func TestValue(t *testing.T) {
	cases := []struct {
		v    string
		want editor.Token
	}{
		{"0", editor.Token{Kind: editor.Digit, Text: "0"}},
		{"9", editor.Token{Kind: editor.Digit, Text: "9"}},
		{"+", editor.Token{Kind: editor.Operator, Text: "+"}},
		{"^", editor.Token{Kind: editor.Operator, Text: "^"}},
		{".", editor.Token{Kind: editor.Point, Text: "."}},
		{"(", editor.Token{Kind: editor.Open, Text: "("}},
		{")", editor.Token{Kind: editor.Close, Text: ")"}},
		{"pi", editor.Token{Kind: editor.Constant, Text: "pi"}},
		{"e", editor.Token{Kind: editor.Constant, Text: "e"}},
		{"", editor.Token{}},
		{"10", editor.Token{}},
		{"sin", editor.Token{}},
		{"x", editor.Token{}},
		{"%", editor.Token{}},
	}
	for _, c := range cases {
		if got := editor.Value(c.v); got != c.want {
			t.Errorf("Value(%q): want %v, got %v", c.v, c.want, got)
		}
	}
}

func TestAction(t *testing.T) {
	cases := []struct {
		action, fn string
		want       editor.Token
	}{
		{"clear", "", editor.Token{Kind: editor.Clear}},
		{"back", "", editor.Token{Kind: editor.Back}},
		{"equals", "", editor.Token{Kind: editor.Equals}},
		{"func", "sqrt", editor.Token{Kind: editor.Func, Text: "sqrt"}},
		{"func", "ln", editor.Token{Kind: editor.Func, Text: "ln"}},
		{"func", "", editor.Token{}},
		{"func", "exp", editor.Token{}},
		{"mc", "", editor.Token{Kind: editor.MemClear}},
		{"mr", "", editor.Token{Kind: editor.MemRecall}},
		{"mplus", "", editor.Token{Kind: editor.MemAdd}},
		{"mminus", "", editor.Token{Kind: editor.MemSub}},
		{"clear", "sin", editor.Token{Kind: editor.Clear}},
		{"theme", "", editor.Token{}},
		{"", "", editor.Token{}},
	}
	for _, c := range cases {
		if got := editor.Action(c.action, c.fn); got != c.want {
			t.Errorf("Action(%q, %q): want %v, got %v", c.action, c.fn, c.want, got)
		}
	}
}

func TestKey(t *testing.T) {
	cases := []struct {
		key  string
		want editor.Kind
	}{
		{"7", editor.Digit},
		{"*", editor.Operator},
		{".", editor.Point},
		{"(", editor.Open},
		{")", editor.Close},
		{"Enter", editor.Equals},
		{"=", editor.Equals},
		{"Backspace", editor.Back},
		{"c", editor.Clear},
		{"C", editor.Clear},
		{"e", editor.None},
		{"pi", editor.None},
		{"Escape", editor.None},
		{"x", editor.None},
	}
	for _, c := range cases {
		if got := editor.Key(c.key).Kind; got != c.want {
			t.Errorf("Key(%q): want %v, got %v", c.key, c.want, got)
		}
	}
}

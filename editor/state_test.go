package editor_test

import (
	"math/big"
	"regexp"
	"slices"
	"testing"

	"github.com/zephyrtronium/bigcalc"
	"github.com/zephyrtronium/bigcalc/editor"
)

// input converts the name of an input as it appears on a keypad into a token.
func input(s string) editor.Token {
	if editor.IsFunction(s) {
		return editor.Action("func", s)
	}
	if tok := editor.Value(s); tok.Kind != editor.None {
		return tok
	}
	return editor.Action(s, "")
}

func run(s editor.State, ev editor.Evaluator, inputs ...string) editor.State {
	for _, in := range inputs {
		s = editor.Apply(s, input(in), ev)
	}
	return s
}

func TestApply(t *testing.T) {
	cases := []struct {
		name   string
		inputs []string
		expr   string
		last   string
		evaled bool
		hist   []string
	}{
		{"digits", []string{"1", "2", "3"}, "123", "", false, nil},
		{"leading-zero", []string{"0", "5"}, "5", "", false, nil},
		{"zeros", []string{"0", "0", "0"}, "0", "", false, nil},
		{"inner-zeros", []string{"1", "0", "0"}, "100", "", false, nil},
		{"zero-after-op", []string{"5", "*", "0", "3"}, "5*3", "", false, nil},
		{"zero-after-minus", []string{"-", "0", "7"}, "-7", "", false, nil},
		{"zero-in-paren", []string{"(", "0", "5"}, "(05", "", false, nil},
		{"zero-in-power", []string{"2", "^", "0", "5"}, "2^05", "", false, nil},
		{"zero-point", []string{"0", ".", "0", "5"}, "0.05", "", false, nil},
		{"collapse", []string{"2", "-", "+"}, "2+", "", false, nil},
		{"collapse-many", []string{"2", "*", "/", "^", "-"}, "2-", "", false, nil},
		{"lead-minus", []string{"-"}, "-", "", false, nil},
		{"lead-plus", []string{"+"}, "", "", false, nil},
		{"lead-times", []string{"*", "/", "^"}, "", "", false, nil},
		{"lone-minus-keeps", []string{"-", "+"}, "-", "", false, nil},
		{"lone-minus-minus", []string{"-", "-"}, "-", "", false, nil},
		{"paren-mul", []string{"2", "("}, "2*(", "", false, nil},
		{"pi-mul", []string{"2", "pi"}, "2*pi", "", false, nil},
		{"const-const", []string{"pi", "e"}, "pi*e", "", false, nil},
		{"close-open", []string{"(", "2", ")", "("}, "(2)*(", "", false, nil},
		{"func-mul", []string{"2", "sin"}, "2*sin(", "", false, nil},
		{"func-after-op", []string{"2", "+", "sqrt"}, "2+sqrt(", "", false, nil},
		{"open-after-op", []string{"2", "+", "("}, "2+(", "", false, nil},
		{"point-twice", []string{"1", ".", ".", "5"}, "1.5", "", false, nil},
		{"point-new-chunk", []string{"1", ".", "5", "+", "."}, "1.5+.", "", false, nil},
		{"point-after-power", []string{"1", ".", "5", "^", "2", "."}, "1.5^2.", "", false, nil},
		{"point-in-paren", []string{"1", ".", "(", "."}, "1.(.", "", false, nil},
		{"back", []string{"1", "2", "back"}, "1", "", false, nil},
		{"back-empty", []string{"back"}, "", "", false, nil},
		{"clear", []string{"1", "+", "2", "clear"}, "", "", false, nil},
		{"equals-empty", []string{"equals"}, "", "", false, nil},
		{"equals-minus", []string{"-", "equals"}, "-", "", false, nil},
		{"equals-trims", []string{"2", "+", "equals"}, "2", "2 =", true, []string{"2 = 2"}},
		{"add", []string{"2", "+", "3", "equals"}, "5", "2+3 =", true, []string{"2+3 = 5"}},
		{"degrees", []string{"sin", "9", "0", ")", "equals"}, "1", "sin(90) =", true, []string{"sin(90) = 1"}},
		{"unclosed", []string{"sin", "9", "0", "equals"}, "sin(90", "", false, nil},
		{"undefined", []string{"pi", "1", "equals"}, "pi1", "", false, nil},
		{"div-zero", []string{"1", "/", "0", "equals"}, "1/0", "", false, nil},
		{"drift", []string{"0", ".", "1", "+", "0", ".", "2", "equals"}, "0.3", "0.1+0.2 =", true, []string{"0.1+0.2 = 0.3"}},
		{"implicit-eval", []string{"2", "(", "3", ")", "equals"}, "6", "2*(3) =", true, []string{"2*(3) = 6"}},
		{"negative", []string{"-", "2", "*", "3", "equals"}, "-6", "-2*3 =", true, []string{"-2*3 = -6"}},
		{"new-entry", []string{"2", "+", "3", "equals", "7"}, "7", "", false, []string{"2+3 = 5"}},
		{"new-entry-point", []string{"2", "+", "3", "equals", "."}, ".", "", false, []string{"2+3 = 5"}},
		{"new-entry-paren", []string{"2", "+", "3", "equals", "("}, "(", "", false, []string{"2+3 = 5"}},
		{"new-entry-func", []string{"2", "+", "3", "equals", "cos"}, "cos(", "", false, []string{"2+3 = 5"}},
		{"new-entry-const", []string{"2", "+", "3", "equals", "pi"}, "pi", "", false, []string{"2+3 = 5"}},
		{"chain", []string{"2", "+", "3", "equals", "*", "2"}, "5*2", "2+3 =", false, []string{"2+3 = 5"}},
		{"chain-eval", []string{"2", "+", "3", "equals", "*", "2", "equals"}, "10", "5*2 =", true, []string{"5*2 = 10", "2+3 = 5"}},
		{"back-result", []string{"2", "+", "3", "equals", "back"}, "", "2+3 =", false, []string{"2+3 = 5"}},
		{"clear-keeps-history", []string{"2", "+", "3", "equals", "clear"}, "", "", true, []string{"2+3 = 5"}},
		{"equals-twice", []string{"2", "+", "3", "equals", "equals"}, "5", "5 =", true, []string{"5 = 5", "2+3 = 5"}},
		{"unknown", []string{"1", "%", "2"}, "12", "", false, nil},
	}
	ev := bigcalc.NewEvaluator()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := run(editor.State{}, ev, c.inputs...)
			if s.Expression != c.expr {
				t.Errorf("wrong expression: want %q, got %q", c.expr, s.Expression)
			}
			if s.LastResult != c.last {
				t.Errorf("wrong last result: want %q, got %q", c.last, s.LastResult)
			}
			if s.JustEvaluated != c.evaled {
				t.Errorf("wrong evaluated flag: want %t, got %t", c.evaled, s.JustEvaluated)
			}
			if !slices.Equal(s.History, c.hist) {
				t.Errorf("wrong history: want %q, got %q", c.hist, s.History)
			}
		})
	}
}

func TestDigitConcatenation(t *testing.T) {
	ev := bigcalc.NewEvaluator()
	digits := []string{"9", "0", "1", "8", "0", "0", "2", "7", "3", "6", "4", "5"}
	s := editor.State{}
	want := ""
	for _, d := range digits {
		s = editor.Apply(s, editor.Value(d), ev)
		want += d
		if s.Expression != want {
			t.Fatalf("want %q, got %q", want, s.Expression)
		}
	}
}

func TestOperatorCollapse(t *testing.T) {
	ev := bigcalc.NewEvaluator()
	for _, a := range editor.Operators {
		for _, b := range editor.Operators {
			base := run(editor.State{}, ev, "1", "2")
			both := run(base, ev, string(a), string(b))
			only := run(base, ev, string(b))
			if both.Expression != only.Expression {
				t.Errorf("%c then %c: want %q, got %q", a, b, only.Expression, both.Expression)
			}
		}
	}
}

func TestEqualsFailureUnchanged(t *testing.T) {
	ev := bigcalc.NewEvaluator()
	states := []editor.State{
		{},
		{Expression: "+"},
		{Expression: "-"},
		{Expression: "-*"},
		{Expression: "2+(", LastResult: "1 =", History: []string{"1 = 1"}},
		{Expression: "sqrt(0-1)", Memory: big.NewFloat(3)},
	}
	for _, s := range states {
		r := editor.Apply(s, editor.Action("equals", ""), ev)
		if r.Expression != s.Expression || r.LastResult != s.LastResult || r.JustEvaluated != s.JustEvaluated || r.Memory != s.Memory || !slices.Equal(r.History, s.History) {
			t.Errorf("equals on %+v changed state to %+v", s, r)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	ev := bigcalc.NewEvaluator()
	s := run(editor.State{}, ev, "1", "+", "1", "equals")
	for range 4 {
		s = run(s, ev, "+", "1", "equals")
	}
	want := []string{"5+1 = 6", "4+1 = 5", "3+1 = 4"}
	if !slices.Equal(s.History, want) {
		t.Errorf("want %q, got %q", want, s.History)
	}
}

func TestApplyDoesNotModify(t *testing.T) {
	ev := bigcalc.NewEvaluator()
	hist := []string{"3 = 3", "2 = 2", "1 = 1"}
	mem := big.NewFloat(7)
	s := editor.State{Expression: "4", History: slices.Clone(hist), Memory: mem}
	r := run(s, ev, "equals", "mplus", "mminus", "mplus")
	if !slices.Equal(s.History, hist) {
		t.Errorf("history modified: %q", s.History)
	}
	if mem.Cmp(big.NewFloat(7)) != 0 || s.Memory != mem {
		t.Errorf("memory modified: %v", s.Memory)
	}
	if r.History[0] != "4 = 4" || len(r.History) != editor.HistoryLen {
		t.Errorf("wrong new history: %q", r.History)
	}
	if r.Memory.Cmp(big.NewFloat(11)) != 0 {
		t.Errorf("wrong new memory: %v", r.Memory)
	}
}

func TestMemory(t *testing.T) {
	cases := []struct {
		name   string
		inputs []string
		expr   string
		mem    string // empty for no memory
	}{
		{"round-trip", []string{"2", "+", "3", "equals", "mplus", "clear", "mr"}, "5", "5"},
		{"recall-empty", []string{"2", "mr"}, "2", ""},
		{"recall-mul", []string{"5", "mplus", "clear", "2", "mr"}, "2*5", "5"},
		{"recall-after-op", []string{"5", "mplus", "clear", "2", "+", "mr"}, "2+5", "5"},
		{"recall-after-result", []string{"4", "mplus", "clear", "1", "+", "1", "equals", "mr"}, "4", "4"},
		{"recall-after-paren", []string{"4", "mplus", "clear", "(", "1", ")", "mr"}, "(1)*4", "4"},
		{"recall-negative", []string{"4", "mminus", "clear", "2", "+", "mr"}, "2+-4", "-4"},
		{"add-twice", []string{"4", "mplus", "mplus"}, "4", "8"},
		{"sub-first", []string{"2", "+", "3", "mminus"}, "2+3", "-5"},
		{"add-sub", []string{"9", "mplus", "back", "4", "mminus"}, "4", "5"},
		{"trailing-op", []string{"2", "*", "3", "+", "mplus"}, "2*3+", "6"},
		{"add-invalid", []string{"sin", "mplus"}, "sin(", "0"},
		{"add-empty", []string{"mplus"}, "", "0"},
		{"clear-memory", []string{"4", "mplus", "mc"}, "4", ""},
		{"clear-keeps", []string{"4", "mplus", "clear"}, "", "4"},
		{"fraction", []string{"1", "/", "3", "mplus", "clear", "mr", "*", "3", "equals"}, "0.99999999999999999999999999999999", "0.33333333333333333333333333333333"},
	}
	ev := bigcalc.NewEvaluator()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := run(editor.State{}, ev, c.inputs...)
			if s.Expression != c.expr {
				t.Errorf("wrong expression: want %q, got %q", c.expr, s.Expression)
			}
			switch {
			case c.mem == "" && s.Memory != nil:
				t.Errorf("memory should be empty, got %v", s.Memory)
			case c.mem != "" && s.Memory == nil:
				t.Errorf("memory should be %s, got empty", c.mem)
			case c.mem != "":
				if got := ev.Format(s.Memory); got != c.mem {
					t.Errorf("wrong memory: want %s, got %s", c.mem, got)
				}
			}
		})
	}
}

func TestCurrentValue(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"", "0"},
		{"2+3", "5"},
		{"2+3*", "5"},
		{"2^-", "2"},
		{"sin(", "0"},
		{"-", "0"},
		{"1/0", "0"},
	}
	ev := bigcalc.NewEvaluator()
	for _, c := range cases {
		if got := ev.Format(editor.CurrentValue(c.expr, ev)); got != c.want {
			t.Errorf("CurrentValue(%q): want %s, got %s", c.expr, c.want, got)
		}
	}
}

var validExpr = regexp.MustCompile(`^[0-9+\-*/^().a-zA-Z\s]*$`)

func FuzzApply(f *testing.F) {
	f.Add([]byte("2+3="))
	f.Add([]byte("s90)="))
	f.Add([]byte("0.5*0.5=MmR"))
	f.Add([]byte("--+^(p)e<<c"))
	ev := bigcalc.NewEvaluator()
	// Each byte selects one input.
	keys := []string{
		"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
		"+", "-", "*", "/", "^", ".", "(", ")", "pi", "e",
		"sin", "cos", "tan", "log", "ln", "sqrt",
		"back", "clear", "equals", "mc", "mr", "mplus", "mminus",
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		if len(b) > 64 {
			b = b[:64]
		}
		var s editor.State
		for _, c := range b {
			s = editor.Apply(s, input(keys[int(c)%len(keys)]), ev)
			if !validExpr.MatchString(s.Expression) {
				t.Fatalf("invalid expression %q", s.Expression)
			}
			if s.Expression != "" && editor.IsOperator(s.Expression[:1]) && s.Expression[0] != '-' {
				t.Fatalf("expression %q starts with an operator", s.Expression)
			}
			if len(s.History) > editor.HistoryLen {
				t.Fatalf("history too long: %q", s.History)
			}
		}
	})
}

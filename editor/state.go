package editor

import (
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigcalc"
)

// HistoryLen is the maximum number of history entries a State keeps.
const HistoryLen = 3

// Evaluator reduces expressions to values. *bigcalc.Evaluator implements it.
type Evaluator interface {
	// Evaluate evaluates an expression. Failure is a Result with no value.
	Evaluate(src string) bigcalc.Result
	// Format formats a value as a decimal string.
	Format(x *big.Float) string
}

// State is the state of an expression editor. The zero value is an empty
// editor.
type State struct {
	// Expression is the expression being edited. After a successful
	// evaluation, it is the result.
	Expression string
	// LastResult labels the last evaluation, like "2+3 =".
	LastResult string
	// JustEvaluated is whether the last input was a successful evaluation.
	JustEvaluated bool
	// Memory is the memory register, or nil if it is empty.
	Memory *big.Float
	// History holds up to HistoryLen entries like "2+3 = 5", newest first.
	History []string
}

// Apply returns the state after the input tok. s is never modified, so the
// previous state remains valid.
func Apply(s State, tok Token, ev Evaluator) State {
	switch tok.Kind {
	case Digit:
		return s.fresh().digit(tok.Text)
	case Operator:
		return s.operator(tok.Text)
	case Point:
		return s.fresh().point()
	case Open:
		s = s.fresh()
		s.Expression = implicitMul(s.Expression) + tok.Text
	case Close:
		s = s.fresh()
		s.Expression += tok.Text
	case Constant:
		s = s.fresh()
		s.Expression = implicitMul(s.Expression) + tok.Text
	case Func:
		if !IsFunction(tok.Text) {
			return s
		}
		s = s.fresh()
		s.Expression = implicitMul(s.Expression) + tok.Text + "("
	case Back:
		if s.Expression != "" {
			s.Expression = s.Expression[:len(s.Expression)-1]
		}
		s.JustEvaluated = false
	case Clear:
		s.Expression = ""
		s.LastResult = ""
	case Equals:
		return s.equals(ev)
	case MemClear:
		s.Memory = nil
	case MemRecall:
		if s.Memory == nil {
			return s
		}
		s = s.fresh()
		s.Expression = implicitMul(s.Expression) + ev.Format(s.Memory)
	case MemAdd:
		s.Memory = s.memory(CurrentValue(s.Expression, ev), false)
	case MemSub:
		s.Memory = s.memory(CurrentValue(s.Expression, ev), true)
	}
	return s
}

// fresh starts a new expression if the current one is an evaluation result.
func (s State) fresh() State {
	if s.JustEvaluated {
		s.Expression = ""
		s.LastResult = ""
		s.JustEvaluated = false
	}
	return s
}

func (s State) operator(op string) State {
	// An operator continues from a result.
	s.JustEvaluated = false
	switch {
	case s.Expression == "":
		if op == "-" {
			s.Expression = op
		}
	case IsOperator(s.Expression[len(s.Expression)-1:]):
		if s.Expression == "-" && op != "-" {
			// The only operator that can lead is unary minus.
			return s
		}
		s.Expression = s.Expression[:len(s.Expression)-1] + op
	default:
		s.Expression += op
	}
	return s
}

func (s State) point() State {
	if strings.Contains(pointChunk(s.Expression), ".") {
		return s
	}
	s.Expression += "."
	return s
}

func (s State) digit(d string) State {
	if digitChunk(s.Expression) == "0" {
		s.Expression = s.Expression[:len(s.Expression)-1] + d
		return s
	}
	s.Expression += d
	return s
}

func (s State) equals(ev Evaluator) State {
	expr := TrimOperators(s.Expression)
	if expr == "" || expr == "-" {
		return s
	}
	r := ev.Evaluate(expr)
	if !r.OK() || r.Text == "" {
		return s
	}
	s.LastResult = expr + " ="
	s.Expression = r.Text
	s.JustEvaluated = true
	s.History = pushHistory(s.History, expr+" = "+r.Text)
	return s
}

// memory returns the memory register plus or minus x as a new value.
func (s State) memory(x *big.Float, sub bool) *big.Float {
	r := new(big.Float)
	switch {
	case s.Memory == nil && sub:
		r.Neg(x)
	case s.Memory == nil:
		r.Set(x)
	case sub:
		r.Sub(s.Memory, x)
	default:
		r.Add(s.Memory, x)
	}
	return r
}

// pushHistory returns a new history with entry at the front, keeping at most
// HistoryLen entries.
func pushHistory(h []string, entry string) []string {
	n := min(len(h)+1, HistoryLen)
	r := make([]string, n)
	r[0] = entry
	copy(r[1:], h)
	return r
}

// CurrentValue evaluates expr without its trailing operators. The result is
// zero if expr is empty or does not evaluate.
func CurrentValue(expr string, ev Evaluator) *big.Float {
	if expr == "" {
		return new(big.Float)
	}
	r := ev.Evaluate(TrimOperators(expr))
	if !r.OK() {
		return new(big.Float)
	}
	return r.Value
}

package bigcalc

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

const (
	// DefaultPrec is the default working precision in bits.
	DefaultPrec = 192
	// DefaultDigits is the default number of significant decimal digits in
	// evaluation results.
	DefaultDigits = 32
)

// ErrInfinite is the error Evaluator.Eval returns for an expression whose
// value is too large to represent.
var ErrInfinite = errors.New("bigcalc: result is infinite")

// Evaluator reduces calculator expressions to decimal strings. An Evaluator
// is immutable and safe for concurrent use.
type Evaluator struct {
	prec   uint
	digits int
	parse  []ParseOption
}

// EvaluatorOption is an option used when creating an Evaluator.
type EvaluatorOption func(*Evaluator)

// Digits sets the number of significant decimal digits in results.
func Digits(n int) EvaluatorOption {
	return func(ev *Evaluator) {
		if n > 0 {
			ev.digits = n
		}
	}
}

// WorkingPrec sets the precision of calculations in bits.
func WorkingPrec(bits uint) EvaluatorOption {
	return func(ev *Evaluator) {
		if bits > 0 {
			ev.prec = bits
		}
	}
}

// Radians makes sin, cos, and tan take radians instead of degrees.
func Radians() EvaluatorOption {
	return WithParseOptions(ParseFuncs(RadianFuncs()))
}

// WithParseOptions adds options used to parse every expression.
func WithParseOptions(opts ...ParseOption) EvaluatorOption {
	return func(ev *Evaluator) {
		ev.parse = append(ev.parse, opts...)
	}
}

// NewEvaluator creates an evaluator. By default it computes with DefaultPrec
// bits and rounds results to DefaultDigits significant digits.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	ev := Evaluator{prec: DefaultPrec, digits: DefaultDigits}
	for _, opt := range opts {
		opt(&ev)
	}
	return &ev
}

// Result is the outcome of evaluating an expression: either a value with its
// decimal text, or nothing.
type Result struct {
	// Value is the result, or nil if evaluation failed.
	Value *big.Float
	// Text is Value formatted as a decimal string.
	Text string
}

// OK returns whether the evaluation produced a value.
func (r Result) OK() bool {
	return r.Value != nil
}

// Evaluate sanitizes and evaluates a calculator expression. Any failure,
// including an empty expression or one beginning with a binary operator, is
// reported as a Result with no value.
func (ev *Evaluator) Evaluate(src string) Result {
	s := Sanitize(src)
	if s == "" || strings.ContainsRune("+*/^", rune(s[0])) {
		return Result{}
	}
	v, err := ev.Eval(s)
	if err != nil {
		return Result{}
	}
	return Result{Value: v, Text: Format(v, ev.digits)}
}

// Parse parses src with the evaluator's parsing options.
func (ev *Evaluator) Parse(src string) (*Expr, error) {
	return ParseString(src, ev.parse...)
}

// Eval parses and evaluates src without sanitizing it, returning the error
// that prevented a result, if any.
func (ev *Evaluator) Eval(src string) (*big.Float, error) {
	e, err := ev.Parse(src)
	if err != nil {
		return nil, err
	}
	return ev.EvalExpr(e)
}

// EvalExpr evaluates a parsed expression.
func (ev *Evaluator) EvalExpr(e *Expr) (*big.Float, error) {
	ctx := NewContext(Prec(ev.prec))
	r := ctx.Eval(e)
	if r == nil {
		return nil, ctx.Err()
	}
	if r.IsInf() {
		return nil, ErrInfinite
	}
	return r, nil
}

// Format formats a value the evaluator produced.
func (ev *Evaluator) Format(x *big.Float) string {
	return Format(x, ev.digits)
}

// Sanitize removes every character that cannot appear in a calculator
// expression. The remaining characters are ASCII digits and letters,
// + - * / ^ ( ) . and whitespace.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case '0' <= r && r <= '9', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			return r
		case strings.ContainsRune("+-*/^().", r), unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)
}

// Format formats x as a decimal string rounded to the given number of
// significant digits, without trailing zeros. Decimal exponents from -7 to 20
// use positional notation; others use the form 1.5e+21 or 1.5e-7. Zero of
// either sign is "0".
func Format(x *big.Float, digits int) string {
	switch {
	case x.Sign() == 0:
		return "0"
	case x.IsInf():
		if x.Signbit() {
			return "-Infinity"
		}
		return "Infinity"
	}
	if digits < 1 {
		digits = 1
	}
	s := x.Text('e', digits-1)
	var b strings.Builder
	if s[0] == '-' {
		b.WriteByte('-')
		s = s[1:]
	}
	mant, es, _ := strings.Cut(s, "e")
	exp, err := strconv.Atoi(es)
	if err != nil {
		panic("bigcalc: bad exponent in " + strconv.Quote(s))
	}
	ds := strings.TrimRight(strings.Replace(mant, ".", "", 1), "0")
	switch {
	case exp >= 21 || exp <= -7:
		b.WriteByte(ds[0])
		if len(ds) > 1 {
			b.WriteByte('.')
			b.WriteString(ds[1:])
		}
		b.WriteByte('e')
		if exp >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(exp))
	case exp < 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -exp-1))
		b.WriteString(ds)
	case len(ds) <= exp+1:
		b.WriteString(ds)
		b.WriteString(strings.Repeat("0", exp+1-len(ds)))
	default:
		b.WriteString(ds[:exp+1])
		b.WriteByte('.')
		b.WriteString(ds[exp+1:])
	}
	return b.String()
}

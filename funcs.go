package bigcalc

import (
	"errors"
	"math/big"
	"math/bits"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. The function should set r to its
// result and should not use the value of r otherwise.
type Func interface {
	// Call evaluates the function. The function arguments are passed in
	// invoc, which has a length for which CanCall returned true. Call may
	// modify the elements of invoc.
	Call(ctx *Context, invoc []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// Functions that can be called with no arguments are constants: their
	// names parse without an argument list, so "pi(2)" is pi times 2.
	// Otherwise the parser requires a parenthesized argument.
	CanCall(n int) bool
}

// globalfuncs is the calculator scope.
var globalfuncs = map[string]Func{
	"ln":   Monadic(ln),
	"log":  Monadic(log10),
	"sqrt": Monadic(sqrt),

	"sin": degrees(sinOf),
	"cos": degrees(cosOf),
	"tan": degrees(tanOf),

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		// Exp works to the precision of its argument.
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	}),
}

// Funcs returns a copy of the default calculator scope.
func Funcs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

// RadianFuncs returns trigonometric functions that take radians, suitable for
// ParseFuncs to replace the default degree functions.
func RadianFuncs() map[string]Func {
	return map[string]Func{
		"sin": radians(sinOf),
		"cos": radians(cosOf),
		"tan": radians(tanOf),
	}
}

func ln(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(&DomainError{X: in})
	}
	return bigfloat.Log(out, in)
}

func log10(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(&DomainError{X: in})
	}
	bigfloat.Log(out, in)
	in.SetPrec(out.Prec()).SetInt64(10)
	bigfloat.Log(in, in)
	return out.Quo(out, in)
}

func sqrt(out, in *big.Float) *big.Float {
	if in.Sign() < 0 {
		panic(&DomainError{X: in})
	}
	return out.Sqrt(in)
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	in := invoc[0]
	if in.IsInf() {
		return &DomainError{X: in}
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = r.(error) // panic if not error
		var de *DomainError
		if errors.As(err, &de) {
			return
		}
		if errors.As(err, new(big.ErrNaN)) {
			err = &DomainError{X: in}
			return
		}
		panic(err)
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f
// is called on an argument outside f's domain, it should panic with a
// *DomainError or an error of type big.ErrNaN, or that unwraps to it.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// pow sets z to x^y. Integer exponents are computed by repeated squaring and
// allow negative bases; other exponents require a non-negative base.
func pow(z, x, y *big.Float) error {
	if x.Sign() == 0 {
		switch y.Sign() {
		case 1:
			z.SetInt64(0)
		case 0:
			z.SetInt64(1)
		default:
			return &DomainError{X: x, Arg: 1, Func: "^"}
		}
		return nil
	}
	if y.Sign() == 0 {
		z.SetInt64(1)
		return nil
	}
	integer := y.IsInt() && !y.IsInf()
	if !integer && x.Signbit() {
		return &DomainError{X: x, Arg: 1, Func: "^"}
	}
	neg := x.Signbit() && integer && odd(y)
	switch {
	case y.IsInf():
		return &DomainError{X: y, Arg: 2, Func: "^"}
	case x.IsInf():
		if y.Sign() > 0 {
			z.SetInf(neg)
		} else {
			z.SetInt64(0)
		}
		return nil
	}
	ax := new(big.Float).Abs(x)
	one := big.NewFloat(1)
	if ax.Cmp(one) == 0 {
		z.SetInt64(1)
		if neg {
			z.Neg(z)
		}
		return nil
	}
	// Results whose binary exponent is certainly outside the range of
	// big.Float are settled without computing them.
	if lg := log2Bound(ax) + y.MantExp(nil) - 1; lg > 32 {
		if (ax.Cmp(one) > 0) == (y.Sign() > 0) {
			z.SetInf(neg)
		} else {
			z.SetInt64(0)
		}
		return nil
	}
	if integer {
		n, _ := y.Int(nil)
		powInt(z, x, n, neg)
		return nil
	}
	bigfloat.Pow(z, x, y)
	return nil
}

// log2Bound returns k such that |log2(x)| >= 2^k for positive x != 1.
func log2Bound(x *big.Float) int {
	e := x.MantExp(nil)
	switch {
	case e >= 2:
		return bits.Len(uint(e-1)) - 1
	case e <= -1:
		return bits.Len(uint(-e)) - 1
	}
	// x is in [0.5, 2), where |log2(x)| >= |x-1|/2.
	d := new(big.Float).SetPrec(x.Prec()+2).Sub(x, big.NewFloat(1))
	return d.MantExp(nil) - 2
}

// odd returns whether the integer y is odd.
func odd(y *big.Float) bool {
	return y.Sign() != 0 && y.MantExp(nil) == int(y.MinPrec())
}

// powInt sets z to x^n. x must be nonzero and finite, and neg must give the
// sign of the result. Squaring stops once the result overflows or underflows.
func powInt(z, x *big.Float, n *big.Int, neg bool) {
	b := new(big.Float).SetPrec(z.Prec()).Set(x)
	r := new(big.Float).SetPrec(z.Prec()).SetInt64(1)
	k := new(big.Int).Abs(n)
	for i := k.BitLen() - 1; i >= 0; i-- {
		r.Mul(r, r)
		if k.Bit(i) != 0 {
			r.Mul(r, b)
		}
		if r.IsInf() {
			r.SetInf(neg)
			break
		}
		if r.Sign() == 0 {
			break
		}
	}
	if n.Sign() < 0 {
		switch {
		case r.IsInf():
			r.SetInt64(0)
		case r.Sign() == 0:
			r.SetInf(neg)
		default:
			r.Quo(new(big.Float).SetPrec(z.Prec()).SetInt64(1), r)
		}
	}
	z.Set(r)
}

// DomainError is an error returned when a function is called on arguments
// outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	x := "value"
	if err.X != nil {
		x = err.X.String()
	}
	r := x + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}

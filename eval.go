package bigcalc

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: DefaultPrec}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			// do nothing
		case precopt:
			ctx.prec = uint(opt)
		default:
			panic("bigcalc: unknown option type")
		}
	}
	return &ctx
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. an argument to a function is outside the function's domain, then the
// result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("bigcalc: Eval during Eval")
	}
	ctx.err = ctx.run(e.n)
	if ctx.err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// run evaluates the root node, turning arithmetic on infinities that has no
// value into a DomainError.
func (ctx *Context) run(n *node) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := r.(error); ok && errors.As(e, &nan) {
			err = &DomainError{X: new(big.Float).SetInf(false)}
			return
		}
		panic(r)
	}()
	return n.eval(ctx)
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("bigcalc: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("bigcalc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error that occurred while evaluating the last expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		r = new(big.Float).SetInf(false)
	default:
		panic("bigcalc: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
	case nodeCall:
		r := ctx.push()
		k := len(ctx.stack)
		if n.left != nil {
			if err := n.left.eval(ctx); err != nil {
				return err
			}
		}
		invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		var x *big.Float
		if len(invoc) > 0 {
			// Calls may modify their arguments, so keep the original for
			// error reporting.
			x = new(big.Float).Copy(invoc[0])
		}
		if err := n.fn.Call(ctx, invoc, r); err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				if de.X == nil {
					de.X = x
				}
				if de.Func == "" {
					de.Func = n.name
				}
			}
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeNop:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		return binary(n.kind, l, r)
	default:
		panic("bigcalc: invalid AST node " + n.kind.String())
	}
	return nil
}

// binary sets l to l op r.
func binary(op nodeKind, l, r *big.Float) error {
	switch op {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		// Division by zero has no finite value, and a calculator has no use
		// for the infinite ones.
		if r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return &DomainError{X: r, Arg: 2, Func: "/"}
		}
		l.Quo(l, r)
	case nodePow:
		return pow(l, l, r)
	default:
		panic("bigcalc: invalid binary operator " + op.String())
	}
	return nil
}

// Eval is a shortcut to parse an expression and return its result using the
// default functions.
func Eval(src string, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	a, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

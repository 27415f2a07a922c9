package bigcalc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// guardBits is the extra precision used for argument reduction and series.
const guardBits = 64

// trigFunc computes a trigonometric function from the sine and cosine of its
// argument, setting z to the result.
type trigFunc func(z, sin, cos *big.Float) error

func sinOf(z, sin, cos *big.Float) error {
	z.Set(sin)
	return nil
}

func cosOf(z, sin, cos *big.Float) error {
	z.Set(cos)
	return nil
}

func tanOf(z, sin, cos *big.Float) error {
	if cos.Sign() == 0 {
		return &DomainError{}
	}
	z.Quo(sin, cos)
	return nil
}

// maxRadianExp is the largest binary exponent of a radian argument that trig
// functions reduce. Larger arguments need pi to more bits than is practical.
const maxRadianExp = 1 << 14

type trig struct {
	f       trigFunc
	radians bool
}

func (t trig) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	x := invoc[0]
	if x.IsInf() {
		return &DomainError{X: x}
	}
	prec := ctx.Prec() + guardBits
	var q *big.Int
	var f *big.Float
	if t.radians {
		if x.MantExp(nil) > maxRadianExp {
			return &DomainError{}
		}
		q, f = reduceRadians(x, prec)
	} else {
		q, f = reduceDegrees(x, prec)
	}
	s, c := sincos(q, f, prec)
	r.SetPrec(ctx.Prec())
	return t.f(r, s, c)
}

func (t trig) CanCall(n int) bool {
	return n == 1
}

// degrees wraps a trigonometric function into a Func taking its argument in
// degrees. Multiples of 90 degrees give exact results.
func degrees(f trigFunc) Func {
	return trig{f: f}
}

// radians wraps a trigonometric function into a Func taking its argument in
// radians.
func radians(f trigFunc) Func {
	return trig{f: f, radians: true}
}

// reduceDegrees splits x degrees into a count of right angles q and a
// remainder in [0, pi/2) radians. The remainder is exactly zero when x is a
// multiple of 90. The reduction is exact for any finite x.
func reduceDegrees(x *big.Float, prec uint) (*big.Int, *big.Float) {
	var q *big.Int
	var f *big.Float
	if x.IsInt() {
		rem := new(big.Int)
		q, rem = new(big.Int).QuoRem(mod360(x), big.NewInt(90), rem)
		f = new(big.Float).SetPrec(prec).SetInt(rem)
	} else {
		// Non-integers have fewer integer bits than mantissa bits, so this
		// precision holds x - 90q exactly.
		p := prec + uint(max(0, x.MantExp(nil)))
		ninety := new(big.Float).SetPrec(p).SetInt64(90)
		q, f = quotient(x, ninety, p)
		f.SetPrec(prec)
	}
	if f.Sign() == 0 {
		return q, f
	}
	pi := bigfloat.Pi(new(big.Float).SetPrec(prec))
	f.Mul(f, pi)
	return q, f.Quo(f, new(big.Float).SetPrec(prec).SetInt64(180))
}

// mod360 returns the integer x modulo 360 in [0, 360).
func mod360(x *big.Float) *big.Int {
	// x = m * 2^k with integer m and k >= 0.
	bits := int(x.MinPrec())
	mant := new(big.Float)
	k := x.MantExp(mant) - bits
	m, _ := mant.SetMantExp(mant, bits).Int(nil)
	n := big.NewInt(360)
	r := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(k)), n)
	r.Mul(r, m)
	return r.Mod(r, n)
}

// reduceRadians splits x radians into a count of right angles q and a
// remainder in [0, pi/2). The working precision grows with the magnitude of x
// so that the remainder keeps prec bits.
func reduceRadians(x *big.Float, prec uint) (*big.Int, *big.Float) {
	p := prec + uint(max(0, x.MantExp(nil)))
	half := bigfloat.Pi(new(big.Float).SetPrec(p))
	half.Quo(half, new(big.Float).SetPrec(p).SetInt64(2))
	q, f := quotient(x, half, p)
	return q, f.SetPrec(prec)
}

// quotient computes q = floor(x/d) and f = x - q*d with 0 <= f < d, working
// at prec bits.
func quotient(x, d *big.Float, prec uint) (*big.Int, *big.Float) {
	t := new(big.Float).SetPrec(prec).Quo(x, d)
	q, _ := t.Int(nil)
	if t.Sign() < 0 && !t.IsInt() {
		q.Sub(q, big.NewInt(1))
	}
	f := new(big.Float).SetPrec(prec).SetInt(q)
	f.Mul(f, d)
	f.Sub(new(big.Float).SetPrec(prec).Set(x), f)
	// Rounding in the quotient can leave f just outside [0, d).
	switch {
	case f.Sign() < 0:
		f.Add(f, d)
		q.Sub(q, big.NewInt(1))
	case f.Cmp(d) >= 0:
		f.Sub(f, d)
		q.Add(q, big.NewInt(1))
	}
	return q, f
}

// sincos computes the sine and cosine of q right angles plus f radians.
func sincos(q *big.Int, f *big.Float, prec uint) (sin, cos *big.Float) {
	var s, c *big.Float
	if f.Sign() == 0 {
		s = new(big.Float).SetPrec(prec)
		c = new(big.Float).SetPrec(prec).SetInt64(1)
	} else {
		s = sinSeries(f, prec)
		c = cosSeries(f, prec)
	}
	switch new(big.Int).Mod(q, big.NewInt(4)).Int64() {
	case 0:
		return s, c
	case 1:
		return c, s.Neg(s)
	case 2:
		return s.Neg(s), c.Neg(c)
	default:
		return c.Neg(c), s
	}
}

// sinSeries computes sin(x) by its Taylor series. x should be small.
func sinSeries(x *big.Float, prec uint) *big.Float {
	x2 := new(big.Float).SetPrec(prec).Mul(x, x)
	term := new(big.Float).SetPrec(prec).Set(x)
	sum := new(big.Float).SetPrec(prec).Set(x)
	return series(sum, term, x2, 1, prec)
}

// cosSeries computes cos(x) by its Taylor series. x should be small.
func cosSeries(x *big.Float, prec uint) *big.Float {
	x2 := new(big.Float).SetPrec(prec).Mul(x, x)
	term := new(big.Float).SetPrec(prec).SetInt64(1)
	sum := new(big.Float).SetPrec(prec).SetInt64(1)
	return series(sum, term, x2, 0, prec)
}

// series adds terms of an alternating series in x2 to sum until they no
// longer affect it. Each term is the previous times -x2/((k+1)(k+2)), with k
// starting at odd and stepping by 2.
func series(sum, term, x2 *big.Float, odd int64, prec uint) *big.Float {
	d := new(big.Float).SetPrec(prec)
	for k := odd; ; k += 2 {
		term.Mul(term, x2)
		d.SetInt64((k + 1) * (k + 2))
		term.Quo(term, d)
		term.Neg(term)
		if term.Sign() == 0 || term.MantExp(nil) < sum.MantExp(nil)-int(prec) {
			return sum
		}
		sum.Add(sum, term)
	}
}

package numeric

import (
	"math"
	"math/big"
)

// Precision fixes the mantissa size of a Big backend at compile time.
type Precision interface {
	Bits() uint
}

// Prec32 is a 32-bit mantissa.
type Prec32 struct{}

func (Prec32) Bits() uint { return 32 }

// Prec64 is a 64-bit mantissa.
type Prec64 struct{}

func (Prec64) Bits() uint { return 64 }

// Prec113 matches the significand of IEEE-754 binary128.
type Prec113 struct{}

func (Prec113) Bits() uint { return 113 }

// Big is an arbitrary precision backend over math/big.Float with a mantissa
// of P.Bits() bits, rounding to nearest even.
//
// math/big panics on operations without a defined result (0/0, Inf/Inf,
// Inf-Inf, 0*Inf). Big records those as NaN instead, and NaN propagates
// through every later operation.
type Big[P Precision] struct {
	f   big.Float
	nan bool
}

type (
	Big32  = Big[Prec32]
	Big64  = Big[Prec64]
	Big113 = Big[Prec113]
)

func (z *Big[P]) prec() uint {
	var p P
	return p.Bits()
}

// dst prepares z as an operation destination.
func (z *Big[P]) dst() *big.Float {
	z.nan = false
	return z.f.SetPrec(z.prec())
}

func (z *Big[P]) setNaN() *Big[P] {
	z.dst().SetInt64(0)
	z.nan = true
	return z
}

// apply runs op on z's float, turning a big.ErrNaN panic into NaN. It
// returns z in both cases.
func (z *Big[P]) apply(op func(f *big.Float)) (r *Big[P]) {
	r = z
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(big.ErrNaN); !ok {
				panic(rec)
			}
			z.setNaN()
		}
	}()
	op(z.dst())
	return z
}

func (z *Big[P]) Set(x *Big[P]) *Big[P] {
	if x.nan {
		return z.setNaN()
	}
	z.dst().Set(&x.f)
	return z
}

func (z *Big[P]) SetInt64(v int64) *Big[P] {
	z.dst().SetInt64(v)
	return z
}

func (z *Big[P]) SetZero() *Big[P] {
	return z.SetInt64(0)
}

func (z *Big[P]) SetOne() *Big[P] {
	return z.SetInt64(1)
}

func (z *Big[P]) Add(x, y *Big[P]) *Big[P] {
	if x.nan || y.nan {
		return z.setNaN()
	}
	return z.apply(func(f *big.Float) { f.Add(&x.f, &y.f) })
}

func (z *Big[P]) Sub(x, y *Big[P]) *Big[P] {
	if x.nan || y.nan {
		return z.setNaN()
	}
	return z.apply(func(f *big.Float) { f.Sub(&x.f, &y.f) })
}

func (z *Big[P]) Mul(x, y *Big[P]) *Big[P] {
	if x.nan || y.nan {
		return z.setNaN()
	}
	return z.apply(func(f *big.Float) { f.Mul(&x.f, &y.f) })
}

func (z *Big[P]) Quo(x, y *Big[P]) *Big[P] {
	if x.nan || y.nan {
		return z.setNaN()
	}
	return z.apply(func(f *big.Float) { f.Quo(&x.f, &y.f) })
}

// MulQuo computes x*mul exactly and rounds once, in the division.
func (z *Big[P]) MulQuo(x, mul, div *Big[P]) *Big[P] {
	if x.nan || mul.nan || div.nan {
		return z.setNaN()
	}
	// A product of an a-bit and a b-bit mantissa fits in a+b bits.
	var prod big.Float
	prod.SetPrec(x.f.Prec() + mul.f.Prec())
	return z.apply(func(f *big.Float) {
		prod.Mul(&x.f, &mul.f)
		f.Quo(&prod, &div.f)
	})
}

// Pow uses square-and-multiply, rounding after every product. The result can
// differ in the last bits from both repeated multiplication and a correctly
// rounded power.
func (z *Big[P]) Pow(x *Big[P], n uint32) *Big[P] {
	if x.nan {
		return z.setNaN()
	}
	var base, acc Big[P]
	base.Set(x)
	acc.SetOne()
	for n > 0 {
		if n&1 == 1 {
			acc.Mul(&acc, &base)
		}
		n >>= 1
		if n > 0 {
			base.Mul(&base, &base)
		}
	}
	return z.Set(&acc)
}

func (z *Big[P]) Cmp(y *Big[P]) int {
	if z.nan || y.nan {
		return 0
	}
	return z.f.Cmp(&y.f)
}

// Log2 splits z into mantissa and exponent so that values far outside the
// float64 range still produce a finite logarithm.
func (z *Big[P]) Log2() float64 {
	switch {
	case z.nan:
		return math.NaN()
	case z.f.Sign() < 0:
		return math.NaN()
	case z.f.IsInf():
		return math.Inf(1)
	case z.f.Sign() == 0:
		return math.Inf(-1)
	}
	var mant big.Float
	exp := z.f.MantExp(&mant)
	m, _ := mant.Float64()
	return float64(exp) + math.Log2(m)
}

func (z *Big[P]) Float64() float64 {
	if z.nan {
		return math.NaN()
	}
	v, _ := z.f.Float64()
	return v
}

func (z *Big[P]) IsNaN() bool {
	return z.nan
}

func (z *Big[P]) IsZero() bool {
	return !z.nan && z.f.Sign() == 0
}

func (z *Big[P]) String() string {
	if z.nan {
		return "NaN"
	}
	return z.f.Text('g', 20)
}

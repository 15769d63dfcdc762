package numeric

import (
	"math"
	"strconv"
)

// F64 is the inexact backend over IEEE-754 double precision. Products and
// quotients underflow to zero well before the arbitrary precision backends
// do, so it is mostly useful as a fast cross-check.
type F64 float64

func (z *F64) Set(x *F64) *F64 {
	*z = *x
	return z
}

func (z *F64) SetInt64(v int64) *F64 {
	*z = F64(v)
	return z
}

func (z *F64) SetZero() *F64 {
	*z = 0
	return z
}

func (z *F64) SetOne() *F64 {
	*z = 1
	return z
}

func (z *F64) Add(x, y *F64) *F64 {
	*z = *x + *y
	return z
}

func (z *F64) Sub(x, y *F64) *F64 {
	*z = *x - *y
	return z
}

func (z *F64) Mul(x, y *F64) *F64 {
	*z = *x * *y
	return z
}

func (z *F64) Quo(x, y *F64) *F64 {
	*z = *x / *y
	return z
}

// MulQuo is not fused: the quotient mul/div is rounded before it scales x.
func (z *F64) MulQuo(x, mul, div *F64) *F64 {
	*z = *x * (*mul / *div)
	return z
}

// Pow delegates to math.Pow, not repeated multiplication.
func (z *F64) Pow(x *F64, n uint32) *F64 {
	*z = F64(math.Pow(float64(*x), float64(n)))
	return z
}

func (z *F64) Cmp(y *F64) int {
	switch {
	case *z < *y:
		return -1
	case *z > *y:
		return 1
	}
	return 0
}

func (z *F64) Log2() float64 {
	return math.Log2(float64(*z))
}

func (z *F64) Float64() float64 {
	return float64(*z)
}

func (z *F64) IsNaN() bool {
	return math.IsNaN(float64(*z))
}

func (z *F64) IsZero() bool {
	return *z == 0
}

func (z *F64) String() string {
	return strconv.FormatFloat(float64(*z), 'g', -1, 64)
}

// Package numeric defines the high-precision real number abstraction used by
// the attack cost estimator, together with its concrete backends.
//
// A backend is a value type T whose pointer *T implements Float[T]. Methods
// follow the math/big convention: the receiver is the destination, operands
// are read-only, and the receiver is returned so calls can be chained:
//
//	z := numeric.FromInt64[numeric.Big64](10)
//	z.MulQuo(z, numeric.FromInt64[numeric.Big64](9), numeric.FromInt64[numeric.Big64](2))
//
// The receiver may alias any operand. Values must not be copied once they
// have been used; pass them around as pointers.
package numeric

// Float is the capability set of a numeric backend.
type Float[T any] interface {
	*T

	// Set sets z to x and returns z.
	Set(x *T) *T
	// SetInt64 sets z to v, rounded to the backend precision.
	SetInt64(v int64) *T
	SetZero() *T
	SetOne() *T

	Add(x, y *T) *T
	Sub(x, y *T) *T
	Mul(x, y *T) *T
	Quo(x, y *T) *T

	// MulQuo sets z to x*mul/div. Backends that can avoid rounding the
	// intermediate product must do so.
	MulQuo(x, mul, div *T) *T

	// Pow sets z to x**n, with Pow(x, 0) == 1. Backends may round
	// intermediate products differently from repeated multiplication.
	Pow(x *T, n uint32) *T

	// Cmp compares z and y. The result is undefined if either is NaN.
	Cmp(y *T) int

	// Log2 returns the base-2 logarithm of z as a float64. This is the only
	// operation that discards precision.
	Log2() float64
	Float64() float64
	IsNaN() bool
	IsZero() bool
	String() string
}

// New returns a fresh zero value of backend T.
func New[T any, PT Float[T]]() PT {
	z := PT(new(T))
	z.SetZero()
	return z
}

// One returns a fresh value equal to one.
func One[T any, PT Float[T]]() PT {
	z := PT(new(T))
	z.SetOne()
	return z
}

// FromInt64 returns a fresh value equal to v.
func FromInt64[T any, PT Float[T]](v int64) PT {
	z := PT(new(T))
	z.SetInt64(v)
	return z
}

// Clone returns a fresh copy of x.
func Clone[T any, PT Float[T]](x PT) PT {
	z := PT(new(T))
	z.Set(x)
	return z
}

// Sum adds xs left to right starting from zero. Floating point addition is
// not associative, so the order is part of the result.
func Sum[T any, PT Float[T]](xs []PT) PT {
	z := New[T, PT]()
	for _, x := range xs {
		z.Add(z, x)
	}
	return z
}

package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkArithmetic[T any, PT Float[T]](t *testing.T) {
	t.Helper()

	x := FromInt64[T, PT](12)
	y := FromInt64[T, PT](4)

	assert.Equal(t, 16.0, PT(New[T, PT]().Add(x, y)).Float64())
	assert.Equal(t, 8.0, PT(New[T, PT]().Sub(x, y)).Float64())
	assert.Equal(t, 48.0, PT(New[T, PT]().Mul(x, y)).Float64())
	assert.Equal(t, 3.0, PT(New[T, PT]().Quo(x, y)).Float64())
	assert.Equal(t, 36.0, PT(New[T, PT]().MulQuo(x, FromInt64[T, PT](12), y)).Float64())

	// receiver aliasing an operand
	z := Clone[T, PT](x)
	z.Add(z, z)
	assert.Equal(t, 24.0, z.Float64())
	assert.Equal(t, 12.0, x.Float64(), "Clone must not share state")

	assert.Equal(t, 1024.0, PT(New[T, PT]().Pow(FromInt64[T, PT](2), 10)).Float64())
	assert.Equal(t, 1.0, PT(New[T, PT]().Pow(FromInt64[T, PT](7), 0)).Float64())

	assert.Equal(t, -1, y.Cmp(x))
	assert.Equal(t, 1, x.Cmp(y))
	assert.Equal(t, 0, x.Cmp(FromInt64[T, PT](12)))

	assert.True(t, New[T, PT]().IsZero())
	assert.False(t, One[T, PT]().IsZero())
}

func checkLog2[T any, PT Float[T]](t *testing.T) {
	t.Helper()

	assert.Equal(t, 3.0, FromInt64[T, PT](8).Log2())
	assert.Equal(t, 0.0, One[T, PT]().Log2())
	assert.InDelta(t, math.Log2(10), FromInt64[T, PT](10).Log2(), 1e-9)
	assert.True(t, math.IsInf(New[T, PT]().Log2(), -1))

	tiny := One[T, PT]()
	tiny.Quo(tiny, New[T, PT]().Pow(FromInt64[T, PT](2), 100))
	assert.InDelta(t, -100.0, tiny.Log2(), 1e-9)
}

func checkNaN[T any, PT Float[T]](t *testing.T) {
	t.Helper()

	zero := New[T, PT]()
	nan := PT(New[T, PT]().Quo(zero, zero))
	require.True(t, nan.IsNaN(), "0/0 must be NaN")
	assert.False(t, nan.IsZero())
	assert.True(t, math.IsNaN(nan.Log2()))

	// the receiver comes back even when the result is NaN
	z := New[T, PT]()
	assert.True(t, PT(z.Quo(zero, zero)) == z)

	// NaN propagates through every later operation
	assert.True(t, PT(New[T, PT]().Add(nan, One[T, PT]())).IsNaN())
	assert.True(t, PT(New[T, PT]().Mul(One[T, PT](), nan)).IsNaN())
	assert.True(t, PT(New[T, PT]().MulQuo(One[T, PT](), nan, One[T, PT]())).IsNaN())

	// and is cleared by assignment
	nan.SetOne()
	assert.False(t, nan.IsNaN())
	assert.Equal(t, 1.0, nan.Float64())

	inf := PT(New[T, PT]().Quo(One[T, PT](), zero))
	assert.False(t, inf.IsNaN(), "x/0 with x != 0 is an infinity, not NaN")
	assert.True(t, math.IsInf(inf.Log2(), 1))
}

func checkSum[T any, PT Float[T]](t *testing.T) {
	t.Helper()

	xs := []PT{FromInt64[T, PT](1), FromInt64[T, PT](2), FromInt64[T, PT](3)}
	assert.Equal(t, 6.0, Sum[T, PT](xs).Float64())
	assert.True(t, Sum[T, PT](nil).IsZero())
}

func TestF64(t *testing.T) {
	checkArithmetic[F64](t)
	checkLog2[F64](t)
	checkNaN[F64](t)
	checkSum[F64](t)
}

func TestBig32(t *testing.T) {
	checkArithmetic[Big32](t)
	checkLog2[Big32](t)
	checkNaN[Big32](t)
	checkSum[Big32](t)
}

func TestBig64(t *testing.T) {
	checkArithmetic[Big64](t)
	checkLog2[Big64](t)
	checkNaN[Big64](t)
	checkSum[Big64](t)
}

func TestBig113(t *testing.T) {
	checkArithmetic[Big113](t)
	checkLog2[Big113](t)
	checkNaN[Big113](t)
	checkSum[Big113](t)
}

func TestBigLog2BeyondFloat64Range(t *testing.T) {
	x := FromInt64[Big64](2)
	x.Pow(x, 3000)
	assert.True(t, math.IsInf(x.Float64(), 1))
	assert.Equal(t, 3000.0, x.Log2())

	x.Quo(One[Big64](), x)
	assert.Equal(t, 0.0, x.Float64())
	assert.Equal(t, -3000.0, x.Log2())
}

func TestBigMulQuoKeepsProduct(t *testing.T) {
	// (2^62+1)*5 needs 65 bits; the product must survive until the division.
	v := int64(1<<62 + 1)
	x := FromInt64[Big64](v)
	x.MulQuo(x, FromInt64[Big64](5), FromInt64[Big64](5))
	assert.Equal(t, 0, x.Cmp(FromInt64[Big64](v)))

	y := FromInt64[Big32](7)
	y.MulQuo(y, FromInt64[Big32](5), FromInt64[Big32](7))
	assert.Equal(t, 5.0, y.Float64())
}

func TestBigUndefinedResultsChain(t *testing.T) {
	zero := New[Big64]()
	inf := New[Big64]().Quo(One[Big64](), zero)
	require.False(t, inf.IsNaN())
	negInf := New[Big64]().Sub(zero, inf)

	undefined := map[string]func(z *Big64) *Big64{
		"0/0":      func(z *Big64) *Big64 { return z.Quo(zero, zero) },
		"0*Inf":    func(z *Big64) *Big64 { return z.Mul(zero, inf) },
		"Inf-Inf":  func(z *Big64) *Big64 { return z.Sub(inf, inf) },
		"Inf+-Inf": func(z *Big64) *Big64 { return z.Add(inf, negInf) },
		"0*1/0":    func(z *Big64) *Big64 { return z.MulQuo(zero, One[Big64](), zero) },
	}
	for name, op := range undefined {
		op := op
		t.Run(name, func(t *testing.T) {
			z := New[Big64]()
			got := op(z)
			require.NotNil(t, got)
			assert.Same(t, z, got)
			assert.True(t, got.IsNaN())

			// calls chained off the NaN result
			assert.True(t, op(New[Big64]()).IsNaN())
			assert.Equal(t, 2.0, op(New[Big64]()).Add(One[Big64](), One[Big64]()).Float64())
			assert.True(t, New[Big64]().Add(op(New[Big64]()), One[Big64]()).IsNaN())
		})
	}
}

func TestBigPowAgainstRepeatedProduct(t *testing.T) {
	// 3^41 needs 65 bits: exact on Big113, rounded on Big32
	exact := New[Big113]().Pow(FromInt64[Big113](3), 41)
	loop := One[Big113]()
	for i := 0; i < 41; i++ {
		loop.Mul(loop, FromInt64[Big113](3))
	}
	assert.Equal(t, 0, exact.Cmp(loop))

	pow := New[Big32]().Pow(FromInt64[Big32](3), 41)
	rep := One[Big32]()
	for i := 0; i < 41; i++ {
		rep.Mul(rep, FromInt64[Big32](3))
	}
	assert.InDelta(t, exact.Log2(), pow.Log2(), 1e-8)
	assert.InDelta(t, exact.Log2(), rep.Log2(), 1e-8)
}

func TestBigPrecision(t *testing.T) {
	// 2^40+1 needs 41 bits of mantissa
	v := int64(1<<40 + 1)
	assert.NotEqual(t, float64(v), FromInt64[Big32](v).Float64())
	assert.Equal(t, float64(v), FromInt64[Big64](v).Float64())
}

func TestParseBackend(t *testing.T) {
	for _, b := range Backends {
		got, err := ParseBackend(" " + string(b) + " ")
		require.NoError(t, err)
		assert.Equal(t, b, got)
		assert.NotZero(t, got.PrecisionBits())
	}

	got, err := ParseBackend("BIG113")
	require.NoError(t, err)
	assert.Equal(t, BackendBig113, got)

	_, err = ParseBackend("f128")
	assert.Error(t, err)
	assert.Equal(t, BackendBig64, DefaultBackend)
}

package crossattack

import (
	"github.com/mahdiidarabi/cross-attack-cost/pkg/numeric"
)

// Binom returns the binomial coefficient C(n, k), or zero when k < 0 or k > n.
//
// The product is built one factor at a time: multiply by the next descending
// factor of n and divide by the next ascending factor of k in a single MulQuo.
// Both factors are kept as running numbers instead of being rebuilt from
// integers on every step.
func Binom[T any, PT numeric.Float[T]](n, k int64) PT {
	r := numeric.New[T, PT]()
	if k < 0 || k > n {
		return r
	}
	if n-k < k {
		k = n - k
	}

	r.SetOne()
	num := numeric.FromInt64[T, PT](n)
	den := numeric.One[T, PT]()
	one := numeric.One[T, PT]()
	for i := int64(0); i < k; i++ {
		r.MulQuo(r, num, den)
		num.Sub(num, one)
		den.Add(den, one)
	}
	return r
}

// binomTable holds C(n, k) for every n up to maxN. Row n is built by the
// same MulQuo sequence Binom runs, recording each intermediate, so every
// entry is bit-identical to the direct Binom result. A table is immutable
// once built and may be shared between goroutines.
type binomTable[T any, PT numeric.Float[T]] struct {
	rows [][]PT
	zero PT
}

func newBinomTable[T any, PT numeric.Float[T]](maxN int64) *binomTable[T, PT] {
	if maxN < 0 {
		maxN = 0
	}
	tab := &binomTable[T, PT]{
		rows: make([][]PT, maxN+1),
		zero: numeric.New[T, PT](),
	}

	one := numeric.One[T, PT]()
	for n := int64(0); n <= maxN; n++ {
		row := make([]PT, n/2+1)
		r := numeric.One[T, PT]()
		num := numeric.FromInt64[T, PT](n)
		den := numeric.One[T, PT]()
		row[0] = numeric.Clone[T, PT](r)
		for k := int64(1); k <= n/2; k++ {
			r.MulQuo(r, num, den)
			num.Sub(num, one)
			den.Add(den, one)
			row[k] = numeric.Clone[T, PT](r)
		}
		tab.rows[n] = row
	}
	return tab
}

func (b *binomTable[T, PT]) get(n, k int64) PT {
	if k < 0 || k > n {
		return b.zero
	}
	if n-k < k {
		k = n - k
	}
	if n >= int64(len(b.rows)) {
		return Binom[T, PT](n, k)
	}
	return b.rows[n][k]
}

package crossattack

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mahdiidarabi/cross-attack-cost/pkg/numeric"
)

// DegenerateEvent is emitted when a probability ratio evaluates to 0/0 and
// is clamped to zero.
type DegenerateEvent struct {
	Func string // ProbB or ProbBNew
	T    int64
	TS   int64
	W    int64
	P    int64
}

// Engine evaluates the success probabilities of both attack models on the
// numeric backend T. An Engine is safe for concurrent use. Binomial tables
// are built once per t and shared read-only; everything else a call computes
// is its own.
type Engine[T any, PT numeric.Float[T]] struct {
	log          *zerolog.Logger
	onDegenerate func(DegenerateEvent)
	mu           sync.Mutex

	tablesMu sync.Mutex
	tables   map[int64]*binomTable[T, PT]
}

// NewEngine creates an engine reporting to log and onDegenerate, either of
// which may be nil.
func NewEngine[T any, PT numeric.Float[T]](log *zerolog.Logger, onDegenerate func(DegenerateEvent)) *Engine[T, PT] {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Engine[T, PT]{
		log:          log,
		onDegenerate: onDegenerate,
		tables:       make(map[int64]*binomTable[T, PT]),
	}
}

// table returns the binomial table covering every C(n, k) with n <= t.
func (e *Engine[T, PT]) table(t int64) *binomTable[T, PT] {
	e.tablesMu.Lock()
	defer e.tablesMu.Unlock()
	if tab, ok := e.tables[t]; ok {
		return tab
	}
	tab := newBinomTable[T, PT](t)
	e.tables[t] = tab
	return tab
}

func (e *Engine[T, PT]) degenerate(ev DegenerateEvent) {
	e.log.Warn().
		Str("func", ev.Func).
		Int64("t", ev.T).
		Int64("ts", ev.TS).
		Int64("w", ev.W).
		Int64("p", ev.P).
		Msg("Probability ratio is 0/0, clamping to zero")

	if e.onDegenerate == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onDegenerate(ev)
}

// roundWeights holds the Binomial(t, 1/(p-1)) point masses for j in [from, t].
type roundWeights[T any, PT numeric.Float[T]] struct {
	from  int64
	terms []PT
}

func (w *roundWeights[T, PT]) at(j int64) PT {
	return w.terms[j-w.from]
}

// newRoundWeights computes C(t,j) * q^j * (1-q)^(t-j) with q = 1/(p-1) for
// every j from max(ts, 0) to t.
func newRoundWeights[T any, PT numeric.Float[T]](tab *binomTable[T, PT], t, ts, p int64) *roundWeights[T, PT] {
	from := max(ts, 0)
	w := &roundWeights[T, PT]{from: from}
	if from > t {
		return w
	}

	q := numeric.One[T, PT]()
	q.Quo(q, numeric.FromInt64[T, PT](p-1))
	notQ := numeric.One[T, PT]()
	notQ.Sub(notQ, q)

	w.terms = make([]PT, 0, t-from+1)
	qPow := numeric.New[T, PT]()
	notQPow := numeric.New[T, PT]()
	for j := from; j <= t; j++ {
		term := numeric.Clone[T, PT](tab.get(t, j))
		term.Mul(term, qPow.Pow(q, uint32(j)))
		term.Mul(term, notQPow.Pow(notQ, uint32(t-j)))
		w.terms = append(w.terms, term)
	}
	return w
}

// ProbBeta returns P(X >= ts) for X ~ Binomial(t, 1/(p-1)). It is zero when
// ts > t and the full mass when ts <= 0. Requires p > 1.
func (e *Engine[T, PT]) ProbBeta(t, ts, p int64) PT {
	tab := e.table(t)
	return numeric.Sum[T, PT](newRoundWeights(tab, t, ts, p).terms)
}

// ProbB returns the probability of a weight-w collision given that at least
// ts of the t rounds succeed:
//
//	sum_{j=ts}^{t} C(t,j) q^j (1-q)^(t-j) * inner(j) / ProbBeta(t, ts, p)
//	inner(j) = sum_{ws} C(j,ws)^2 * C(t-j, w-ws) / C(t,w)^2
//
// with ws ranging over [max(0, j-(t-w)), min(j, w)]. A 0/0 ratio is reported
// as a DegenerateEvent and yields zero.
func (e *Engine[T, PT]) ProbB(t, ts, w, p int64) PT {
	tab := e.table(t)
	weights := newRoundWeights(tab, t, ts, p)

	binomTW2 := numeric.New[T, PT]()
	binomTW2.Pow(tab.get(t, w), 2)

	sum := numeric.New[T, PT]()
	inner := numeric.New[T, PT]()
	term := numeric.New[T, PT]()
	for j := weights.from; j <= t; j++ {
		inner.SetZero()
		for ws := max(0, j-(t-w)); ws <= min(j, w); ws++ {
			term.Pow(tab.get(j, ws), 2)
			term.Mul(term, tab.get(t-j, w-ws))
			inner.Add(inner, term)
		}
		term.Mul(weights.at(j), inner)
		term.Quo(term, binomTW2)
		sum.Add(sum, term)
	}

	sum.Quo(sum, numeric.Sum[T, PT](weights.terms))
	if sum.IsNaN() {
		e.degenerate(DegenerateEvent{Func: "ProbB", T: t, TS: ts, W: w, P: p})
		sum.SetZero()
	}
	return sum
}

// ProbBNew evaluates the revised model. It searches the auxiliary weight aa
// over [w, t] for the maximum of
//
//	sum_{j=ts}^{t} C(t,j) q^j (1-q)^(t-j) * sum_{ws} C(t-j,ws) C(j,aa-ws) C(j,w-ws) / C(t,aa)
//
// and returns that aa together with the maximum normalized by
// ProbBeta(t, ts, p) * C(t, w). On exact ties the largest aa wins.
//
// The ws range is [max(0, aa-j), min(t-j, w)]; larger ws only add zero terms
// because C(j, w-ws) vanishes.
func (e *Engine[T, PT]) ProbBNew(t, ts, w, p int64) (int64, PT) {
	tab := e.table(t)
	weights := newRoundWeights(tab, t, ts, p)

	var best PT
	bestAA := w
	inner := numeric.New[T, PT]()
	term := numeric.New[T, PT]()
	for aa := w; aa <= t; aa++ {
		acc := numeric.New[T, PT]()
		for j := weights.from; j <= t; j++ {
			inner.SetZero()
			for ws := max(0, aa-j); ws <= min(t-j, w); ws++ {
				term.Mul(tab.get(t-j, ws), tab.get(j, aa-ws))
				term.Mul(term, tab.get(j, w-ws))
				inner.Add(inner, term)
			}
			term.Mul(weights.at(j), inner)
			acc.Add(acc, term)
		}
		acc.Quo(acc, tab.get(t, aa))

		if acc.IsNaN() {
			continue
		}
		if best == nil || acc.Cmp(best) >= 0 {
			best, bestAA = acc, aa
		}
	}

	prob := numeric.New[T, PT]()
	if best != nil {
		norm := numeric.Sum[T, PT](weights.terms)
		norm.Mul(norm, tab.get(t, w))
		prob.Quo(best, norm)
	}
	if best == nil || prob.IsNaN() {
		e.degenerate(DegenerateEvent{Func: "ProbBNew", T: t, TS: ts, W: w, P: p})
		prob.SetZero()
	}
	return bestAA, prob
}

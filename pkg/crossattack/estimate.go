package crossattack

import (
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mahdiidarabi/cross-attack-cost/pkg/numeric"
)

// Options configures a threshold search. The zero value is quiet: no
// logging, no progress, no degenerate-result callback.
type Options struct {
	Logger   *zerolog.Logger
	Progress ProgressSink

	// OnDegenerate is called for every probability clamped from 0/0 to zero.
	// Calls are serialized.
	OnDegenerate func(DegenerateEvent)
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// EstimateAttack finds the threshold ts in [0, t] minimizing
// 1/ProbBeta + 1/ProbB and returns it with log2 of the minimal cost.
func EstimateAttack[T any, PT numeric.Float[T]](exec Executor, params Params, opts Options) (Result, error) {
	return Search[T, PT](exec, params, OriginalModel[T, PT]{}, opts)
}

// EstimateAttackNew is EstimateAttack driven by the revised model. The
// result also carries the winning auxiliary weight.
func EstimateAttackNew[T any, PT numeric.Float[T]](exec Executor, params Params, opts Options) (Result, error) {
	return Search[T, PT](exec, params, RevisedModel[T, PT]{}, opts)
}

// unit is the evaluation of a single threshold.
type unit[T any, PT numeric.Float[T]] struct {
	aux       int64
	cost      PT
	unbounded bool
}

// Search evaluates model at every threshold ts in [0, t] on exec and reduces
// the costs to their minimum.
//
// Each threshold is an independent unit owning its numbers, so exec may run
// them in any order. The reduction runs afterwards over the ts-ordered
// results and keeps the smallest ts on exact ties, which makes the result
// independent of the executor's parallelism.
//
// Args:
//   - exec: Executor running the units (nil = Sequential)
//   - params: Protocol parameters, validated before any work starts
//   - model: Attack model providing the second-phase probability
//   - opts: Logging, progress and degenerate-result hooks
//
// Returns:
//   - Result for the optimal threshold, or a *DomainError for invalid params
func Search[T any, PT numeric.Float[T]](exec Executor, params Params, model AttackModel[T, PT], opts Options) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	if exec == nil {
		exec = Sequential{}
	}

	log := opts.logger()
	engine := NewEngine[T, PT](log, opts.OnDegenerate)

	n := int(params.T) + 1
	units := make([]unit[T, PT], n)
	progress := newProgressCounter(opts.Progress, n)

	log.Debug().Str("model", model.Name()).Str("params", params.String()).Int("units", n).Msg("Starting threshold search")

	err := exec.Map(n, func(i int) error {
		ts := int64(i)
		beta := engine.ProbBeta(params.T, ts, params.P)
		aux, prob := model.Evaluate(engine, params.T, ts, params.W, params.P)
		units[i] = newUnit[T, PT](aux, beta, prob)
		progress.complete()
		return nil
	})
	if err != nil {
		return Result{}, errors.Wrapf(err, "%s threshold search", model.Name())
	}

	res := reduce(units)
	res.Model = model.Name()
	res.Params = params

	log.Debug().
		Str("model", res.Model).
		Int64("ts", res.ThresholdStar).
		Float64("bits", res.Bits).
		Int("degenerate_units", res.DegenerateUnits).
		Msg("Threshold search finished")
	return res, nil
}

// newUnit computes 1/beta + 1/prob. A zero probability makes the cost
// unbounded rather than infinite, so it orders after every bounded cost.
func newUnit[T any, PT numeric.Float[T]](aux int64, beta, prob PT) unit[T, PT] {
	u := unit[T, PT]{aux: aux}
	if beta.IsZero() || prob.IsZero() || beta.IsNaN() || prob.IsNaN() {
		u.unbounded = true
		return u
	}

	cost := numeric.One[T, PT]()
	cost.Quo(cost, beta)
	inv := numeric.One[T, PT]()
	inv.Quo(inv, prob)
	cost.Add(cost, inv)

	// Subnormal probabilities overflow the reciprocal on fixed-format backends.
	if cost.IsNaN() || math.IsInf(cost.Log2(), 1) {
		u.unbounded = true
		return u
	}
	u.cost = cost
	return u
}

func reduce[T any, PT numeric.Float[T]](units []unit[T, PT]) Result {
	var res Result
	best := -1
	for i, u := range units {
		if u.unbounded {
			res.DegenerateUnits++
			continue
		}
		if best < 0 || u.cost.Cmp(units[best].cost) < 0 {
			best = i
		}
	}

	if best < 0 {
		res.Degenerate = true
		res.Bits = math.MaxFloat64
		return res
	}
	res.ThresholdStar = int64(best)
	res.AuxiliaryStar = units[best].aux
	res.Bits = units[best].cost.Log2()
	return res
}

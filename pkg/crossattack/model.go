package crossattack

import (
	"github.com/mahdiidarabi/cross-attack-cost/pkg/numeric"
)

// Model names used in results and progress output.
const (
	ModelOriginal = "original"
	ModelRevised  = "revised"
)

// AttackModel defines the second-phase success probability an attack is
// built on. Implement this interface to plug a different model into the
// threshold search.
type AttackModel[T any, PT numeric.Float[T]] interface {
	// Evaluate returns the probability that the second phase succeeds once
	// at least ts of the t rounds have been won, along with the auxiliary
	// parameter it was maximized over (if any).
	Evaluate(e *Engine[T, PT], t, ts, w, p int64) (aux int64, prob PT)

	// Name returns a human-readable name for this model.
	Name() string
}

// OriginalModel is the fixed-weight collision model (ProbB).
type OriginalModel[T any, PT numeric.Float[T]] struct{}

func (OriginalModel[T, PT]) Evaluate(e *Engine[T, PT], t, ts, w, p int64) (int64, PT) {
	return 0, e.ProbB(t, ts, w, p)
}

func (OriginalModel[T, PT]) Name() string {
	return ModelOriginal
}

// RevisedModel additionally optimizes the auxiliary weight (ProbBNew).
type RevisedModel[T any, PT numeric.Float[T]] struct{}

func (RevisedModel[T, PT]) Evaluate(e *Engine[T, PT], t, ts, w, p int64) (int64, PT) {
	return e.ProbBNew(t, ts, w, p)
}

func (RevisedModel[T, PT]) Name() string {
	return ModelRevised
}

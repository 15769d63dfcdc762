package crossattack

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// MaxT is the largest repetition count the threshold search can index.
const MaxT = math.MaxUint16

// Params are the protocol parameters an attack is estimated for.
type Params struct {
	P int64 `json:"p" yaml:"p"` // Prime order of the finite field
	T int64 `json:"t" yaml:"t"` // Number of parallel repetitions
	W int64 `json:"w" yaml:"w"` // Fixed weight of the second challenge
}

func (p Params) String() string {
	return fmt.Sprintf("p=%d t=%d w=%d", p.P, p.T, p.W)
}

// Validate rejects parameters the formulas are not defined for.
// W > T is accepted and yields zero probabilities.
func (p Params) Validate() error {
	switch {
	case p.P <= 1:
		return newDomainError("p", p.P, "must be greater than 1")
	case p.T < 0:
		return newDomainError("t", p.T, "must not be negative")
	case p.T > MaxT:
		return newDomainError("t", p.T, fmt.Sprintf("exceeds the threshold search limit %d", MaxT))
	case p.W < 0:
		return newDomainError("w", p.W, "must not be negative")
	}
	return nil
}

// DomainError reports a parameter outside the domain of the estimator.
type DomainError struct {
	Param  string
	Value  int64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s=%d: %s", e.Param, e.Value, e.Reason)
}

func newDomainError(param string, value int64, reason string) error {
	return errors.WithStack(&DomainError{Param: param, Value: value, Reason: reason})
}

// IsDomainError reports whether err was caused by invalid parameters.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// Result is the outcome of a threshold search for one attack model.
type Result struct {
	Model  string `json:"model"`
	Params Params `json:"params"`

	// ThresholdStar is the early-termination threshold minimizing the cost.
	ThresholdStar int64 `json:"threshold_star"`

	// AuxiliaryStar is the maximizing auxiliary weight. Only the revised
	// model sets it; it lies in [W, T] unless the result is Degenerate, in
	// which case it is zero.
	AuxiliaryStar int64 `json:"auxiliary_star,omitempty"`

	// Bits is log2 of the minimal cost.
	Bits float64 `json:"bits"`

	// DegenerateUnits counts thresholds whose cost was unbounded.
	DegenerateUnits int `json:"degenerate_units"`

	// Degenerate is set when no threshold had a bounded cost. Bits is then
	// math.MaxFloat64 and ThresholdStar is zero.
	Degenerate bool `json:"degenerate"`
}

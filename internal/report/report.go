// Package report renders attack cost estimates for the command line.
package report

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/cross-attack-cost/pkg/crossattack"
)

// Format selects how estimates are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Errorf("unknown output format %q, expected text or json", s)
}

// WriteOriginal prints the result of the original attack.
func WriteOriginal(w io.Writer, res crossattack.Result) error {
	if res.Degenerate {
		_, err := fmt.Fprintln(w, "Original attack has no threshold with a bounded cost")
		return err
	}
	_, err := fmt.Fprintf(w, "Original attack has a cost of %.2f bits\nOriginal attack is optimized for t* = %d\n",
		res.Bits, res.ThresholdStar)
	return err
}

// WriteRevised prints the result of the revised attack.
func WriteRevised(w io.Writer, res crossattack.Result) error {
	if res.Degenerate {
		_, err := fmt.Fprintln(w, "Our attack has no threshold with a bounded cost")
		return err
	}
	_, err := fmt.Fprintf(w, "Our attack has a cost of %.2f bits\nOur attack is optimized for t* = %d and alpha = %d\n",
		res.Bits, res.ThresholdStar, res.AuxiliaryStar)
	return err
}

// WriteHeader introduces the results of a named parameter set. Every header
// but the first is preceded by a blank line.
func WriteHeader(w io.Writer, first bool, name string, params crossattack.Params) error {
	if !first {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "== %s (%s) ==\n", name, params)
	return err
}

// WriteJSON encodes estimates as an indented JSON array.
func WriteJSON(w io.Writer, estimates []*crossattack.Estimate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(estimates), "failed to encode estimates")
}

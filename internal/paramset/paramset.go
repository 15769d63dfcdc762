// Package paramset loads named (p, t, w) parameter sets from YAML.
//
// Expected format:
//
//	sets:
//	  - name: t163-w85
//	    p: 127
//	    t: 163
//	    w: 85
package paramset

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/mahdiidarabi/cross-attack-cost/pkg/crossattack"
)

// Set is a named parameter set.
type Set struct {
	Name               string `yaml:"name"`
	crossattack.Params `yaml:",inline"`
}

type file struct {
	Sets []Set `yaml:"sets"`
}

// Builtin are the parameter sets of the reference benchmark table, selectable
// by name on the command line.
var Builtin = []Set{
	{Name: "t163-w85", Params: crossattack.Params{P: 127, T: 163, W: 85}},
	{Name: "t252-w212", Params: crossattack.Params{P: 127, T: 252, W: 212}},
	{Name: "t960-w938", Params: crossattack.Params{P: 127, T: 960, W: 938}},
}

// Lookup returns the built-in set called name.
func Lookup(name string) (Set, bool) {
	for _, s := range Builtin {
		if s.Name == name {
			return s, true
		}
	}
	return Set{}, false
}

// Resolve looks up each name among the built-in sets, keeping their order.
func Resolve(names []string) ([]Set, error) {
	sets := make([]Set, 0, len(names))
	for _, name := range names {
		s, ok := Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown parameter set %q, expected one of %s", name, strings.Join(Names(), ", "))
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// Names lists the built-in set names.
func Names() []string {
	names := make([]string, len(Builtin))
	for i, s := range Builtin {
		names[i] = s.Name
	}
	return names
}

// Load reads and validates the parameter sets in path.
func Load(path string) ([]Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open parameter file")
	}
	defer f.Close()

	sets, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return sets, nil
}

// Parse decodes and validates parameter sets. Unnamed sets are named after
// their position.
func Parse(r io.Reader) ([]Set, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New("no parameter sets")
		}
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	if len(doc.Sets) == 0 {
		return nil, errors.New("no parameter sets")
	}

	for i := range doc.Sets {
		s := &doc.Sets[i]
		if s.Name == "" {
			s.Name = defaultName(i)
		}
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "parameter set %q", s.Name)
		}
	}
	return doc.Sets, nil
}

func defaultName(i int) string {
	return "set-" + strconv.Itoa(i+1)
}

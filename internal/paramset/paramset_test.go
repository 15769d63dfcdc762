package paramset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/cross-attack-cost/pkg/crossattack"
)

func TestParse(t *testing.T) {
	sets, err := Parse(strings.NewReader(`
sets:
  - name: small
    p: 127
    t: 10
    w: 4
  - p: 31
    t: 20
    w: 20
`))
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "small", sets[0].Name)
	assert.Equal(t, crossattack.Params{P: 127, T: 10, W: 4}, sets[0].Params)
	assert.Equal(t, "set-2", sets[1].Name)
	assert.Equal(t, int64(31), sets[1].P)
}

func TestParseRejectsInvalidSet(t *testing.T) {
	_, err := Parse(strings.NewReader(`
sets:
  - name: bad
    p: 1
    t: 10
    w: 4
`))
	require.Error(t, err)
	assert.True(t, crossattack.IsDomainError(err))
	assert.Contains(t, err.Error(), `parameter set "bad"`)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"no sets", "sets: []\n"},
		{"unknown field", "sets:\n  - p: 127\n    t: 3\n    w: 1\n    q: 2\n"},
		{"malformed", "sets: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sets:\n  - {name: x, p: 127, t: 163, w: 85}\n"), 0o600))

	sets, err := Load(path)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, Builtin[0].Params, sets[0].Params)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuiltinValid(t *testing.T) {
	for _, s := range Builtin {
		assert.NoError(t, s.Validate(), s.Name)
	}
	s, ok := Lookup("t252-w212")
	require.True(t, ok)
	assert.Equal(t, int64(212), s.W)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	sets, err := Resolve([]string{"t960-w938", "t163-w85"})
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "t960-w938", sets[0].Name)
	assert.Equal(t, crossattack.Params{P: 127, T: 163, W: 85}, sets[1].Params)

	_, err = Resolve([]string{"t163-w85", "t1-w1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown parameter set "t1-w1"`)
	assert.Contains(t, err.Error(), "t252-w212")

	assert.Equal(t, []string{"t163-w85", "t252-w212", "t960-w938"}, Names())
}

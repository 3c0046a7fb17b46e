// Package scenario loads and validates the authored exercises a session is
// seeded from. Scenarios are YAML documents; a set of them ships embedded in
// the binary and more can be dropped into a directory.
package scenario

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var builtinFS embed.FS

// Scenario is one exercise: a seed repository plus the objectives to reach.
type Scenario struct {
	ID          string          `json:"id" yaml:"id" validate:"required,slug"`
	Title       string          `json:"title" yaml:"title" validate:"required"`
	Description string          `json:"description,omitempty" yaml:"description"`
	Hints       []string        `json:"hints,omitempty" yaml:"hints"`
	Seed        sim.Seed        `json:"seed" yaml:"seed"`
	Objectives  []sim.Objective `json:"objectives" yaml:"objectives" validate:"required,min=1,dive"`
	Path        string          `json:"path,omitempty" yaml:"-"`
	Builtin     bool            `json:"builtin" yaml:"-"`
}

// NewSession starts a fresh simulator session on the scenario.
func (s *Scenario) NewSession(opts ...sim.Option) *sim.Session {
	return sim.NewSession(s.Seed, s.Objectives, opts...)
}

// Hint returns the n-th hint, cycling through the list, and false when the
// scenario has none.
func (s *Scenario) Hint(n int) (string, bool) {
	if len(s.Hints) == 0 {
		return "", false
	}
	if n < 0 {
		n = -n
	}
	return s.Hints[n%len(s.Hints)], true
}

// Parse decodes and validates one scenario document. source names the
// document in error messages.
func Parse(data []byte, source string) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.WithHint(errors.Newf("%s: empty scenario document", source),
				"a scenario needs at least an id, a title and one objective")
		}
		return nil, errors.Wrapf(err, "decoding scenario %s", source)
	}
	if err := Validate(&s); err != nil {
		return nil, errors.Wrapf(err, "invalid scenario %s", source)
	}
	return &s, nil
}

// Load reads and parses the scenario file at p.
func Load(p string) (*Scenario, error) {
	data, err := os.ReadFile(p) //nolint:gosec
	if err != nil {
		return nil, errors.Wrap(err, "reading scenario")
	}
	s, err := Parse(data, p)
	if err != nil {
		return nil, err
	}
	s.Path = p
	return s, nil
}

// Builtin returns the embedded scenarios in curriculum order.
func Builtin() ([]*Scenario, error) {
	names, err := fs.Glob(builtinFS, "scenarios/*.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "listing builtin scenarios")
	}

	out := make([]*Scenario, 0, len(names))
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, "reading builtin %s", name)
		}
		s, err := Parse(data, path.Base(name))
		if err != nil {
			return nil, err
		}
		s.Builtin = true
		out = append(out, s)
	}
	return out, nil
}

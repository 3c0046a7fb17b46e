package scenario

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chmouel/gitdojo/internal/log"
	"github.com/cockroachdb/errors"
)

// Catalog merges the builtin scenarios with those found in Dir. A user
// scenario replaces the builtin with the same ID.
type Catalog struct {
	Dir string
}

// NewCatalog returns a catalog reading extra scenarios from dir, which may be empty.
func NewCatalog(dir string) *Catalog {
	return &Catalog{Dir: dir}
}

// List returns every scenario, builtins first in curriculum order, then user
// scenarios sorted by file name. Invalid user files are logged and skipped.
func (c *Catalog) List() ([]*Scenario, error) {
	all, err := Builtin()
	if err != nil {
		return nil, err
	}

	user, err := c.userFiles()
	if err != nil {
		return nil, err
	}
	for _, p := range user {
		s, err := Load(p)
		if err != nil {
			log.Warn("skipping scenario", "path", p, "err", err)
			continue
		}
		if i := slices.IndexFunc(all, func(b *Scenario) bool { return b.ID == s.ID }); i >= 0 {
			log.Debug("scenario overrides builtin", "id", s.ID, "path", p)
			all[i] = s
			continue
		}
		all = append(all, s)
	}
	return all, nil
}

func (c *Catalog) userFiles() ([]string, error) {
	if c.Dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("scenario directory missing", "dir", c.Dir)
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading scenario directory")
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(c.Dir, e.Name()))
	}
	return out, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Find resolves ref as a scenario file path when it names a YAML file,
// otherwise as a scenario ID.
func (c *Catalog) Find(ref string) (*Scenario, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty scenario reference")
	}
	if isYAML(ref) {
		return Load(ref)
	}

	all, err := c.List()
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.ID == ref {
			return s, nil
		}
	}
	return nil, errors.WithHint(errors.Newf("unknown scenario %q", ref),
		"run `gitdojo scenarios` to list the available scenarios")
}

// IDs returns the scenario IDs in catalog order.
func IDs(list []*Scenario) []string {
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}

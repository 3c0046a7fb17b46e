package scenario

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks the struct tags, then the cross-field rules the tags cannot
// express. The first problem found is returned.
func Validate(s *Scenario) error {
	if err := structValidator().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return errors.Wrap(err, "validating scenario")
	}
	if err := validateSeed(s.Seed); err != nil {
		return err
	}
	for i, o := range s.Objectives {
		if err := validateCheck(o.Check); err != nil {
			return errors.Wrapf(err, "objective %d (%s)", i+1, o.Description)
		}
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Scenario.")
	switch fe.Tag() {
	case "required":
		return errors.WithHint(errors.Newf("%s is required", field),
			"every scenario needs an id, a title and at least one objective")
	case "min":
		return errors.Newf("%s needs at least %s entries", field, fe.Param())
	case "slug":
		return errors.WithHint(errors.Newf("%s %q is not a valid id", field, fe.Value()),
			"ids use lowercase letters, digits and dashes, e.g. first-repo")
	}
	return errors.Newf("%s failed %q validation", field, fe.Tag())
}

func validateSeed(seed sim.Seed) error {
	seen := make(map[string]bool, len(seed.Files))
	for _, f := range seed.Files {
		if seen[f.Name] {
			return errors.Newf("seed file %q is listed twice", f.Name)
		}
		seen[f.Name] = true
		if !f.Status.Valid() {
			return errors.WithHint(errors.Newf("seed file %q has unknown status %q", f.Name, f.Status),
				"statuses are untracked, modified, staged and committed")
		}
	}

	if !seed.IsInitialized {
		if len(seed.Commits) > 0 || len(seed.Branches) > 0 {
			return errors.WithHint(errors.New("an uninitialized seed cannot carry commits or branches"),
				"set is_initialized: true or drop the commits and branches")
		}
		return nil
	}

	if seed.CurrentBranch != "" && len(seed.Branches) > 0 && !slices.Contains(seed.Branches, seed.CurrentBranch) {
		return errors.WithHint(errors.Newf("current branch %q is not listed in branches", seed.CurrentBranch),
			fmt.Sprintf("add it to branches: %v", append(slices.Clone(seed.Branches), seed.CurrentBranch)))
	}
	for i, c := range seed.Commits {
		for _, name := range c.Files {
			if !seen[name] {
				return errors.Newf("seed commit %d (%s) references unknown file %q", i+1, c.Message, name)
			}
		}
		if c.Branch != "" && len(seed.Branches) > 0 && !slices.Contains(seed.Branches, c.Branch) {
			return errors.Newf("seed commit %d (%s) is on unlisted branch %q", i+1, c.Message, c.Branch)
		}
	}
	return nil
}

func validateCheck(c sim.Check) error {
	if !slices.Contains(sim.CheckTypes, c.Type) {
		known := make([]string, len(sim.CheckTypes))
		for i, t := range sim.CheckTypes {
			known[i] = string(t)
		}
		return errors.WithHint(errors.Newf("unknown check type %q", c.Type),
			"known types: "+strings.Join(known, ", "))
	}

	switch c.Type {
	case sim.CheckCurrentBranch, sim.CheckBranchExists, sim.CheckMergedBranch, sim.CheckCommitMessageExists:
		if strings.TrimSpace(c.StringValue()) == "" {
			return errors.Newf("check %s needs a string value", c.Type)
		}
	case sim.CheckMinCommits:
		if c.Value != nil {
			if _, ok := c.IntValue(); !ok {
				return errors.Newf("check %s needs an integer value, got %v", c.Type, c.Value)
			}
		}
	case sim.CheckFileStatus:
		if name, status := c.FileStatusArgs(); name == "" || !status.Valid() {
			return errors.WithHint(errors.Newf("check %s needs a file and a valid status", c.Type),
				"e.g. {type: fileStatus, file: README.md, status: committed}")
		}
	}
	return nil
}

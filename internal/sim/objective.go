package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckType names an objective predicate.
type CheckType string

// Known check kinds.
const (
	CheckIsInitialized       CheckType = "isInitialized"
	CheckMinCommits          CheckType = "minCommits"
	CheckCurrentBranch       CheckType = "currentBranch"
	CheckBranchExists        CheckType = "branchExists"
	CheckAllFilesStaged      CheckType = "allFilesStaged"
	CheckAllFilesCommitted   CheckType = "allFilesCommitted"
	CheckFileStatus          CheckType = "fileStatus"
	CheckNoUntrackedFiles    CheckType = "noUntrackedFiles"
	CheckCommitMessageExists CheckType = "commitMessageExists"
	CheckMergedBranch        CheckType = "mergedBranch"
)

// CheckTypes lists every supported check kind.
var CheckTypes = []CheckType{
	CheckIsInitialized,
	CheckMinCommits,
	CheckCurrentBranch,
	CheckBranchExists,
	CheckAllFilesStaged,
	CheckAllFilesCommitted,
	CheckFileStatus,
	CheckNoUntrackedFiles,
	CheckCommitMessageExists,
	CheckMergedBranch,
}

// Check is a declarative predicate over the repository model. Value is
// loosely typed because checks are authored in YAML or JSON.
type Check struct {
	Type   CheckType  `json:"type" yaml:"type" validate:"required"`
	Value  any        `json:"value,omitempty" yaml:"value,omitempty"`
	File   string     `json:"file,omitempty" yaml:"file,omitempty"`
	Status FileStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// Objective is an authored goal.
type Objective struct {
	Description string `json:"description" yaml:"description" validate:"required"`
	Check       Check  `json:"check" yaml:"check"`
}

// ObjectiveResult pairs an objective with its outcome.
type ObjectiveResult struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

// Evaluate checks every objective against r, preserving order.
func Evaluate(r Repository, objectives []Objective) []ObjectiveResult {
	results := make([]ObjectiveResult, len(objectives))
	for i, o := range objectives {
		results[i] = ObjectiveResult{Description: o.Description, Passed: o.Check.Passes(r)}
	}
	return results
}

// Complete reports whether every result passed. An empty list is not complete.
func Complete(results []ObjectiveResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, res := range results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Passes evaluates the check. Unknown kinds fail closed.
func (c Check) Passes(r Repository) bool {
	switch c.Type {
	case CheckIsInitialized:
		return r.IsInitialized == coerceBool(c.Value, true)
	case CheckMinCommits:
		return len(r.Commits) >= coerceInt(c.Value, 1)
	case CheckCurrentBranch:
		return r.CurrentBranch == coerceString(c.Value)
	case CheckBranchExists:
		_, ok := r.Branch(coerceString(c.Value))
		return ok
	case CheckAllFilesStaged:
		return allFiles(r, func(f File) bool {
			return f.Status == StatusStaged || f.Status == StatusCommitted
		})
	case CheckAllFilesCommitted:
		return allFiles(r, func(f File) bool { return f.Status == StatusCommitted })
	case CheckFileStatus:
		name, status := c.FileStatusArgs()
		f, ok := r.File(name)
		return ok && f.Status == status
	case CheckNoUntrackedFiles:
		return len(r.FilesWithStatus(StatusUntracked)) == 0
	case CheckCommitMessageExists:
		needle := strings.ToLower(coerceString(c.Value))
		for _, commit := range r.Commits {
			if strings.Contains(strings.ToLower(commit.Message), needle) {
				return true
			}
		}
		return false
	case CheckMergedBranch:
		return mergedBranch(r, coerceString(c.Value))
	}
	return false
}

// FileStatusArgs reads the file and status either from the dedicated fields
// or from a {file, status} map in Value.
func (c Check) FileStatusArgs() (string, FileStatus) {
	name, status := c.File, c.Status
	if m, ok := c.Value.(map[string]any); ok {
		if name == "" {
			name = coerceString(m["file"])
		}
		if status == "" {
			status = FileStatus(coerceString(m["status"]))
		}
	}
	return name, status
}

func allFiles(r Repository, ok func(File) bool) bool {
	if len(r.Files) == 0 {
		return false
	}
	for _, f := range r.Files {
		if !ok(f) {
			return false
		}
	}
	return true
}

func mergedBranch(r Repository, name string) bool {
	if name == "" || len(r.CommitsOn(name)) == 0 {
		return false
	}
	marker := fmt.Sprintf("Merge branch '%s'", name)
	for _, c := range r.CommitsOn(r.CurrentBranch) {
		if strings.Contains(c.Message, marker) {
			return true
		}
	}
	return false
}

func coerceBool(value any, defaultVal bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

// IntValue reports Value as an int and whether it reads as one.
func (c Check) IntValue() (int, bool) {
	return intValue(c.Value)
}

// StringValue reports Value as a string, formatting non-string scalars.
func (c Check) StringValue() string {
	return coerceString(c.Value)
}

func intValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func coerceInt(value any, defaultVal int) int {
	if i, ok := intValue(value); ok {
		return i
	}
	return defaultVal
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

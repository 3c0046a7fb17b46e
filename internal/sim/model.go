// Package sim implements the git semantics simulator: an in-memory repository
// model, a command interpreter for a teaching subset of git, a pure transition
// engine and an objective evaluator.
package sim

import "slices"

// FileStatus is the lifecycle state of a simulated file.
type FileStatus string

// File statuses.
const (
	StatusUntracked FileStatus = "untracked"
	StatusModified  FileStatus = "modified"
	StatusStaged    FileStatus = "staged"
	StatusCommitted FileStatus = "committed"
)

// Valid reports whether s is one of the known statuses.
func (s FileStatus) Valid() bool {
	switch s {
	case StatusUntracked, StatusModified, StatusStaged, StatusCommitted:
		return true
	}
	return false
}

// Dirty reports whether the file has changes that `git add` would stage.
func (s FileStatus) Dirty() bool {
	return s == StatusUntracked || s == StatusModified
}

// Action tags the last state-changing transition, for animation hints only.
type Action string

// Last action tags.
const (
	ActionNone     Action = ""
	ActionInit     Action = "init"
	ActionStage    Action = "stage"
	ActionCommit   Action = "commit"
	ActionBranch   Action = "branch"
	ActionCheckout Action = "checkout"
	ActionUnstage  Action = "unstage"
	ActionRestore  Action = "restore"
	ActionMerge    Action = "merge"
)

// DefaultBranch is the branch created by `git init`.
const DefaultBranch = "main"

// File is a simulated working tree entry. Name is its identity.
type File struct {
	ID      string     `json:"id" yaml:"id"`
	Name    string     `json:"name" yaml:"name"`
	Status  FileStatus `json:"status" yaml:"status"`
	Content string     `json:"content,omitempty" yaml:"content,omitempty"`
}

// Commit is a snapshot of the names staged when it was created.
type Commit struct {
	ID      string   `json:"id" yaml:"id"`
	Hash    string   `json:"hash" yaml:"hash"`
	Message string   `json:"message" yaml:"message"`
	Files   []string `json:"files" yaml:"files"`
	Branch  string   `json:"branch" yaml:"branch"`
	Parents []string `json:"parents,omitempty" yaml:"parents,omitempty"`
}

// Branch points at the hash of its latest commit, or "" when it has none.
type Branch struct {
	Name  string `json:"name" yaml:"name"`
	Head  string `json:"head" yaml:"head"`
	Color string `json:"color" yaml:"color"`
}

// Repository is the complete simulated git state.
type Repository struct {
	Files         []File   `json:"files" yaml:"files"`
	Commits       []Commit `json:"commits" yaml:"commits"`
	Branches      []Branch `json:"branches" yaml:"branches"`
	CurrentBranch string   `json:"currentBranch" yaml:"current_branch"`
	IsInitialized bool     `json:"isInitialized" yaml:"is_initialized"`
	LastAction    Action   `json:"lastAction,omitempty" yaml:"last_action,omitempty"`
}

// BranchColors is the round-robin palette assigned to new branches.
var BranchColors = []string{
	"#BD93F9",
	"#50FA7B",
	"#FFB86C",
	"#FF79C6",
	"#8BE9FD",
	"#F1FA8C",
}

// ColorFor returns the palette color for the n-th created branch.
func ColorFor(n int) string {
	if n < 0 {
		n = 0
	}
	return BranchColors[n%len(BranchColors)]
}

// Clone returns a deep copy that shares no slices with r.
func (r Repository) Clone() Repository {
	out := r
	out.Files = slices.Clone(r.Files)
	out.Branches = slices.Clone(r.Branches)
	out.Commits = make([]Commit, len(r.Commits))
	for i, c := range r.Commits {
		c.Files = slices.Clone(c.Files)
		c.Parents = slices.Clone(c.Parents)
		out.Commits[i] = c
	}
	if r.Commits == nil {
		out.Commits = nil
	}
	return out
}

// File returns the file with the given name.
func (r Repository) File(name string) (File, bool) {
	i := r.fileIndex(name)
	if i < 0 {
		return File{}, false
	}
	return r.Files[i], true
}

// Branch returns the branch with the given name.
func (r Repository) Branch(name string) (Branch, bool) {
	i := r.branchIndex(name)
	if i < 0 {
		return Branch{}, false
	}
	return r.Branches[i], true
}

// Head returns the head hash of the current branch.
func (r Repository) Head() string {
	b, _ := r.Branch(r.CurrentBranch)
	return b.Head
}

// CommitByHash returns the first commit carrying hash. Merge duplicates share
// their source hash, so the original record wins.
func (r Repository) CommitByHash(hash string) (Commit, bool) {
	if hash == "" {
		return Commit{}, false
	}
	for _, c := range r.Commits {
		if c.Hash == hash {
			return c, true
		}
	}
	return Commit{}, false
}

// CommitsOn returns the commits tagged with branch, in creation order.
func (r Repository) CommitsOn(branch string) []Commit {
	var out []Commit
	for _, c := range r.Commits {
		if c.Branch == branch {
			out = append(out, c)
		}
	}
	return out
}

// FilesWithStatus returns the files currently in status s.
func (r Repository) FilesWithStatus(s FileStatus) []File {
	var out []File
	for _, f := range r.Files {
		if f.Status == s {
			out = append(out, f)
		}
	}
	return out
}

func (r Repository) fileIndex(name string) int {
	return slices.IndexFunc(r.Files, func(f File) bool { return f.Name == name })
}

func (r Repository) branchIndex(name string) int {
	return slices.IndexFunc(r.Branches, func(b Branch) bool { return b.Name == name })
}

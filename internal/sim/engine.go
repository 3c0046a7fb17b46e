package sim

import (
	"fmt"
	"slices"
)

// Messages shared between handlers and tests.
const (
	MsgNotARepository   = "fatal: not a git repository (or any of the parent directories): .git"
	MsgMissingMessage   = "error: switch 'm' requires a value"
	MsgNothingToCommit  = "nothing to commit, working tree clean"
	MsgAlreadyUpToDate  = "Already up to date."
	MsgMergeAborted     = "Merge aborted"
	DefaultWorkTreePath = "/home/learner/project"
)

// Result is what a transition reports back to the presentation layer.
type Result struct {
	Output  string
	Action  Action
	Changed bool
}

// Engine applies parsed commands to repository models. It holds no
// repository state: the caller threads the model through Apply.
type Engine struct {
	hash HashFunc
	path string
}

// Option configures an Engine.
type Option func(*Engine)

// WithHash injects the commit hash generator.
func WithHash(h HashFunc) Option {
	return func(e *Engine) {
		if h != nil {
			e.hash = h
		}
	}
}

// WithPath sets the work tree path shown in init and branch messages.
func WithPath(path string) Option {
	return func(e *Engine) {
		if path != "" {
			e.path = path
		}
	}
}

// NewEngine returns an engine using RandomHash unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{hash: RandomHash, path: DefaultWorkTreePath}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Hash exposes the injected generator, used when hydrating seeds.
func (e *Engine) Hash() HashFunc {
	return e.hash
}

// Exec parses line and applies it.
func (e *Engine) Exec(repo Repository, line string) (Repository, Result) {
	return e.Apply(repo, Parse(line))
}

// Apply computes the next model for cmd. The input model is never modified;
// when nothing changes the very same value is handed back.
func (e *Engine) Apply(repo Repository, cmd Command) (Repository, Result) {
	switch cmd.Kind {
	case KindEmpty:
		return repo, Result{}
	case KindInit:
	default:
		if !repo.IsInitialized {
			return repo, Result{Output: MsgNotARepository}
		}
	}
	if cmd.Kind == KindUnrecognized {
		return repo, Result{Output: fmt.Sprintf("bash: %s: command not found", cmd.Token)}
	}

	next := repo.Clone()
	var out string
	var action Action

	switch cmd.Kind {
	case KindInit:
		out, action = e.init(&next)
	case KindStatus:
		out = renderStatus(repo)
	case KindLog:
		out = renderLog(repo, cmd.Oneline)
	case KindDiff:
		out = renderDiff(repo, cmd.Staged)
	case KindBranchList:
		out = renderBranches(repo)
	case KindAdd:
		out, action = add(&next, cmd)
	case KindCommit:
		out, action = e.commit(&next, cmd)
	case KindBranchCreate:
		out, action = createBranch(&next, cmd.Target)
	case KindBranchDelete:
		out, action = e.deleteBranch(&next, cmd.Target)
	case KindCheckout:
		out, action = checkout(&next, cmd)
	case KindCheckoutCreate:
		out, action = checkoutCreate(&next, cmd.Target)
	case KindMerge:
		out, action = e.merge(&next, cmd)
	case KindRestoreStaged:
		out, action = restoreStaged(&next, cmd)
	case KindRestore:
		out, action = restore(&next, cmd)
	}

	if action == ActionNone {
		return repo, Result{Output: out}
	}
	next.LastAction = action
	return next, Result{Output: out, Action: action, Changed: true}
}

func (e *Engine) init(r *Repository) (string, Action) {
	if r.IsInitialized {
		return fmt.Sprintf("Reinitialized existing Git repository in %s/.git/", e.path), ActionNone
	}
	r.IsInitialized = true
	r.Branches = []Branch{{Name: DefaultBranch, Color: ColorFor(0)}}
	r.CurrentBranch = DefaultBranch
	return fmt.Sprintf("Initialized empty Git repository in %s/.git/", e.path), ActionInit
}

func pathspecError(name string) string {
	return fmt.Sprintf("fatal: pathspec '%s' did not match any files", name)
}

func add(r *Repository, cmd Command) (string, Action) {
	if cmd.All {
		staged := 0
		for i := range r.Files {
			if r.Files[i].Status.Dirty() {
				r.Files[i].Status = StatusStaged
				staged++
			}
		}
		if staged == 0 {
			return "", ActionNone
		}
		return "", ActionStage
	}

	i := r.fileIndex(cmd.Target)
	if i < 0 {
		return pathspecError(cmd.Target), ActionNone
	}
	if !r.Files[i].Status.Dirty() {
		return "", ActionNone
	}
	r.Files[i].Status = StatusStaged
	return "", ActionStage
}

func (e *Engine) commit(r *Repository, cmd Command) (string, Action) {
	if !cmd.HasMessage {
		return MsgMissingMessage, ActionNone
	}
	if cmd.StageAll {
		for i := range r.Files {
			if r.Files[i].Status == StatusModified {
				r.Files[i].Status = StatusStaged
			}
		}
	}

	var names []string
	for _, f := range r.Files {
		if f.Status == StatusStaged {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return MsgNothingToCommit, ActionNone
	}

	bi := r.branchIndex(r.CurrentBranch)
	parent := r.Branches[bi].Head
	c := Commit{
		ID:      commitID(len(r.Commits)),
		Hash:    uniqueHash(*r, e.hash),
		Message: cmd.Message,
		Files:   names,
		Branch:  r.CurrentBranch,
	}
	if parent != "" {
		c.Parents = []string{parent}
	}
	r.Commits = append(r.Commits, c)
	for i := range r.Files {
		if r.Files[i].Status == StatusStaged {
			r.Files[i].Status = StatusCommitted
		}
	}
	r.Branches[bi].Head = c.Hash

	root := ""
	if parent == "" {
		root = " (root-commit)"
	}
	return fmt.Sprintf("[%s%s %s] %s\n %s", r.CurrentBranch, root, c.Hash, c.Message, filesChanged(len(names))), ActionCommit
}

func filesChanged(n int) string {
	if n == 1 {
		return "1 file changed"
	}
	return fmt.Sprintf("%d files changed", n)
}

func branchExists(name string) string {
	return fmt.Sprintf("fatal: a branch named '%s' already exists", name)
}

func createBranch(r *Repository, name string) (string, Action) {
	if r.branchIndex(name) >= 0 {
		return branchExists(name), ActionNone
	}
	r.Branches = append(r.Branches, Branch{
		Name:  name,
		Head:  r.Head(),
		Color: ColorFor(len(r.Branches)),
	})
	return "", ActionBranch
}

func (e *Engine) deleteBranch(r *Repository, name string) (string, Action) {
	i := r.branchIndex(name)
	if i < 0 {
		return fmt.Sprintf("error: branch '%s' not found.", name), ActionNone
	}
	if name == r.CurrentBranch {
		return fmt.Sprintf("error: Cannot delete branch '%s' checked out at '%s'", name, e.path), ActionNone
	}
	head := r.Branches[i].Head
	r.Branches = slices.Delete(r.Branches, i, i+1)
	if head == "" {
		return fmt.Sprintf("Deleted branch %s.", name), ActionBranch
	}
	return fmt.Sprintf("Deleted branch %s (was %s).", name, head), ActionBranch
}

func checkout(r *Repository, cmd Command) (string, Action) {
	name := cmd.Target
	if r.branchIndex(name) < 0 {
		if cmd.Switch {
			return fmt.Sprintf("fatal: invalid reference: %s", name), ActionNone
		}
		return fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", name), ActionNone
	}
	if name == r.CurrentBranch {
		return fmt.Sprintf("Already on '%s'", name), ActionNone
	}
	r.CurrentBranch = name
	return fmt.Sprintf("Switched to branch '%s'", name), ActionCheckout
}

func checkoutCreate(r *Repository, name string) (string, Action) {
	if out, action := createBranch(r, name); action == ActionNone {
		return out, ActionNone
	}
	r.CurrentBranch = name
	return fmt.Sprintf("Switched to a new branch '%s'", name), ActionCheckout
}

func (e *Engine) merge(r *Repository, cmd Command) (string, Action) {
	if cmd.Abort {
		return MsgMergeAborted, ActionNone
	}
	source := cmd.Target
	si := r.branchIndex(source)
	if si < 0 {
		return fmt.Sprintf("merge: %s - not something we can merge", source), ActionNone
	}
	if source == r.CurrentBranch {
		return MsgAlreadyUpToDate, ActionNone
	}

	present := make(map[string]bool)
	for _, c := range r.Commits {
		if c.Branch == r.CurrentBranch {
			present[c.Hash] = true
		}
	}
	var incoming []Commit
	for _, c := range r.Commits {
		if c.Branch == source && !present[c.Hash] {
			incoming = append(incoming, c)
		}
	}
	if len(incoming) == 0 {
		return MsgAlreadyUpToDate, ActionNone
	}

	var touched []string
	for _, c := range incoming {
		dup := c
		dup.ID = c.ID + "-merged"
		dup.Branch = r.CurrentBranch
		dup.Files = slices.Clone(c.Files)
		dup.Parents = slices.Clone(c.Parents)
		r.Commits = append(r.Commits, dup)
		for _, f := range c.Files {
			if !slices.Contains(touched, f) {
				touched = append(touched, f)
			}
		}
	}

	bi := r.branchIndex(r.CurrentBranch)
	var parents []string
	if head := r.Branches[bi].Head; head != "" {
		parents = append(parents, head)
	}
	if head := r.Branches[si].Head; head != "" {
		parents = append(parents, head)
	}
	mc := Commit{
		ID:      commitID(len(r.Commits)),
		Hash:    uniqueHash(*r, e.hash),
		Message: fmt.Sprintf("Merge branch '%s' into %s", source, r.CurrentBranch),
		Files:   touched,
		Branch:  r.CurrentBranch,
		Parents: parents,
	}
	r.Commits = append(r.Commits, mc)
	r.Branches[bi].Head = mc.Hash

	out := "Merge made by the 'ort' strategy."
	if len(touched) > 0 {
		out += "\n " + filesChanged(len(touched))
	}
	return out, ActionMerge
}

func restoreStaged(r *Repository, cmd Command) (string, Action) {
	if cmd.All {
		moved := 0
		for i := range r.Files {
			if r.Files[i].Status == StatusStaged {
				r.Files[i].Status = StatusModified
				moved++
			}
		}
		if moved == 0 {
			return "", ActionNone
		}
		return "", ActionUnstage
	}

	i := r.fileIndex(cmd.Target)
	if i < 0 || r.Files[i].Status != StatusStaged {
		return fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", cmd.Target), ActionNone
	}
	r.Files[i].Status = StatusModified
	return "", ActionUnstage
}

func restore(r *Repository, cmd Command) (string, Action) {
	if cmd.All {
		moved := 0
		for i := range r.Files {
			if r.Files[i].Status == StatusModified {
				r.Files[i].Status = StatusCommitted
				moved++
			}
		}
		if moved == 0 {
			return "", ActionNone
		}
		return "", ActionRestore
	}

	i := r.fileIndex(cmd.Target)
	if i < 0 {
		return fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", cmd.Target), ActionNone
	}
	if r.Files[i].Status != StatusModified {
		return "", ActionNone
	}
	r.Files[i].Status = StatusCommitted
	return "", ActionRestore
}

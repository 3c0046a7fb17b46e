package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{name: "empty", line: "   ", want: Command{Kind: KindEmpty}},
		{name: "init", line: "git init", want: Command{Kind: KindInit, Raw: "git init"}},
		{name: "init case folded", line: "  GIT Init ", want: Command{Kind: KindInit, Raw: "GIT Init"}},
		{name: "status", line: "git status", want: Command{Kind: KindStatus, Raw: "git status"}},
		{name: "log", line: "git log", want: Command{Kind: KindLog, Raw: "git log"}},
		{name: "log oneline", line: "git log --oneline", want: Command{Kind: KindLog, Raw: "git log --oneline", Oneline: true}},
		{name: "diff", line: "git diff", want: Command{Kind: KindDiff, Raw: "git diff"}},
		{name: "diff staged", line: "git diff --staged", want: Command{Kind: KindDiff, Raw: "git diff --staged", Staged: true}},
		{name: "diff cached", line: "git diff --cached", want: Command{Kind: KindDiff, Raw: "git diff --cached", Staged: true}},
		{name: "add dot", line: "git add .", want: Command{Kind: KindAdd, Raw: "git add .", All: true}},
		{name: "add -A", line: "git add -A", want: Command{Kind: KindAdd, Raw: "git add -A", All: true}},
		{name: "add -a", line: "git add -a", want: Command{Kind: KindAdd, Raw: "git add -a", All: true}},
		{name: "add file keeps case", line: "GIT ADD README.md", want: Command{Kind: KindAdd, Raw: "GIT ADD README.md", Target: "README.md"}},
		{
			name: "commit double quotes",
			line: `git commit -m "Add Feature"`,
			want: Command{Kind: KindCommit, Raw: `git commit -m "Add Feature"`, Message: "Add Feature", HasMessage: true},
		},
		{
			name: "commit single quotes",
			line: "git commit -m 'first'",
			want: Command{Kind: KindCommit, Raw: "git commit -m 'first'", Message: "first", HasMessage: true},
		},
		{name: "commit without message", line: "git commit", want: Command{Kind: KindCommit, Raw: "git commit"}},
		{name: "commit unquoted message", line: "git commit -m first", want: Command{Kind: KindCommit, Raw: "git commit -m first"}},
		{name: "commit empty message", line: `git commit -m ""`, want: Command{Kind: KindCommit, Raw: `git commit -m ""`}},
		{name: "commit unterminated quote", line: `git commit -m "oops`, want: Command{Kind: KindCommit, Raw: `git commit -m "oops`}},
		{
			name: "commit -am",
			line: `git commit -am "wip"`,
			want: Command{Kind: KindCommit, Raw: `git commit -am "wip"`, Message: "wip", HasMessage: true, StageAll: true},
		},
		{
			name: "commit -a -m",
			line: `git commit -a -m "wip"`,
			want: Command{Kind: KindCommit, Raw: `git commit -a -m "wip"`, Message: "wip", HasMessage: true, StageAll: true},
		},
		{name: "branch list", line: "git branch", want: Command{Kind: KindBranchList, Raw: "git branch"}},
		{name: "branch create", line: "git branch Feature", want: Command{Kind: KindBranchCreate, Raw: "git branch Feature", Target: "Feature"}},
		{name: "branch delete", line: "git branch -d feature", want: Command{Kind: KindBranchDelete, Raw: "git branch -d feature", Target: "feature"}},
		{name: "branch force delete", line: "git branch -D feature", want: Command{Kind: KindBranchDelete, Raw: "git branch -D feature", Target: "feature", Force: true}},
		{name: "branch dangling flag", line: "git branch -d", want: Command{Kind: KindUnrecognized, Raw: "git branch -d", Token: "git"}},
		{name: "checkout -b", line: "git checkout -b feat", want: Command{Kind: KindCheckoutCreate, Raw: "git checkout -b feat", Target: "feat"}},
		{name: "switch -c", line: "git switch -c feat", want: Command{Kind: KindCheckoutCreate, Raw: "git switch -c feat", Target: "feat", Switch: true}},
		{name: "checkout", line: "git checkout main", want: Command{Kind: KindCheckout, Raw: "git checkout main", Target: "main"}},
		{name: "switch", line: "git switch main", want: Command{Kind: KindCheckout, Raw: "git switch main", Target: "main", Switch: true}},
		{name: "merge", line: "git merge feature", want: Command{Kind: KindMerge, Raw: "git merge feature", Target: "feature"}},
		{name: "merge abort", line: "git merge --abort", want: Command{Kind: KindMerge, Raw: "git merge --abort", Abort: true}},
		{name: "restore staged all", line: "git restore --staged .", want: Command{Kind: KindRestoreStaged, Raw: "git restore --staged .", All: true}},
		{name: "restore staged bare", line: "git restore --staged", want: Command{Kind: KindRestoreStaged, Raw: "git restore --staged", All: true}},
		{name: "restore staged file", line: "git restore --staged a.txt", want: Command{Kind: KindRestoreStaged, Raw: "git restore --staged a.txt", Target: "a.txt"}},
		{name: "restore all", line: "git restore .", want: Command{Kind: KindRestore, Raw: "git restore .", All: true}},
		{name: "restore file", line: "git restore a.txt", want: Command{Kind: KindRestore, Raw: "git restore a.txt", Target: "a.txt"}},
		{name: "unrecognized shell", line: "ls -la", want: Command{Kind: KindUnrecognized, Raw: "ls -la", Token: "ls"}},
		{name: "unrecognized git", line: "git push origin main", want: Command{Kind: KindUnrecognized, Raw: "git push origin main", Token: "git"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestTokenize(t *testing.T) {
	toks := tokenize(`git commit -m 'it''s "fine"' tail`)
	texts := make([]string, 0, len(toks))
	for _, tok := range toks {
		texts = append(texts, tok.text)
	}
	assert.Equal(t, []string{"git", "commit", "-m", `its "fine"`, "tail"}, texts)
	assert.True(t, toks[3].quoted)
	assert.False(t, toks[4].quoted)
}

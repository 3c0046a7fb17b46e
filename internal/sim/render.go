package sim

import (
	"fmt"
	"slices"
	"strings"
)

func committedBefore(r Repository, name string) bool {
	for _, c := range r.Commits {
		if slices.Contains(c.Files, name) {
			return true
		}
	}
	return false
}

func renderStatus(r Repository) string {
	var b strings.Builder
	fmt.Fprintf(&b, "On branch %s\n", r.CurrentBranch)
	if r.Head() == "" {
		b.WriteString("\nNo commits yet\n")
	}

	staged := r.FilesWithStatus(StatusStaged)
	modified := r.FilesWithStatus(StatusModified)
	untracked := r.FilesWithStatus(StatusUntracked)

	if len(staged) > 0 {
		b.WriteString("\nChanges to be committed:\n")
		b.WriteString("  (use \"git restore --staged <file>...\" to unstage)\n")
		for _, f := range staged {
			label := "new file:"
			if committedBefore(r, f.Name) {
				label = "modified:"
			}
			fmt.Fprintf(&b, "\t%-11s %s\n", label, f.Name)
		}
	}
	if len(modified) > 0 {
		b.WriteString("\nChanges not staged for commit:\n")
		b.WriteString("  (use \"git add <file>...\" to update what will be committed)\n")
		b.WriteString("  (use \"git restore <file>...\" to discard changes in working directory)\n")
		for _, f := range modified {
			fmt.Fprintf(&b, "\t%-11s %s\n", "modified:", f.Name)
		}
	}
	if len(untracked) > 0 {
		b.WriteString("\nUntracked files:\n")
		b.WriteString("  (use \"git add <file>...\" to include in what will be committed)\n")
		for _, f := range untracked {
			fmt.Fprintf(&b, "\t%s\n", f.Name)
		}
	}

	switch {
	case len(staged) > 0:
	case len(modified) > 0:
		b.WriteString("\nno changes added to commit (use \"git add\" and/or \"git commit -a\")\n")
	case len(untracked) > 0:
		b.WriteString("\nnothing added to commit but untracked files present (use \"git add\" to track)\n")
	default:
		b.WriteString("\n" + MsgNothingToCommit + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// History returns the commits reachable from head following parents, newest
// first by creation order.
func History(r Repository, head string) []Commit {
	if head == "" {
		return nil
	}
	seen := map[string]bool{}
	stack := []string{head}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		if c, ok := r.CommitByHash(h); ok {
			stack = append(stack, c.Parents...)
		}
	}

	var out []Commit
	emitted := map[string]bool{}
	for i := len(r.Commits) - 1; i >= 0; i-- {
		c := r.Commits[i]
		if !seen[c.Hash] || emitted[c.Hash] {
			continue
		}
		// report the original record rather than a merge duplicate
		orig, _ := r.CommitByHash(c.Hash)
		emitted[c.Hash] = true
		out = append(out, orig)
	}
	return out
}

// Decorations returns the ref labels pointing at hash, HEAD first.
func Decorations(r Repository, hash string) []string {
	var refs []string
	for _, b := range r.Branches {
		if b.Head != hash {
			continue
		}
		if b.Name == r.CurrentBranch {
			refs = append([]string{"HEAD -> " + b.Name}, refs...)
			continue
		}
		refs = append(refs, b.Name)
	}
	return refs
}

func renderLog(r Repository, oneline bool) string {
	head := r.Head()
	if head == "" {
		return fmt.Sprintf("fatal: your current branch '%s' does not have any commits yet", r.CurrentBranch)
	}

	var lines []string
	for _, c := range History(r, head) {
		decor := ""
		if refs := Decorations(r, c.Hash); len(refs) > 0 {
			decor = " (" + strings.Join(refs, ", ") + ")"
		}
		if oneline {
			lines = append(lines, fmt.Sprintf("%s%s %s", c.Hash, decor, c.Message))
			continue
		}
		entry := fmt.Sprintf("commit %s%s\n", c.Hash, decor)
		if len(c.Parents) > 1 {
			entry += "Merge: " + strings.Join(c.Parents, " ") + "\n"
		}
		entry += "\n    " + c.Message + "\n"
		lines = append(lines, entry)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func renderDiff(r Repository, staged bool) string {
	want := StatusModified
	if staged {
		want = StatusStaged
	}

	var parts []string
	for _, f := range r.FilesWithStatus(want) {
		var b strings.Builder
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", f.Name, f.Name)
		if staged && !committedBefore(r, f.Name) {
			b.WriteString("new file mode 100644\n--- /dev/null\n")
		} else {
			fmt.Fprintf(&b, "--- a/%s\n", f.Name)
		}
		fmt.Fprintf(&b, "+++ b/%s", f.Name)
		if f.Content != "" {
			for _, line := range strings.Split(strings.TrimRight(f.Content, "\n"), "\n") {
				b.WriteString("\n+" + line)
			}
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

func renderBranches(r Repository) string {
	lines := make([]string, 0, len(r.Branches))
	for _, b := range r.Branches {
		marker := "  "
		if b.Name == r.CurrentBranch {
			marker = "* "
		}
		lines = append(lines, marker+b.Name)
	}
	return strings.Join(lines, "\n")
}

// Package graph draws the simulated commit history as a column graph,
// newest commit first, with branch labels beside each head.
package graph

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/gitdojo/internal/sim"
)

// Symbols used for graph rendering.
const (
	SymbolHead     = "@"
	SymbolCommit   = "○"
	SymbolRoot     = "◆"
	SymbolMerge    = "◉"
	SymbolVertical = "│"
	SymbolSpace    = " "
)

// Ref is a branch label attached to a node.
type Ref struct {
	Name    string
	Color   string
	Current bool
}

// Node is one commit in graph order.
type Node struct {
	Hash    string
	Message string
	Parents []string
	Refs    []Ref
	IsHead  bool
}

// Styles configures the graph colors.
type Styles struct {
	Head    lipgloss.Style
	Commit  lipgloss.Style
	Root    lipgloss.Style
	Line    lipgloss.Style
	Hash    lipgloss.Style
	Message lipgloss.Style
}

// Nodes returns every commit reachable from any branch head, newest first.
// Merge duplicates collapse onto their original commit.
func Nodes(r sim.Repository) []Node {
	reachable := map[string]bool{}
	var stack []string
	for _, b := range r.Branches {
		stack = append(stack, b.Head)
	}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == "" || reachable[h] {
			continue
		}
		reachable[h] = true
		if c, ok := r.CommitByHash(h); ok {
			stack = append(stack, c.Parents...)
		}
	}

	head := r.Head()
	var nodes []Node
	emitted := map[string]bool{}
	for i := len(r.Commits) - 1; i >= 0; i-- {
		hash := r.Commits[i].Hash
		if !reachable[hash] || emitted[hash] {
			continue
		}
		emitted[hash] = true
		c, _ := r.CommitByHash(hash)
		nodes = append(nodes, Node{
			Hash:    c.Hash,
			Message: c.Message,
			Parents: c.Parents,
			Refs:    refsFor(r, c.Hash),
			IsHead:  c.Hash == head,
		})
	}
	return nodes
}

func refsFor(r sim.Repository, hash string) []Ref {
	var refs []Ref
	for _, b := range r.Branches {
		if b.Head != hash {
			continue
		}
		ref := Ref{Name: b.Name, Color: b.Color, Current: b.Name == r.CurrentBranch}
		if ref.Current {
			refs = append([]Ref{ref}, refs...)
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// Renderer generates graph prefixes for a sequence of nodes.
type Renderer struct {
	activeColumns []string // hashes each column is waiting for
	styles        Styles
}

// NewRenderer creates a new graph renderer with the given styles.
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Reset clears the renderer state for a new graph.
func (r *Renderer) Reset() {
	r.activeColumns = nil
}

// RenderNode returns the graph prefix for n. Call it in graph order.
func (r *Renderer) RenderNode(n Node) string {
	column := r.findColumn(n.Hash)

	var b strings.Builder
	for i := 0; i < column; i++ {
		b.WriteString(r.columnGlyph(i))
		b.WriteString(SymbolSpace)
	}

	switch {
	case n.IsHead:
		b.WriteString(r.styles.Head.Render(SymbolHead))
	case len(n.Parents) == 0:
		b.WriteString(r.styles.Root.Render(SymbolRoot))
	case len(n.Parents) > 1:
		b.WriteString(r.styles.Commit.Render(SymbolMerge))
	default:
		b.WriteString(r.styles.Commit.Render(SymbolCommit))
	}
	b.WriteString(SymbolSpace)

	for i := column + 1; i < len(r.activeColumns); i++ {
		b.WriteString(r.columnGlyph(i))
		b.WriteString(SymbolSpace)
	}

	r.updateColumns(n.Parents, column)
	return b.String()
}

// RenderConnector returns the line drawn between two nodes, or "" when no
// column is open.
func (r *Renderer) RenderConnector() string {
	if len(r.activeColumns) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range r.activeColumns {
		b.WriteString(r.columnGlyph(i))
		b.WriteString(SymbolSpace)
	}
	return strings.TrimRight(b.String(), SymbolSpace)
}

func (r *Renderer) columnGlyph(i int) string {
	if i < len(r.activeColumns) && r.activeColumns[i] != "" {
		return r.styles.Line.Render(SymbolVertical)
	}
	return SymbolSpace
}

func (r *Renderer) findColumn(hash string) int {
	for i, h := range r.activeColumns {
		if h == hash {
			return i
		}
	}
	for i, h := range r.activeColumns {
		if h == "" {
			return i
		}
	}
	return len(r.activeColumns)
}

func (r *Renderer) updateColumns(parents []string, column int) {
	for len(r.activeColumns) <= column {
		r.activeColumns = append(r.activeColumns, "")
	}
	r.activeColumns[column] = ""

	// another column may already wait for the same parent
	for _, p := range parents {
		if p == "" || r.waitingFor(p) {
			continue
		}
		if r.activeColumns[column] == "" {
			r.activeColumns[column] = p
			continue
		}
		placed := false
		for j := range r.activeColumns {
			if r.activeColumns[j] == "" {
				r.activeColumns[j] = p
				placed = true
				break
			}
		}
		if !placed {
			r.activeColumns = append(r.activeColumns, p)
		}
	}

	for len(r.activeColumns) > 0 && r.activeColumns[len(r.activeColumns)-1] == "" {
		r.activeColumns = r.activeColumns[:len(r.activeColumns)-1]
	}
}

func (r *Renderer) waitingFor(hash string) bool {
	for _, h := range r.activeColumns {
		if h == hash {
			return true
		}
	}
	return false
}

// Render draws the whole graph for r, one string per line.
func Render(r sim.Repository, styles Styles) []string {
	nodes := Nodes(r)
	if len(nodes) == 0 {
		return nil
	}

	g := NewRenderer(styles)
	var lines []string
	for i, n := range nodes {
		lines = append(lines, g.RenderNode(n)+label(n, styles))
		if i == len(nodes)-1 {
			break
		}
		if c := g.RenderConnector(); c != "" {
			lines = append(lines, c)
		}
	}
	return lines
}

func label(n Node, styles Styles) string {
	parts := []string{styles.Hash.Render(n.Hash)}
	if len(n.Refs) > 0 {
		names := make([]string, 0, len(n.Refs))
		for _, ref := range n.Refs {
			name := ref.Name
			if ref.Current {
				name = "HEAD -> " + name
			}
			st := lipgloss.NewStyle().Bold(ref.Current)
			if ref.Color != "" {
				st = st.Foreground(lipgloss.Color(ref.Color))
			}
			names = append(names, st.Render(name))
		}
		parts = append(parts, "("+strings.Join(names, ", ")+")")
	}
	parts = append(parts, styles.Message.Render(n.Message))
	return strings.Join(parts, " ")
}

package graph

import (
	"testing"

	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainStyles() Styles {
	return Styles{}
}

func mergedRepo(t *testing.T) sim.Repository {
	t.Helper()
	e := sim.NewEngine(sim.WithHash(sim.SequenceHash("h")))
	repo := sim.Hydrate(sim.Seed{
		IsInitialized: true,
		Files: []sim.SeedFile{
			{Name: "a.txt", Status: sim.StatusCommitted},
			{Name: "b.txt", Status: sim.StatusCommitted},
		},
		Branches: []string{"main", "feature"},
		Commits: []sim.SeedCommit{
			{Message: "Initial commit", Files: []string{"a.txt"}, Branch: "main"},
			{Message: "feature work", Files: []string{"b.txt"}, Branch: "feature"},
		},
	}, e.Hash())
	repo, res := e.Exec(repo, "git merge feature")
	require.True(t, res.Changed, res.Output)
	return repo
}

func TestNodesCollapseMergeDuplicates(t *testing.T) {
	nodes := Nodes(mergedRepo(t))
	require.Len(t, nodes, 3)
	assert.Equal(t, "h3", nodes[0].Hash)
	assert.True(t, nodes[0].IsHead)
	assert.Equal(t, []Ref{{Name: "main", Color: sim.ColorFor(0), Current: true}}, nodes[0].Refs)
	assert.Equal(t, "h2", nodes[1].Hash)
	assert.Equal(t, []Ref{{Name: "feature", Color: sim.ColorFor(1)}}, nodes[1].Refs)
	assert.Equal(t, "h1", nodes[2].Hash)
	assert.Empty(t, nodes[2].Parents)
}

func TestRenderMergeGraph(t *testing.T) {
	lines := Render(mergedRepo(t), plainStyles())
	assert.Equal(t, []string{
		"@ h3 (HEAD -> main) Merge branch 'feature' into main",
		"│ │",
		"│ ○ h2 (feature) feature work",
		"│",
		"◆ h1 Initial commit",
	}, lines)
}

func TestRenderDivergedBranches(t *testing.T) {
	e := sim.NewEngine(sim.WithHash(sim.SequenceHash("h")))
	repo := sim.Hydrate(sim.Seed{
		IsInitialized: true,
		Files:         []sim.SeedFile{{Name: "a.txt", Status: sim.StatusCommitted}},
		Commits:       []sim.SeedCommit{{Message: "base", Files: []string{"a.txt"}}},
	}, e.Hash())
	repo.Files = append(repo.Files, sim.File{ID: "f2", Name: "b.txt", Status: sim.StatusUntracked})
	repo, _ = e.Exec(repo, "git checkout -b topic")
	repo, _ = e.Exec(repo, "git add b.txt")
	repo, _ = e.Exec(repo, `git commit -m "topic work"`)

	lines := Render(repo, plainStyles())
	assert.Equal(t, []string{
		"@ h2 (HEAD -> topic) topic work",
		"│",
		"◆ h1 (main) base",
	}, lines)
}

func TestRenderEmpty(t *testing.T) {
	assert.Nil(t, Render(sim.Repository{IsInitialized: true}, plainStyles()))
}

func TestRendererSideBranch(t *testing.T) {
	g := NewRenderer(plainStyles())
	assert.Equal(t, "○ ", g.RenderNode(Node{Hash: "x", Parents: []string{"base"}}))
	assert.Equal(t, "│ ○ ", g.RenderNode(Node{Hash: "y", Parents: []string{"base"}}))
	assert.Equal(t, "│", g.RenderConnector())
	assert.Equal(t, "◆ ", g.RenderNode(Node{Hash: "base"}))
	assert.Empty(t, g.RenderConnector())

	g.Reset()
	assert.Equal(t, "@ ", g.RenderNode(Node{Hash: "z", IsHead: true}))
}

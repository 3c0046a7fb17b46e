package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/scenario"
	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelGreets(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	info := linesOf(m, lineInfo)
	require.NotEmpty(t, info)
	assert.Equal(t, "Scenario: Your first repository", info[0])
	assert.True(t, m.showGraph)
	assert.Equal(t, "$ ", m.input.Prompt)
}

func TestSubmitRunsSimulator(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)

	assert.Nil(t, typeLine(m, "git init"))
	assert.True(t, m.Session().Model().IsInitialized)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, linesOf(m, lineCommand), "git init")
	assert.Contains(t, linesOf(m, lineOutput), "Initialized empty Git repository in /home/learner/project/.git/")

	typeLine(m, "  git status  ")
	history := m.Session().History()
	require.Len(t, history, 2)
	assert.Equal(t, "git status", history[1].Command)
}

func TestEmptyLineEchoesPrompt(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	typeLine(m, "")
	assert.Equal(t, []string{""}, linesOf(m, lineCommand))
	assert.Empty(t, m.recall)
	assert.Len(t, m.Session().History(), 1)
}

func TestCompletionBannerShownOnce(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	for _, line := range []string{"git init", "git add .", `git commit -m "Initial commit"`} {
		typeLine(m, line)
	}
	assert.True(t, m.completed)
	assert.Len(t, linesOf(m, lineSuccess), 1)

	typeLine(m, "git status")
	assert.Len(t, linesOf(m, lineSuccess), 1)
}

func TestTerminalBuiltins(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	typeLine(m, "git init")

	typeLine(m, "hint")
	typeLine(m, "HINT")
	assert.Equal(t, []string{
		"hint: Start with `git init` to create the repository.",
		"hint: `git status` shows which files git does not track yet.",
	}, linesOf(m, lineHint))

	typeLine(m, "clear")
	assert.Empty(t, m.lines)
	assert.True(t, m.Session().Model().IsInitialized, "clear keeps the model")

	typeLine(m, "reset")
	assert.False(t, m.Session().Model().IsInitialized)
	assert.Empty(t, m.Session().History())
	assert.Equal(t, 0, m.hintIdx)

	typeLine(m, "help")
	assert.True(t, m.showHelp)
	press(m, tea.KeyEnter)
	assert.False(t, m.showHelp)

	cmd := typeLine(m, "exit")
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBuiltinWithArgumentsGoesToSimulator(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	typeLine(m, "git init")
	typeLine(m, "clear screen")
	assert.Contains(t, linesOf(m, lineOutput), "bash: clear: command not found")
}

func TestHintWithoutHints(t *testing.T) {
	sc := builtinScenario(t, "first-repo")
	sc.Hints = nil
	m := NewModel(testConfig(), sc)

	typeLine(m, "hint")
	assert.Contains(t, linesOf(m, lineError), "hint: not available in this scenario")
	assert.Nil(t, press(m, tea.KeyCtrlT))
	assert.Empty(t, linesOf(m, lineHint))
}

func TestQuestionMarkOpensHelpOnlyOnEmptyInput(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)

	pressRune(m, '?')
	assert.True(t, m.showHelp)
	pressRune(m, 'x')
	assert.False(t, m.showHelp)
	assert.Empty(t, m.input.Value(), "closing help swallows the key")

	m.input.SetValue("git")
	m.input.CursorEnd()
	pressRune(m, '?')
	assert.False(t, m.showHelp)
	assert.Equal(t, "git?", m.input.Value())
}

func TestKeyBindings(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	typeLine(m, "git init")

	press(m, tea.KeyCtrlG)
	assert.False(t, m.showGraph)
	press(m, tea.KeyCtrlG)
	assert.True(t, m.showGraph)

	press(m, tea.KeyCtrlT)
	assert.Len(t, linesOf(m, lineHint), 1)

	press(m, tea.KeyCtrlL)
	assert.Empty(t, m.lines)

	press(m, tea.KeyCtrlR)
	assert.False(t, m.Session().Model().IsInitialized)

	cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	typeLine(m, "git init")
	typeLine(m, "git status")
	typeLine(m, "git status")

	m.input.SetValue("git a")
	press(m, tea.KeyUp)
	assert.Equal(t, "git status", m.input.Value())
	press(m, tea.KeyUp)
	assert.Equal(t, "git init", m.input.Value())
	press(m, tea.KeyUp)
	assert.Equal(t, "git init", m.input.Value())

	press(m, tea.KeyDown)
	assert.Equal(t, "git status", m.input.Value())
	press(m, tea.KeyDown)
	assert.Equal(t, "git a", m.input.Value(), "draft is restored")
	press(m, tea.KeyDown)
	assert.Equal(t, "git a", m.input.Value())
}

func TestHistoryLimitTrimsTranscript(t *testing.T) {
	cfg := testConfig()
	cfg.HistoryLimit = 4
	m := newTestModel(t, "first-repo", cfg)
	for range 5 {
		typeLine(m, "git status")
	}
	assert.Len(t, m.lines, 4)
	assert.Len(t, m.Session().History(), 5, "the session keeps its own history")
}

func TestScenarioReloaded(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	m.scenario.Path = "/tmp/first-repo.yaml"
	typeLine(m, "git init")

	other := builtinScenario(t, "staging")
	m.Update(scenarioReloadedMsg{scenario: other})

	assert.Equal(t, "staging", m.scenario.ID)
	assert.Equal(t, "/tmp/first-repo.yaml", m.scenario.Path)
	assert.Equal(t, other.Objectives, m.Session().Objectives())
	assert.Empty(t, m.Session().History())
	assert.Equal(t, []string{"Scenario reloaded: " + other.Title}, linesOf(m, lineInfo))
}

func TestScenarioReloadFailureKeepsSession(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	typeLine(m, "git init")

	m.Update(scenarioReloadedMsg{err: errors.New("boom")})
	assert.Equal(t, "first-repo", m.scenario.ID)
	assert.True(t, m.Session().Model().IsInitialized)
	assert.Contains(t, linesOf(m, lineError), "reload failed: boom")
}

func TestScenarioChangedWithoutWatcher(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	_, cmd := m.Update(scenarioChangedMsg{})
	assert.Nil(t, cmd)
}

func TestWatchIgnoredForBuiltins(t *testing.T) {
	m := newTestModel(t, "first-repo", nil, WithWatch(true))
	assert.Nil(t, m.watcher)
}

func TestWithLoaderIgnoresNil(t *testing.T) {
	m := newTestModel(t, "first-repo", nil, WithLoader(nil))
	assert.NotNil(t, m.loader)

	called := false
	m = newTestModel(t, "first-repo", nil, WithLoader(func(string) (*scenario.Scenario, error) {
		called = true
		return nil, nil
	}))
	_, _ = m.loader("x")
	assert.True(t, called)
}

func TestViewRendersPanes(t *testing.T) {
	m := newTestModel(t, "branching", nil)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, want := range []string{"gitdojo", "Terminal", "Objectives", "Files", "Graph", "README.md", "(HEAD -> main)"} {
		assert.Contains(t, view, want)
	}
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 40)

	press(m, tea.KeyCtrlG)
	assert.NotContains(t, m.View(), "(HEAD -> main)")

	pressRune(m, '?')
	assert.Contains(t, m.View(), "Toggle graph")
}

func TestViewShowsCompletion(t *testing.T) {
	m := newTestModel(t, "staging", nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	typeLine(m, "git add notes.txt")
	typeLine(m, `git commit -m "Add notes"`)
	require.True(t, m.completed)
	view := m.View()
	assert.Contains(t, view, "Scenario complete")
	assert.Equal(t, 3, strings.Count(view, "✓"))
}

func TestStatusCodes(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	tests := []struct {
		status sim.FileStatus
		want   string
	}{
		{sim.StatusUntracked, "??"},
		{sim.StatusModified, " M"},
		{sim.StatusStaged, "A "},
		{sim.StatusCommitted, "  "},
	}
	for _, tt := range tests {
		code, _ := m.statusCode(tt.status)
		assert.Equal(t, tt.want, code, tt.status)
	}
}

func TestQuittingViewIsEmpty(t *testing.T) {
	m := newTestModel(t, "first-repo", nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	typeLine(m, "exit")
	assert.Empty(t, m.View())
}

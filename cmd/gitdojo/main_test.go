package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/gitdojo/internal/config"
	"github.com/chmouel/gitdojo/internal/scenario"
	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solveFirstRepo = `# first snapshot
git init

git add .
git commit -m "Initial commit"
`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.Reader = strings.NewReader(stdin)
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"gitdojo"}, args...))
	return out.String(), err
}

func writeCustomScenario(t *testing.T, dir, id, title string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "internal", "scenario", "scenarios", "01-first-repo.yaml"))
	require.NoError(t, err)
	text := strings.Replace(string(data), "id: first-repo", "id: "+id, 1)
	text = strings.Replace(text, "title: Your first repository", "title: "+title, 1)
	path := filepath.Join(dir, id+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestCheckCompleteScript(t *testing.T) {
	out, err := runCLI(t, solveFirstRepo, "check", "--scenario", "first-repo")
	require.NoError(t, err)

	assert.Contains(t, out, "$ git init")
	assert.Contains(t, out, "Initialized empty Git repository")
	assert.Contains(t, out, `$ git commit -m "Initial commit"`)
	assert.NotContains(t, out, "first snapshot")
	assert.Contains(t, out, "4/4 objectives passed")
	assert.NotContains(t, out, "○")
}

func TestCheckIncompleteScript(t *testing.T) {
	out, err := runCLI(t, "git init\n", "check", "--scenario", "first-repo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errIncomplete))
	assert.Contains(t, out, "1/4 objectives passed")
	assert.Contains(t, out, "○")
}

func TestCheckScriptFile(t *testing.T) {
	script := filepath.Join(t.TempDir(), "solve.txt")
	require.NoError(t, os.WriteFile(script, []byte(solveFirstRepo), 0o600))

	out, err := runCLI(t, "", "check", "--scenario", "first-repo", "--script", script)
	require.NoError(t, err)
	assert.Contains(t, out, "4/4 objectives passed")
}

func TestCheckMissingScriptFile(t *testing.T) {
	_, err := runCLI(t, "", "check", "--scenario", "first-repo", "--script", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening script")
}

func TestCheckRequiresScenario(t *testing.T) {
	_, err := runCLI(t, solveFirstRepo, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check needs a scenario")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestCheckUnknownScenario(t *testing.T) {
	_, err := runCLI(t, "", "check", "--scenario", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")
}

func TestScenariosTable(t *testing.T) {
	out, err := runCLI(t, "", "scenarios")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "SOURCE")
	assert.Contains(t, out, "first-repo")
	assert.Contains(t, out, "Bringing work together")
	assert.Contains(t, out, "builtin")
}

func TestScenariosJSONWithCustomDir(t *testing.T) {
	dir := t.TempDir()
	path := writeCustomScenario(t, dir, "custom-drill", "Custom drill")

	out, err := runCLI(t, "", "scenarios", "--json", "--scenario-dir", dir)
	require.NoError(t, err)

	var got []scenarioSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 6)

	byID := map[string]scenarioSummary{}
	for _, s := range got {
		byID[s.ID] = s
	}
	custom, ok := byID["custom-drill"]
	require.True(t, ok)
	assert.False(t, custom.Builtin)
	assert.Equal(t, "Custom drill", custom.Title)
	assert.Equal(t, 4, custom.Objectives)
	assert.Equal(t, path, custom.Path)

	first := byID["first-repo"]
	assert.True(t, first.Builtin)
	assert.Empty(t, first.Path)
}

func TestPlayBuiltinsAndExit(t *testing.T) {
	in := strings.Join([]string{
		"help",
		"hint",
		"git init",
		"reset",
		"git status",
		"exit",
		"git init",
	}, "\n") + "\n"

	out, err := runCLI(t, in, "play", "--scenario", "first-repo")
	require.NoError(t, err)

	assert.Contains(t, out, "Your first repository")
	assert.Contains(t, out, "Anything else is run as a git command.")
	assert.Contains(t, out, "hint: Start with `git init` to create the repository.")
	assert.Contains(t, out, "Scenario reset.")
	assert.Contains(t, out, sim.MsgNotARepository)
	assert.Equal(t, 1, strings.Count(out, "Initialized empty Git repository"))
	// piped input is not a terminal, so no prompt is printed
	assert.NotContains(t, out, "$ ")
}

func TestPlayCompletes(t *testing.T) {
	out, err := runCLI(t, solveFirstRepo, "play", "--scenario", "first-repo")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Scenario complete!"))
}

func TestPlayUsesConfiguredDefaultScenario(t *testing.T) {
	out, err := runCLI(t, "exit\n", "--config", "gd.default_scenario=staging", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Choosing what to commit")
}

func TestPlayFallsBackToFirstScenario(t *testing.T) {
	out, err := runCLI(t, "exit\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Your first repository")
}

func TestUnknownThemeHasHint(t *testing.T) {
	_, err := runCLI(t, "", "--theme", "neon-nightmare", "scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "neon-nightmare"`)

	hints := errors.GetAllHints(err)
	require.NotEmpty(t, hints)
	assert.Contains(t, hints[0], "dracula")
}

func TestInvalidConfigOverride(t *testing.T) {
	_, err := runCLI(t, "", "--config", "gd.nope=1", "scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestPrintErrorIncludesHints(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WithHint(errors.New("boom"), "try again")
	printError(&buf, err)
	assert.Equal(t, "Error: boom\nhint: try again\n", buf.String())
}

func TestBuildScenarioOptions(t *testing.T) {
	list := []*scenario.Scenario{
		{ID: "first-repo", Title: "Your first repository", Builtin: true},
		{ID: "mine", Title: "Mine"},
	}
	options := buildScenarioOptions(list)
	require.Len(t, options, 2)
	assert.Equal(t, "Your first repository", options[0].Key)
	assert.Equal(t, "first-repo", options[0].Value)
	assert.Equal(t, "Mine (custom)", options[1].Key)
	assert.Equal(t, "mine", options[1].Value)
}

func TestResolveScenarioOrder(t *testing.T) {
	cfg := config.DefaultConfig()

	sc, err := resolveScenario(context.Background(), cfg, "merging", nil, true)
	require.NoError(t, err)
	assert.Equal(t, "merging", sc.ID)

	cfg.DefaultScenario = "undo"
	sc, err = resolveScenario(context.Background(), cfg, "", nil, true)
	require.NoError(t, err)
	assert.Equal(t, "undo", sc.ID)

	cfg.DefaultScenario = ""
	sc, err = resolveScenario(context.Background(), cfg, "", strings.NewReader(""), true)
	require.NoError(t, err)
	assert.Equal(t, fallbackScenario, sc.ID)
}

func TestResolveScenarioUsesPickerOnTerminal(t *testing.T) {
	origTerminal, origPicker := isTerminal, pickScenarioFunc
	t.Cleanup(func() {
		isTerminal = origTerminal
		pickScenarioFunc = origPicker
	})

	var offered []string
	isTerminal = func(uintptr) bool { return true }
	pickScenarioFunc = func(_ context.Context, list []*scenario.Scenario) (string, error) {
		for _, s := range list {
			offered = append(offered, s.ID)
		}
		return "branching", nil
	}

	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer f.Close()

	sc, err := resolveScenario(context.Background(), config.DefaultConfig(), "", f, true)
	require.NoError(t, err)
	assert.Equal(t, "branching", sc.ID)
	assert.Contains(t, offered, "first-repo")

	// play never opens the picker
	offered = nil
	sc, err = resolveScenario(context.Background(), config.DefaultConfig(), "", f, false)
	require.NoError(t, err)
	assert.Equal(t, fallbackScenario, sc.ID)
	assert.Empty(t, offered)
}

func TestResolveScenarioPickerCancelled(t *testing.T) {
	origTerminal, origPicker := isTerminal, pickScenarioFunc
	t.Cleanup(func() {
		isTerminal = origTerminal
		pickScenarioFunc = origPicker
	})

	isTerminal = func(uintptr) bool { return true }
	pickScenarioFunc = func(context.Context, []*scenario.Scenario) (string, error) {
		return "", errors.New("user aborted")
	}

	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer f.Close()

	_, err = resolveScenario(context.Background(), config.DefaultConfig(), "", f, true)
	require.Error(t, err)
}

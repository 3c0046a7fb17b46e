package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/config"
	"github.com/chmouel/gitdojo/internal/scenario"
	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/chmouel/gitdojo/internal/theme"
	"github.com/stretchr/testify/require"
)

func builtinScenario(t *testing.T, id string) *scenario.Scenario {
	t.Helper()
	s, err := scenario.NewCatalog("").Find(id)
	require.NoError(t, err)
	return s
}

func testConfig() *config.AppConfig {
	cfg := config.DefaultConfig()
	cfg.Theme = theme.DraculaName
	return cfg
}

func newTestModel(t *testing.T, id string, cfg *config.AppConfig, opts ...Option) *Model {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	opts = append([]Option{WithSessionOptions(sim.WithHash(sim.SequenceHash("h")))}, opts...)
	return NewModel(cfg, builtinScenario(t, id), opts...)
}

func typeLine(m *Model, line string) tea.Cmd {
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func press(m *Model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func linesOf(m *Model, kind lineKind) []string {
	var out []string
	for _, l := range m.lines {
		if l.kind == kind {
			out = append(out, l.text)
		}
	}
	return out
}

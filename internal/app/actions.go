package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/app/commands"
	"github.com/chmouel/gitdojo/internal/log"
)

func (m *Model) buildRegistry() *commands.Registry {
	r := commands.NewRegistry()
	commands.RegisterSessionActions(r, commands.SessionHandlers{
		Reset:        m.resetScenario,
		Hint:         m.showHint,
		HintsPresent: func() bool { return len(m.scenario.Hints) > 0 },
		Quit:         m.quit,
	})
	commands.RegisterViewActions(r, commands.ViewHandlers{
		ToggleGraph: func() tea.Cmd {
			m.showGraph = !m.showGraph
			return nil
		},
		ToggleHelp: func() tea.Cmd {
			m.showHelp = !m.showHelp
			return nil
		},
	})
	commands.RegisterTerminalActions(r, commands.TerminalHandlers{
		Clear: func() tea.Cmd {
			m.lines = nil
			m.refreshTerminal()
			return nil
		},
		HistoryPrev: m.recallPrev,
		HistoryNext: m.recallNext,
	})
	return r
}

func (m *Model) resetScenario() tea.Cmd {
	m.session.Reset()
	m.lines = nil
	m.completed = false
	m.hintIdx = 0
	log.Info("scenario reset", "id", m.scenario.ID)
	m.printInfo("Scenario reset: " + m.scenario.Title)
	return nil
}

func (m *Model) showHint() tea.Cmd {
	hint, ok := m.scenario.Hint(m.hintIdx)
	if !ok {
		m.printInfo("No hints for this scenario.")
		return nil
	}
	m.hintIdx++
	m.appendLine(lineHint, "hint: "+hint)
	m.refreshTerminal()
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

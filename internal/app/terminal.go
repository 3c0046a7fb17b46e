package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/log"
)

type lineKind int

const (
	lineCommand lineKind = iota
	lineOutput
	lineInfo
	lineHint
	lineError
	lineSuccess
)

// termLine is one entry of the terminal transcript.
type termLine struct {
	kind lineKind
	text string
}

// submit runs the current input line, either as a terminal built-in or
// through the simulator.
func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	m.draft = ""

	trimmed := strings.TrimSpace(line)
	m.appendLine(lineCommand, trimmed)
	if trimmed == "" {
		m.session.Run("")
		m.refreshTerminal()
		return nil
	}
	m.remember(trimmed)

	if fields := strings.Fields(trimmed); len(fields) == 1 {
		if id, ok := m.registry.ForBuiltin(strings.ToLower(fields[0])); ok {
			log.Debug("builtin", "name", fields[0], "action", id)
			if !m.registry.Enabled(id) {
				m.appendLine(lineError, fields[0]+": not available in this scenario")
				m.refreshTerminal()
				return nil
			}
			cmd := m.registry.Execute(id)
			m.refreshTerminal()
			return cmd
		}
	}

	entry := m.session.Run(trimmed)
	res := m.session.LastResult()
	log.Debug("command", "line", entry.Command, "action", string(res.Action))
	if entry.Output != "" {
		for _, out := range strings.Split(entry.Output, "\n") {
			m.appendLine(lineOutput, out)
		}
	}
	m.checkCompletion()
	m.refreshTerminal()
	return nil
}

func (m *Model) checkCompletion() {
	if m.completed || !m.session.Complete() {
		return
	}
	m.completed = true
	m.appendLine(lineSuccess, "Scenario complete! Every objective passes.")
	log.Info("scenario complete", "id", m.scenario.ID, "commands", len(m.session.History()))
}

func (m *Model) remember(line string) {
	if n := len(m.recall); n == 0 || m.recall[n-1] != line {
		m.recall = append(m.recall, line)
	}
	m.recallIdx = len(m.recall)
}

func (m *Model) appendLine(kind lineKind, text string) {
	m.lines = append(m.lines, termLine{kind: kind, text: text})
	if limit := m.config.HistoryLimit; limit > 0 && len(m.lines) > limit {
		m.lines = append([]termLine(nil), m.lines[len(m.lines)-limit:]...)
	}
}

func (m *Model) printInfo(text string) {
	m.appendLine(lineInfo, text)
	m.refreshTerminal()
}

func (m *Model) printError(text string) {
	m.appendLine(lineError, text)
	m.refreshTerminal()
}

func (m *Model) recallPrev() tea.Cmd {
	if len(m.recall) == 0 || m.recallIdx == 0 {
		return nil
	}
	if m.recallIdx == len(m.recall) {
		m.draft = m.input.Value()
	}
	m.recallIdx--
	m.input.SetValue(m.recall[m.recallIdx])
	m.input.CursorEnd()
	return nil
}

func (m *Model) recallNext() tea.Cmd {
	if m.recallIdx >= len(m.recall) {
		return nil
	}
	m.recallIdx++
	if m.recallIdx == len(m.recall) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.recall[m.recallIdx])
	}
	m.input.CursorEnd()
	return nil
}

package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/log"
	"github.com/chmouel/gitdojo/internal/scenario"
)

type (
	scenarioChangedMsg  struct{}
	scenarioReloadedMsg struct {
		scenario *scenario.Scenario
		err      error
	}
)

func (m *Model) waitForScenarioChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.NextEvent()
	if events == nil {
		return nil
	}
	done := m.watcher.Done
	return func() tea.Msg {
		select {
		case <-events:
			return scenarioChangedMsg{}
		case <-done:
			return nil
		}
	}
}

func (m *Model) handleScenarioChanged() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	m.watcher.ResetWaiting()
	wait := m.waitForScenarioChange()
	path := m.watcher.Path
	load := m.loader
	return tea.Batch(wait, func() tea.Msg {
		sc, err := load(path)
		return scenarioReloadedMsg{scenario: sc, err: err}
	})
}

func (m *Model) handleScenarioReloaded(msg scenarioReloadedMsg) {
	if msg.err != nil {
		log.Warn("scenario reload failed", "path", m.scenario.Path, "err", msg.err)
		m.printError("reload failed: " + msg.err.Error())
		return
	}
	sc := msg.scenario
	if sc.Path == "" {
		sc.Path = m.scenario.Path
	}
	m.scenario = sc
	m.session.Reload(sc.Seed, sc.Objectives)
	m.lines = nil
	m.completed = false
	m.hintIdx = 0
	log.Info("scenario reloaded", "id", sc.ID, "path", sc.Path)
	m.printInfo("Scenario reloaded: " + sc.Title)
}

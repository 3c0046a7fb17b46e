// Package app implements the gitdojo terminal UI: a simulated shell on the
// left and live views of the simulated repository on the right.
package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/app/commands"
	"github.com/chmouel/gitdojo/internal/app/services"
	"github.com/chmouel/gitdojo/internal/config"
	"github.com/chmouel/gitdojo/internal/log"
	"github.com/chmouel/gitdojo/internal/scenario"
	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/chmouel/gitdojo/internal/theme"
)

// Model is the bubbletea model for one scenario run.
type Model struct {
	config   *config.AppConfig
	theme    *theme.Theme
	scenario *scenario.Scenario
	session  *sim.Session
	registry *commands.Registry
	watcher  *services.ScenarioWatchService
	loader   func(path string) (*scenario.Scenario, error)

	input    textinput.Model
	terminal viewport.Model

	lines     []termLine
	recall    []string
	recallIdx int
	draft     string
	hintIdx   int

	showGraph bool
	showHelp  bool
	completed bool
	quitting  bool

	windowWidth  int
	windowHeight int
}

// Option configures a Model.
type Option func(*Model)

// WithSessionOptions forwards options to the simulator session, e.g. a
// deterministic hash generator.
func WithSessionOptions(opts ...sim.Option) Option {
	return func(m *Model) {
		m.session = m.scenario.NewSession(opts...)
	}
}

// WithWatch reloads the scenario whenever its file changes.
func WithWatch(enabled bool) Option {
	return func(m *Model) {
		if enabled && m.scenario.Path != "" {
			m.watcher = services.NewScenarioWatchService(m.scenario.Path, log.Printf)
		}
	}
}

// WithLoader overrides how a watched scenario is read back from disk.
func WithLoader(load func(path string) (*scenario.Scenario, error)) Option {
	return func(m *Model) {
		if load != nil {
			m.loader = load
		}
	}
}

// NewModel creates the model for sc.
func NewModel(cfg *config.AppConfig, sc *scenario.Scenario, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.Placeholder = "type a git command, or help"
	ti.CharLimit = 256
	ti.Focus()

	m := &Model{
		config:    cfg,
		theme:     theme.GetTheme(cfg.Theme),
		scenario:  sc,
		session:   sc.NewSession(sim.WithHash(sim.RandomHashOfLength(cfg.HashLength))),
		loader:    scenario.Load,
		input:     ti,
		terminal:  viewport.New(80, 20),
		showGraph: cfg.ShowGraph,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.applyTheme()
	m.registry = m.buildRegistry()
	m.printInfo("Scenario: " + sc.Title)
	if desc := strings.TrimSpace(sc.Description); desc != "" {
		m.printInfo(desc)
	}
	m.printInfo("Type `help` for the built-in commands.")
	log.Info("scenario started", "id", sc.ID, "path", sc.Path)
	return m
}

// Init starts the cursor blink and, in watch mode, the scenario watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		if _, err := m.watcher.Start(); err != nil {
			log.Warn("scenario watch disabled", "err", err)
			m.printError("watch disabled: " + err.Error())
			m.watcher = nil
		} else {
			cmds = append(cmds, m.waitForScenarioChange())
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case scenarioChangedMsg:
		return m, m.handleScenarioChanged()

	case scenarioReloadedMsg:
		m.handleScenarioReloaded(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		switch key {
		case "ctrl+c":
			return m, m.registry.Execute("quit")
		default:
			m.showHelp = false
			return m, nil
		}
	}

	if key == "enter" {
		return m, m.submit()
	}

	if id, ok := m.registry.ForKey(key); ok {
		// "?" is a normal character once the learner started typing
		if id == "help" && m.input.Value() != "" {
			return m.updateInput(msg)
		}
		return m, m.registry.Execute(id)
	}

	return m.updateInput(msg)
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Session exposes the running simulator session.
func (m *Model) Session() *sim.Session {
	return m.session
}

// Close releases the watcher.
func (m *Model) Close() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

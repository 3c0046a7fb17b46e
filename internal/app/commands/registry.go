// Package commands holds the TUI action table. Key bindings, terminal
// built-ins and the help screen all resolve through the same registry.
package commands

import tea "github.com/charmbracelet/bubbletea"

const (
	sectionSession  = "Session"
	sectionView     = "View"
	sectionTerminal = "Terminal"
)

// Action describes one user-invokable action.
type Action struct {
	ID          string
	Label       string
	Description string
	Section     string
	Keys        []string // key strings as reported by tea.KeyMsg.String()
	Builtin     string   // terminal word that triggers the action, if any
	Handler     func() tea.Cmd
	Available   func() bool
}

// Registry stores actions in registration order.
type Registry struct {
	actions   []Action
	byID      map[string]int
	byKey     map[string]string
	byBuiltin map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:      make(map[string]int),
		byKey:     make(map[string]string),
		byBuiltin: make(map[string]string),
	}
}

// Register adds actions to the registry. A later action with the same ID,
// key or builtin replaces the earlier binding.
func (r *Registry) Register(actions ...Action) {
	for _, action := range actions {
		if i, ok := r.byID[action.ID]; ok && action.ID != "" {
			r.actions[i] = action
		} else {
			r.actions = append(r.actions, action)
			if action.ID != "" {
				r.byID[action.ID] = len(r.actions) - 1
			}
		}
		for _, k := range action.Keys {
			r.byKey[k] = action.ID
		}
		if action.Builtin != "" {
			r.byBuiltin[action.Builtin] = action.ID
		}
	}
}

// Actions returns the registered actions in order.
func (r *Registry) Actions() []Action {
	return r.actions
}

// Get returns the action with the given ID.
func (r *Registry) Get(id string) (Action, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Action{}, false
	}
	return r.actions[i], true
}

// ForKey returns the ID bound to key.
func (r *Registry) ForKey(key string) (string, bool) {
	id, ok := r.byKey[key]
	return id, ok
}

// ForBuiltin returns the ID bound to a terminal built-in word.
func (r *Registry) ForBuiltin(word string) (string, bool) {
	id, ok := r.byBuiltin[word]
	return id, ok
}

// Enabled reports whether the action exists and is currently available.
func (r *Registry) Enabled(id string) bool {
	action, ok := r.Get(id)
	if !ok || action.Handler == nil {
		return false
	}
	return action.Available == nil || action.Available()
}

// Execute runs the handler for an action ID. Unknown or unavailable
// actions return nil.
func (r *Registry) Execute(id string) tea.Cmd {
	if !r.Enabled(id) {
		return nil
	}
	action, _ := r.Get(id)
	return action.Handler()
}

// SessionHandlers holds callbacks for simulator session actions.
type SessionHandlers struct {
	Reset        func() tea.Cmd
	Hint         func() tea.Cmd
	HintsPresent func() bool
	Quit         func() tea.Cmd
}

// RegisterSessionActions registers the session actions.
func RegisterSessionActions(r *Registry, h SessionHandlers) {
	r.Register(
		Action{ID: "reset", Label: "Reset scenario", Description: "Restore the scenario seed and clear history", Section: sectionSession, Keys: []string{"ctrl+r"}, Builtin: "reset", Handler: h.Reset},
		Action{ID: "hint", Label: "Show hint", Description: "Print the next scenario hint", Section: sectionSession, Keys: []string{"ctrl+t"}, Builtin: "hint", Handler: h.Hint, Available: h.HintsPresent},
		Action{ID: "quit", Label: "Quit", Description: "Leave the dojo", Section: sectionSession, Keys: []string{"ctrl+c", "esc"}, Builtin: "exit", Handler: h.Quit},
	)
}

// ViewHandlers holds callbacks for layout actions.
type ViewHandlers struct {
	ToggleGraph func() tea.Cmd
	ToggleHelp  func() tea.Cmd
}

// RegisterViewActions registers the layout actions.
func RegisterViewActions(r *Registry, h ViewHandlers) {
	r.Register(
		Action{ID: "graph-toggle", Label: "Toggle graph", Description: "Show or hide the commit graph pane", Section: sectionView, Keys: []string{"ctrl+g"}, Handler: h.ToggleGraph},
		Action{ID: "help", Label: "Help", Description: "Show key bindings and terminal built-ins", Section: sectionView, Keys: []string{"?"}, Builtin: "help", Handler: h.ToggleHelp},
	)
}

// TerminalHandlers holds callbacks for terminal pane actions.
type TerminalHandlers struct {
	Clear       func() tea.Cmd
	HistoryPrev func() tea.Cmd
	HistoryNext func() tea.Cmd
}

// RegisterTerminalActions registers the terminal actions.
func RegisterTerminalActions(r *Registry, h TerminalHandlers) {
	r.Register(
		Action{ID: "clear", Label: "Clear terminal", Description: "Clear the terminal view, history is kept", Section: sectionTerminal, Keys: []string{"ctrl+l"}, Builtin: "clear", Handler: h.Clear},
		Action{ID: "history-prev", Label: "Previous command", Description: "Recall the previous command", Section: sectionTerminal, Keys: []string{"up"}, Handler: h.HistoryPrev},
		Action{ID: "history-next", Label: "Next command", Description: "Recall the next command", Section: sectionTerminal, Keys: []string{"down"}, Handler: h.HistoryNext},
	)
}

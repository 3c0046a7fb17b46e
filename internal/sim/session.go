package sim

// HistoryEntry is one terminal exchange.
type HistoryEntry struct {
	Command string `json:"command"`
	Output  string `json:"output"`
}

// Session is a caller-owned simulator instance: a seed, the live model, the
// terminal history and the objectives. Sessions share nothing, so any number
// can run side by side. A Session is not safe for concurrent use.
type Session struct {
	engine     *Engine
	seed       Seed
	objectives []Objective
	repo       Repository
	history    []HistoryEntry
	last       Result
}

// NewSession hydrates seed with the engine's hash generator.
func NewSession(seed Seed, objectives []Objective, opts ...Option) *Session {
	s := &Session{
		engine:     NewEngine(opts...),
		seed:       seed,
		objectives: objectives,
	}
	s.repo = Hydrate(seed, s.engine.Hash())
	return s
}

// Run interprets and applies one line, appending it to the history.
func (s *Session) Run(line string) HistoryEntry {
	cmd := Parse(line)
	next, res := s.engine.Apply(s.repo, cmd)
	s.repo = next
	s.last = res
	entry := HistoryEntry{Command: cmd.Raw, Output: res.Output}
	s.history = append(s.history, entry)
	return entry
}

// Reset discards the live model and history and re-hydrates the original seed.
func (s *Session) Reset() {
	s.repo = Hydrate(s.seed, s.engine.Hash())
	s.history = nil
	s.last = Result{}
}

// Reload replaces seed and objectives, then resets.
func (s *Session) Reload(seed Seed, objectives []Objective) {
	s.seed = seed
	s.objectives = objectives
	s.Reset()
}

// Model returns a snapshot of the live repository.
func (s *Session) Model() Repository {
	return s.repo.Clone()
}

// History returns a copy of the terminal history.
func (s *Session) History() []HistoryEntry {
	return append([]HistoryEntry(nil), s.history...)
}

// LastResult returns the result of the most recent Run.
func (s *Session) LastResult() Result {
	return s.last
}

// Objectives returns the session objectives.
func (s *Session) Objectives() []Objective {
	return s.objectives
}

// Results evaluates the objectives against the live model.
func (s *Session) Results() []ObjectiveResult {
	return Evaluate(s.repo, s.objectives)
}

// Complete reports whether every objective passes.
func (s *Session) Complete() bool {
	return Complete(s.Results())
}

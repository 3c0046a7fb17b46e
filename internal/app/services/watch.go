// Package services holds the background helpers the TUI drives through
// tea.Cmds.
package services

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ScenarioWatchDebounce is the debounce window for watcher events.
const ScenarioWatchDebounce = 300 * time.Millisecond

// ScenarioWatchService signals when a scenario file changes on disk.
// Editors often replace files on save, so the parent directory is watched
// and events are filtered by name. A signal is sent once the file has been
// quiet for Debounce, so a burst of writes yields one reload of the final
// content.
type ScenarioWatchService struct {
	Started  bool
	Waiting  bool
	Path     string
	Debounce time.Duration
	Events   chan struct{}
	Done     chan struct{}
	Mu       sync.Mutex
	Watcher  *fsnotify.Watcher
	logf     func(string, ...any)
}

// NewScenarioWatchService creates a watcher for the scenario at path.
func NewScenarioWatchService(path string, logf func(string, ...any)) *ScenarioWatchService {
	return &ScenarioWatchService{Path: path, Debounce: ScenarioWatchDebounce, logf: logf}
}

// Start initialises the watcher and starts the background goroutine.
// Builtin scenarios have no path and are not watched.
func (w *ScenarioWatchService) Start() (bool, error) {
	if w.Started || w.Path == "" {
		return false, nil
	}
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return false, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Path = abs
	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run(watcher.Events, watcher.Errors)
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *ScenarioWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *ScenarioWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *ScenarioWatchService) ResetWaiting() {
	w.Waiting = false
}

// Signal notifies listeners of watcher activity.
func (w *ScenarioWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// Matches reports whether an event path refers to the watched file.
func (w *ScenarioWatchService) Matches(name string) bool {
	if name == "" {
		return false
	}
	return filepath.Clean(name) == w.Path
}

func (w *ScenarioWatchService) run(events <-chan fsnotify.Event, errs <-chan error) {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = ScenarioWatchDebounce
	}
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.Matches(event.Name) {
				continue
			}
			w.debugf("scenario watcher: %s %s", event.Op, event.Name)
			// every event pushes the deadline back
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.Signal()
		case err, ok := <-errs:
			if !ok {
				return
			}
			w.debugf("scenario watcher error: %v", err)
		}
	}
}

func (w *ScenarioWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}

package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioWatchWithoutPath(t *testing.T) {
	w := NewScenarioWatchService("", nil)
	started, err := w.Start()
	require.NoError(t, err)
	assert.False(t, started)
	assert.Nil(t, w.NextEvent())
	w.Stop()
}

func TestScenarioWatchSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drill.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: drill\n"), 0o600))

	var logged []string
	w := NewScenarioWatchService(path, func(format string, args ...any) {
		logged = append(logged, format)
	})
	started, err := w.Start()
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	ch := w.NextEvent()
	require.NotNil(t, ch)
	assert.Nil(t, w.NextEvent(), "only one waiter at a time")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("id: drill\ntitle: changed\n"), 0o600))

	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a watcher event")
	}
	w.ResetWaiting()
	assert.NotNil(t, w.NextEvent())
}

func TestScenarioWatchMatches(t *testing.T) {
	w := &ScenarioWatchService{Path: "/tmp/scenarios/drill.yaml"}
	assert.True(t, w.Matches("/tmp/scenarios/./drill.yaml"))
	assert.False(t, w.Matches("/tmp/scenarios/other.yaml"))
	assert.False(t, w.Matches(""))
}

func TestScenarioWatchSignalsAfterBurstSettles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drill.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: drill\n"), 0o600))

	w := NewScenarioWatchService(path, nil)
	w.Debounce = 200 * time.Millisecond
	started, err := w.Start()
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	ch := w.NextEvent()
	require.NotNil(t, ch)

	// truncate, then write in steps shorter than the debounce window
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	for _, part := range []string{"id: drill\n", "id: drill\ntitle: half\n", "id: drill\ntitle: done\n"} {
		time.Sleep(50 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte(part), 0o600))
	}
	lastWrite := time.Now()

	select {
	case <-ch:
		assert.GreaterOrEqual(t, time.Since(lastWrite), w.Debounce/2, "signal must wait for the writes to settle")
	case <-time.After(3 * time.Second):
		t.Fatal("expected a watcher event")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: done")

	// the burst collapses into a single signal
	w.ResetWaiting()
	next := w.NextEvent()
	require.NotNil(t, next)
	select {
	case <-next:
		t.Fatal("burst produced more than one signal")
	case <-time.After(2 * w.Debounce):
	}
}

func TestNewScenarioWatchServiceDefaultsDebounce(t *testing.T) {
	w := NewScenarioWatchService("drill.yaml", nil)
	assert.Equal(t, ScenarioWatchDebounce, w.Debounce)
}

func TestSignalAfterStopDoesNotBlock(t *testing.T) {
	w := &ScenarioWatchService{Events: make(chan struct{}, 1), Done: make(chan struct{})}
	w.Signal()
	w.Signal()
	close(w.Done)
	w.Signal()
	assert.Len(t, w.Events, 1)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/chmouel/gitdojo/internal/config"
	"github.com/chmouel/gitdojo/internal/log"
	"github.com/chmouel/gitdojo/internal/scenario"
	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/chmouel/gitdojo/internal/theme"
	"github.com/cockroachdb/errors"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// fallbackScenario is used when nothing else selects a scenario.
const fallbackScenario = "first-repo"

var (
	isTerminal = func(fd uintptr) bool {
		return term.IsTerminal(int(fd)) //nolint:gosec // fd comes from an *os.File
	}
	pickScenarioFunc = pickScenario
)

// loadConfig loads the configuration and applies the global flags on top.
func loadConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	errW := cmd.Root().ErrWriter
	if errW == nil {
		errW = os.Stderr
	}

	debugLog := cmd.String("debug-log")
	if debugLog != "" {
		openDebugLog(errW, debugLog)
	}

	cfg, err := config.LoadConfig(cmd.String("config-file"), cmd.StringSlice("config"))
	if err != nil {
		return nil, errors.Wrap(err, "error loading config")
	}

	if debugLog == "" {
		if cfg.DebugLog != "" {
			openDebugLog(errW, cfg.DebugLog)
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	} else {
		cfg.DebugLog = debugLog
	}
	log.SetLevel(cfg.LogLevel)

	if name := cmd.String("theme"); name != "" {
		normalized := theme.Normalize(name)
		if normalized == "" {
			return nil, errors.WithHintf(errors.Newf("unknown theme %q", name),
				"available themes: %s", strings.Join(theme.AvailableThemes(), ", "))
		}
		cfg.Theme = normalized
	}

	if dir := cmd.String("scenario-dir"); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, errors.Wrap(err, "error expanding scenario-dir")
		}
		cfg.ScenarioDir = expanded
	}

	if cmd.IsSet("watch") {
		cfg.WatchScenarios = cmd.Bool("watch")
	}

	log.Debug("config loaded", "path", cfg.Path, "theme", cfg.Theme, "scenario_dir", cfg.ScenarioDir)
	return cfg, nil
}

func openDebugLog(errW io.Writer, path string) {
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(errW, "Error opening debug log file %q: %v\n", path, err)
	}
}

// resolveScenario picks the scenario from --scenario, then the configured
// default, then an interactive picker when allowed, then the first builtin.
func resolveScenario(ctx context.Context, cfg *config.AppConfig, ref string, in io.Reader, allowPicker bool) (*scenario.Scenario, error) {
	catalog := scenario.NewCatalog(cfg.ScenarioDir)

	if ref == "" {
		ref = cfg.DefaultScenario
	}
	if ref != "" {
		return catalog.Find(ref)
	}

	if allowPicker && readerIsTerminal(in) {
		list, err := catalog.List()
		if err != nil {
			return nil, err
		}
		id, err := pickScenarioFunc(ctx, list)
		if err != nil {
			return nil, err
		}
		return catalog.Find(id)
	}

	return catalog.Find(fallbackScenario)
}

func readerIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(f.Fd())
}

func buildScenarioOptions(list []*scenario.Scenario) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(list))
	for _, s := range list {
		label := s.Title
		if !s.Builtin {
			label += " (custom)"
		}
		options = append(options, huh.NewOption(label, s.ID))
	}
	return options
}

func pickScenario(ctx context.Context, list []*scenario.Scenario) (string, error) {
	var id string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("gitdojo - pick a scenario").
			Options(buildScenarioOptions(list)...).
			Value(&id),
	)).RunWithContext(ctx)
	if err != nil {
		return "", errors.Wrap(err, "no scenario selected")
	}
	return id, nil
}

func sessionOptions(cfg *config.AppConfig) []sim.Option {
	return []sim.Option{sim.WithHash(sim.RandomHashOfLength(cfg.HashLength))}
}

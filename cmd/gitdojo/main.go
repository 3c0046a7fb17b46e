// Package main is the entry point for the gitdojo application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/app"
	"github.com/chmouel/gitdojo/internal/buildinfo"
	"github.com/chmouel/gitdojo/internal/log"
	"github.com/cockroachdb/errors"
	urfavecli "github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	err := newRootCommand().Run(context.Background(), os.Args)
	if cerr := log.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", cerr)
	}
	if err != nil {
		if !errors.Is(err, errIncomplete) {
			printError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "gitdojo",
		Usage:                 "Practice git in a simulated repository",
		Version:               buildinfo.String(),
		EnableShellCompletion: true,
		Flags:                 append(globalFlags(), scenarioFlag()),
		Commands: []*urfavecli.Command{
			playCommand(),
			checkCommand(),
			scenariosCommand(),
		},
		Action: runTUI,
	}
}

// printError prints err followed by any hints attached to it.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(ctx context.Context, cmd *urfavecli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := resolveScenario(ctx, cfg, cmd.String("scenario"), cmd.Root().Reader, true)
	if err != nil {
		return err
	}

	model := app.NewModel(cfg, sc, app.WithWatch(cfg.WatchScenarios))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()
	model.Close()
	if err != nil {
		return errors.Wrap(err, "error running app")
	}

	if model.Session().Complete() {
		fmt.Fprintf(cmd.Root().Writer, "Scenario %q complete.\n", sc.ID)
	}
	return nil
}

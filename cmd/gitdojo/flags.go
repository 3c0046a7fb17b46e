package main

import (
	"strings"

	"github.com/chmouel/gitdojo/internal/theme"
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns the flags shared by every command.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=gd.key=value",
		},
		&urfavecli.StringFlag{
			Name:    "debug-log",
			Usage:   "Path to debug log file",
			Sources: urfavecli.EnvVars("GITDOJO_DEBUG_LOG"),
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme (" + strings.Join(theme.AvailableThemes(), ", ") + ")",
		},
		&urfavecli.StringFlag{
			Name:  "scenario-dir",
			Usage: "Directory with extra scenario YAML files",
		},
		&urfavecli.BoolFlag{
			Name:  "watch",
			Usage: "Reload the scenario file when it changes",
		},
	}
}

// scenarioFlag selects a scenario by ID or YAML path.
func scenarioFlag() *urfavecli.StringFlag {
	return &urfavecli.StringFlag{
		Name:    "scenario",
		Aliases: []string{"s"},
		Usage:   "Scenario ID or path to a scenario YAML file",
	}
}

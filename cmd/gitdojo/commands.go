package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/chmouel/gitdojo/internal/log"
	"github.com/chmouel/gitdojo/internal/scenario"
	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/cockroachdb/errors"
	urfavecli "github.com/urfave/cli/v3"
)

// errIncomplete makes check exit non-zero without printing an error.
var errIncomplete = errors.New("scenario incomplete")

func playCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "play",
		Usage: "Play a scenario in a plain line-oriented shell",
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sc, err := resolveScenario(ctx, cfg, cmd.String("scenario"), cmd.Root().Reader, false)
			if err != nil {
				return err
			}
			root := cmd.Root()
			r := newREPL(sc, root.Writer, cfg.Prompt, readerIsTerminal(root.Reader), sessionOptions(cfg)...)
			return r.run(ctx, root.Reader)
		},
	}
}

func checkCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "check",
		Usage:     "Replay commands against a scenario and report its objectives",
		ArgsUsage: "[--script FILE]",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:  "script",
				Usage: "File with one command per line (default: stdin)",
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			if cmd.String("scenario") == "" {
				return errors.WithHint(errors.New("check needs a scenario"),
					"pass --scenario with an ID from `gitdojo scenarios` or a YAML path")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sc, err := resolveScenario(ctx, cfg, cmd.String("scenario"), cmd.Root().Reader, false)
			if err != nil {
				return err
			}

			in := cmd.Root().Reader
			if script := cmd.String("script"); script != "" {
				// #nosec G304 -- user supplied script path
				f, err := os.Open(script)
				if err != nil {
					return errors.Wrap(err, "opening script")
				}
				defer f.Close()
				in = f
			}

			complete, err := runCheck(ctx, in, cmd.Root().Writer, sc, sessionOptions(cfg)...)
			if err != nil {
				return err
			}
			if !complete {
				return errIncomplete
			}
			return nil
		},
	}
}

// runCheck replays the script on a fresh session, echoing each command and
// its output, then prints the objective table. Blank lines and lines
// starting with # are skipped.
func runCheck(ctx context.Context, in io.Reader, out io.Writer, sc *scenario.Scenario, opts ...sim.Option) (bool, error) {
	session := sc.NewSession(opts...)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry := session.Run(line)
		fmt.Fprintf(out, "$ %s\n", entry.Command)
		if entry.Output != "" {
			fmt.Fprintln(out, entry.Output)
		}
	}
	if err := scanner.Err(); err != nil {
		return false, errors.Wrap(err, "reading script")
	}

	results := session.Results()
	fmt.Fprintln(out)
	writeObjectives(out, results)

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	fmt.Fprintf(out, "%d/%d objectives passed\n", passed, len(results))
	log.Info("check finished", "scenario", sc.ID, "passed", passed, "total", len(results))
	return sim.Complete(results), nil
}

func writeObjectives(out io.Writer, results []sim.ObjectiveResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range results {
		mark := "○"
		if r.Passed {
			mark = "✓"
		}
		_, _ = fmt.Fprintf(w, "  %s\t%s\n", mark, r.Description)
	}
	_ = w.Flush()
}

type scenarioSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Objectives  int    `json:"objectives"`
	Builtin     bool   `json:"builtin"`
	Path        string `json:"path,omitempty"`
}

func scenariosCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "scenarios",
		Usage: "List the available scenarios",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			list, err := scenario.NewCatalog(cfg.ScenarioDir).List()
			if err != nil {
				return err
			}
			return writeScenarios(cmd.Root().Writer, list, cmd.Bool("json"))
		},
	}
}

func writeScenarios(out io.Writer, list []*scenario.Scenario, asJSON bool) error {
	if asJSON {
		summaries := make([]scenarioSummary, 0, len(list))
		for _, s := range list {
			summaries = append(summaries, scenarioSummary{
				ID:          s.ID,
				Title:       s.Title,
				Description: strings.TrimSpace(s.Description),
				Objectives:  len(s.Objectives),
				Builtin:     s.Builtin,
				Path:        s.Path,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tOBJECTIVES\tSOURCE")
	for _, s := range list {
		source := "builtin"
		if !s.Builtin {
			source = s.Path
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Title, len(s.Objectives), source)
	}
	return w.Flush()
}

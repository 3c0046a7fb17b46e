package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitdojo/internal/app/commands"
	"github.com/chmouel/gitdojo/internal/log"
	"github.com/chmouel/gitdojo/internal/scenario"
	"github.com/chmouel/gitdojo/internal/sim"
)

// repl is the line-oriented front end used by the play command. It shares
// the terminal built-ins with the TUI through the action registry.
type repl struct {
	scenario    *scenario.Scenario
	session     *sim.Session
	registry    *commands.Registry
	out         io.Writer
	prompt      string
	interactive bool
	hintIdx     int
	completed   bool
	done        bool
}

func newREPL(sc *scenario.Scenario, out io.Writer, prompt string, interactive bool, opts ...sim.Option) *repl {
	r := &repl{
		scenario:    sc,
		session:     sc.NewSession(opts...),
		out:         out,
		prompt:      prompt,
		interactive: interactive,
	}
	r.registry = commands.NewRegistry()
	commands.RegisterSessionActions(r.registry, commands.SessionHandlers{
		Reset:        r.reset,
		Hint:         r.hint,
		HintsPresent: func() bool { return len(sc.Hints) > 0 },
		Quit: func() tea.Cmd {
			r.done = true
			return nil
		},
	})
	commands.RegisterViewActions(r.registry, commands.ViewHandlers{
		ToggleHelp: r.help,
	})
	commands.RegisterTerminalActions(r.registry, commands.TerminalHandlers{
		Clear: r.clear,
	})
	return r
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	r.printf("%s\n", r.scenario.Title)
	if desc := strings.TrimSpace(r.scenario.Description); desc != "" {
		r.printf("%s\n", desc)
	}
	r.printObjectives()
	r.printf("Type `help` for the built-in commands, `exit` to leave.\n")

	scanner := bufio.NewScanner(in)
	for !r.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.interactive {
			r.printf("%s", r.prompt)
		}
		if !scanner.Scan() {
			break
		}
		r.handle(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if r.interactive && !r.done {
		r.printf("\n")
	}
	return nil
}

func (r *repl) handle(line string) {
	trimmed := strings.TrimSpace(line)
	if fields := strings.Fields(trimmed); len(fields) == 1 {
		if id, ok := r.registry.ForBuiltin(strings.ToLower(fields[0])); ok {
			if !r.registry.Enabled(id) {
				r.printf("%s: not available in this scenario\n", fields[0])
				return
			}
			r.registry.Execute(id)
			return
		}
	}

	entry := r.session.Run(trimmed)
	if entry.Output != "" {
		r.printf("%s\n", entry.Output)
	}
	if !r.completed && r.session.Complete() {
		r.completed = true
		r.printf("\nScenario complete! Every objective passes.\n")
		r.printObjectives()
		log.Info("scenario complete", "id", r.scenario.ID, "commands", len(r.session.History()))
	}
}

func (r *repl) reset() tea.Cmd {
	r.session.Reset()
	r.completed = false
	r.hintIdx = 0
	r.printf("Scenario reset.\n")
	r.printObjectives()
	return nil
}

func (r *repl) hint() tea.Cmd {
	if h, ok := r.scenario.Hint(r.hintIdx); ok {
		r.hintIdx++
		r.printf("hint: %s\n", h)
	}
	return nil
}

func (r *repl) help() tea.Cmd {
	for _, a := range r.registry.Actions() {
		if a.Builtin == "" || !r.registry.Enabled(a.ID) {
			continue
		}
		r.printf("  %-8s %s\n", a.Builtin, a.Description)
	}
	r.printf("Anything else is run as a git command.\n")
	return nil
}

func (r *repl) clear() tea.Cmd {
	if r.interactive {
		r.printf("\033[H\033[2J")
	}
	return nil
}

func (r *repl) printObjectives() {
	writeObjectives(r.out, r.session.Results())
}

func (r *repl) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

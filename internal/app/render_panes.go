package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/gitdojo/internal/app/graph"
	"github.com/chmouel/gitdojo/internal/sim"
	"github.com/muesli/reflow/wrap"
)

// renderBody renders the terminal on the left and the repository views on
// the right.
func (m *Model) renderBody(layout layoutDims) string {
	left := m.renderTerminalPane(layout)
	right := m.renderRightPane(layout)
	gap := lipgloss.NewStyle().
		Width(layout.gapX).
		Render(strings.Repeat(" ", layout.gapX))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

func (m *Model) renderTerminalPane(layout layoutDims) string {
	title := m.renderPaneTitle("Terminal", m.session.Model().CurrentBranch, true, layout.leftInnerWidth)
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.terminal.View(), m.input.View())
	return m.renderPane(content, true, layout.leftWidth, layout.bodyHeight)
}

func (m *Model) renderRightPane(layout layoutDims) string {
	panes := []string{
		m.renderObjectivesPane(layout),
		m.renderFilesPane(layout),
	}
	if m.showGraph {
		panes = append(panes, m.renderGraphPane(layout))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panes...)
}

func (m *Model) renderObjectivesPane(layout layoutDims) string {
	results := m.session.Results()
	passStyle := lipgloss.NewStyle().Foreground(m.theme.SuccessFg)
	pendingStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)

	badge := ""
	if m.completed {
		badge = "complete"
	}
	lines := []string{m.renderPaneTitle("Objectives", badge, false, layout.rightInnerWidth)}
	for _, r := range results {
		if r.Passed {
			lines = append(lines, passStyle.Render("✓ "+r.Description))
			continue
		}
		lines = append(lines, pendingStyle.Render("○ "+r.Description))
	}
	if m.completed {
		banner := lipgloss.NewStyle().
			Foreground(m.theme.AccentFg).
			Background(m.theme.SuccessFg).
			Bold(true).
			Padding(0, 1).
			Render("Scenario complete")
		lines = append(lines, banner)
	}
	return m.renderPane(strings.Join(lines, "\n"), false, layout.rightWidth, layout.objectivesHeight)
}

func (m *Model) renderFilesPane(layout layoutDims) string {
	repo := m.session.Model()
	lines := []string{m.renderPaneTitle("Files", fmt.Sprintf("%d", len(repo.Files)), false, layout.rightInnerWidth)}
	if len(repo.Files) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.MutedFg).Italic(true).Render("working tree is empty"))
	}
	for _, f := range repo.Files {
		lines = append(lines, m.renderFileLine(f, layout.rightInnerWidth))
	}
	return m.renderPane(strings.Join(lines, "\n"), false, layout.rightWidth, layout.filesHeight)
}

func (m *Model) renderFileLine(f sim.File, width int) string {
	code, color := m.statusCode(f.Status)
	icon := ""
	if m.config.ShowIcons {
		icon = iconWithSpace(deviconForName(f.Name))
	}
	codeStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	if f.Status == sim.StatusCommitted {
		nameStyle = nameStyle.Foreground(m.theme.MutedFg)
	}
	line := fmt.Sprintf("%s %s%s", codeStyle.Render(code), icon, nameStyle.Render(f.Name))
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// statusCode maps a file status to its short-status code and color.
func (m *Model) statusCode(s sim.FileStatus) (string, lipgloss.Color) {
	switch s {
	case sim.StatusUntracked:
		return "??", m.theme.UntrackFg
	case sim.StatusModified:
		return " M", m.theme.ModifiedFg
	case sim.StatusStaged:
		return "A ", m.theme.StagedFg
	default:
		return "  ", m.theme.MutedFg
	}
}

func (m *Model) renderGraphPane(layout layoutDims) string {
	lines := []string{m.renderPaneTitle("Graph", "", false, layout.rightInnerWidth)}
	graphLines := graph.Render(m.session.Model(), m.graphStyles())
	if len(graphLines) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.MutedFg).Italic(true).Render("no commits yet"))
	}
	for _, l := range graphLines {
		lines = append(lines, lipgloss.NewStyle().MaxWidth(layout.rightInnerWidth).Render(l))
	}
	return m.renderPane(strings.Join(lines, "\n"), false, layout.rightWidth, layout.graphHeight)
}

func (m *Model) graphStyles() graph.Styles {
	return graph.Styles{
		Head:    lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true),
		Commit:  lipgloss.NewStyle().Foreground(m.theme.TextFg),
		Root:    lipgloss.NewStyle().Foreground(m.theme.Yellow),
		Line:    lipgloss.NewStyle().Foreground(m.theme.BorderDim),
		Hash:    lipgloss.NewStyle().Foreground(m.theme.Yellow),
		Message: lipgloss.NewStyle().Foreground(m.theme.TextFg),
	}
}

// refreshTerminal re-renders the transcript into the viewport and keeps
// the newest line visible.
func (m *Model) refreshTerminal() {
	width := maxInt(1, m.terminal.Width)
	rendered := make([]string, 0, len(m.lines))
	for _, l := range m.lines {
		rendered = append(rendered, m.renderTermLine(l, width))
	}
	m.terminal.SetContent(strings.Join(rendered, "\n"))
	m.terminal.GotoBottom()
}

func (m *Model) renderTermLine(l termLine, width int) string {
	var style lipgloss.Style
	switch l.kind {
	case lineCommand:
		prompt := lipgloss.NewStyle().Foreground(m.theme.PromptFg).Bold(true).Render(m.config.Prompt)
		return prompt + lipgloss.NewStyle().Foreground(m.theme.CommandFg).Render(wrap.String(l.text, maxInt(1, width-len(m.config.Prompt))))
	case lineInfo:
		style = lipgloss.NewStyle().Foreground(m.theme.MutedFg).Italic(true)
	case lineHint:
		style = lipgloss.NewStyle().Foreground(m.theme.HintFg)
	case lineError:
		style = lipgloss.NewStyle().Foreground(m.theme.ErrorFg)
	case lineSuccess:
		style = lipgloss.NewStyle().Foreground(m.theme.SuccessFg).Bold(true)
	default:
		style = lipgloss.NewStyle().Foreground(m.theme.TextFg)
	}
	return style.Render(wrap.String(l.text, width))
}

func (m *Model) applyTheme() {
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(m.theme.PromptFg).Bold(true)
	m.input.TextStyle = lipgloss.NewStyle().Foreground(m.theme.CommandFg)
	m.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	m.input.Cursor.Style = lipgloss.NewStyle().Foreground(m.theme.Accent)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

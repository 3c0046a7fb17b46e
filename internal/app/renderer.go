package app

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI for the Bubble Tea program.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for window size before rendering full UI
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	layout := m.computeLayout()
	m.applyLayout(layout)

	header := m.renderHeader(layout)
	footer := m.renderFooter(layout)

	var body string
	if m.showHelp {
		body = m.renderHelp(layout)
	} else {
		body = m.renderBody(layout)
	}
	body = truncateToHeight(body, layout.bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

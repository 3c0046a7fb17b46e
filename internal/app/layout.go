package app

const (
	minLeftPaneWidth  = 40
	minRightPaneWidth = 30
	minPaneHeight     = 3
)

// layoutDims holds computed layout dimensions for the UI.
type layoutDims struct {
	width        int
	height       int
	headerHeight int
	footerHeight int
	bodyHeight   int
	gapX         int

	leftWidth       int
	leftInnerWidth  int
	leftInnerHeight int
	rightWidth      int
	rightInnerWidth int

	objectivesHeight int
	filesHeight      int
	graphHeight      int
}

// setWindowSize updates the window dimensions and applies the layout.
func (m *Model) setWindowSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height
	m.applyLayout(m.computeLayout())
}

// computeLayout calculates the layout dimensions based on window size and UI state.
func (m *Model) computeLayout() layoutDims {
	width := m.windowWidth
	height := m.windowHeight
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}

	headerHeight := 1
	footerHeight := 1
	gapX := 1
	bodyHeight := maxInt(height-headerHeight-footerHeight, 8)

	leftWidth := (width - gapX) * 3 / 5
	rightWidth := width - leftWidth - gapX
	if leftWidth < minLeftPaneWidth {
		leftWidth = minLeftPaneWidth
		rightWidth = width - leftWidth - gapX
	}
	if rightWidth < minRightPaneWidth {
		rightWidth = minRightPaneWidth
		leftWidth = maxInt(width-rightWidth-gapX, minLeftPaneWidth)
	}

	frameX := m.paneStyle(false).GetHorizontalFrameSize()
	frameY := m.paneStyle(false).GetVerticalFrameSize()

	// title line plus one row per entry
	objectivesHeight := len(m.session.Objectives()) + 1 + boolInt(m.completed) + frameY
	filesHeight := maxInt(len(m.session.Model().Files), 1) + 1 + frameY
	graphHeight := 0
	if m.showGraph {
		graphHeight = bodyHeight - objectivesHeight - filesHeight
		if graphHeight < minPaneHeight+frameY {
			graphHeight = minPaneHeight + frameY
			filesHeight = maxInt(bodyHeight-objectivesHeight-graphHeight, minPaneHeight+frameY)
		}
	} else {
		filesHeight = maxInt(bodyHeight-objectivesHeight, minPaneHeight+frameY)
	}

	return layoutDims{
		width:            width,
		height:           height,
		headerHeight:     headerHeight,
		footerHeight:     footerHeight,
		bodyHeight:       bodyHeight,
		gapX:             gapX,
		leftWidth:        leftWidth,
		leftInnerWidth:   maxInt(1, leftWidth-frameX),
		leftInnerHeight:  maxInt(1, bodyHeight-frameY),
		rightWidth:       rightWidth,
		rightInnerWidth:  maxInt(1, rightWidth-frameX),
		objectivesHeight: objectivesHeight,
		filesHeight:      filesHeight,
		graphHeight:      graphHeight,
	}
}

// applyLayout sizes the terminal widgets: a title row and the prompt row
// sit around the viewport.
func (m *Model) applyLayout(layout layoutDims) {
	m.terminal.Width = layout.leftInnerWidth
	m.terminal.Height = maxInt(1, layout.leftInnerHeight-2)
	m.input.Width = maxInt(1, layout.leftInnerWidth-len(m.input.Prompt)-1)
	m.refreshTerminal()
}

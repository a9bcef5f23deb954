package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/layout"
	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// SimulateModel - Interactive Drag Simulation
// =============================================================================

// dragStep is the world-unit displacement per arrow key press.
const dragStep = 20.0

var (
	tuiSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiEntityStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	tuiCollideStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	tuiZoneStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// SimulateModel is the bubbletea model for interactive drag simulation.
// Arrow keys drag the selected entity; each step runs one frame of
// neighbor repulsion, so clusters part in real time.
type SimulateModel struct {
	Engine *geometry.Engine
	Scene  *scene.Scene

	// ids are the draggable entity IDs in display order; cursor indexes
	// into them.
	ids    []string
	cursor int

	width, height int
}

// NewSimulateModel creates a simulation model for the given scene.
func NewSimulateModel(eng *geometry.Engine, sc *scene.Scene, selected string) SimulateModel {
	m := SimulateModel{
		Engine: eng,
		Scene:  sc,
		width:  80,
		height: 24,
	}
	for _, e := range sc.Entities {
		if e.IsZone() {
			continue
		}
		m.ids = append(m.ids, e.ID)
	}
	for i, id := range m.ids {
		if id == selected {
			m.cursor = i
		}
	}
	return m
}

func (m SimulateModel) Init() tea.Cmd {
	return nil
}

func (m SimulateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if len(m.ids) > 0 {
				m.cursor = (m.cursor + 1) % len(m.ids)
			}
		case "up":
			m.drag(0, -dragStep)
		case "down":
			m.drag(0, dragStep)
		case "left":
			m.drag(-dragStep, 0)
		case "right":
			m.drag(dragStep, 0)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// drag moves the selected entity and applies one repulsion frame to its
// neighbors.
func (m *SimulateModel) drag(dx, dy float64) {
	if len(m.ids) == 0 {
		return
	}
	ent := m.Scene.Entity(m.ids[m.cursor])
	if ent == nil {
		return
	}
	ent.Position.X += dx
	ent.Position.Y += dy

	forces := layout.DragStep(m.Engine, m.Scene, ent.ID)
	layout.Apply(m.Scene, forces)
}

func (m SimulateModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Driftboard Simulation"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows: drag  tab: next entity  q: quit"))
	b.WriteString("\n\n")

	b.WriteString(m.viewCanvas())
	b.WriteString("\n")
	b.WriteString(m.viewStatus())

	return b.String()
}

// viewCanvas draws the scene as a character grid: zone outlines as
// dots, entities as their label initials, the selected entity bold.
func (m SimulateModel) viewCanvas() string {
	cols := m.width - 4
	rows := m.height - 10
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}

	minX, minY, maxX, maxY := m.extents()
	scaleX := float64(cols) / (maxX - minX)
	scaleY := float64(rows) / (maxY - minY)

	type cell struct {
		ch    string
		style lipgloss.Style
	}
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{ch: " "}
		}
	}

	plot := func(x, y float64, ch string, style lipgloss.Style) {
		c := int((x - minX) * scaleX)
		r := int((y - minY) * scaleY)
		if r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = cell{ch: ch, style: style}
		}
	}

	for _, z := range m.Scene.Zones {
		for _, x := range []float64{z.Position.X, z.Position.X + z.Size.Width} {
			for y := z.Position.Y; y <= z.Position.Y+z.Size.Height; y += 1 / scaleY {
				plot(x, y, "·", tuiZoneStyle)
			}
		}
		for _, y := range []float64{z.Position.Y, z.Position.Y + z.Size.Height} {
			for x := z.Position.X; x <= z.Position.X+z.Size.Width; x += 1 / scaleX {
				plot(x, y, "·", tuiZoneStyle)
			}
		}
	}

	colliding := m.collidingIDs()
	for i, id := range m.ids {
		ent := m.Scene.Entity(id)
		if ent == nil {
			continue
		}
		bounds := m.Engine.Bounds(ent)
		ch := string(rune('A' + i%26))

		style := tuiEntityStyle
		if colliding[id] {
			style = tuiCollideStyle
		}
		if i == m.cursor {
			style = tuiSelectedStyle
		}
		// Fill the entity's footprint so sizes are visible.
		for x := bounds.X; x < bounds.Right(); x += 1 / scaleX {
			for y := bounds.Y; y < bounds.Bottom(); y += 1 / scaleY {
				plot(x, y, ch, style)
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString("  ")
		for _, c := range row {
			b.WriteString(c.style.Render(c.ch))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// viewStatus shows the selected entity and scene stats.
func (m SimulateModel) viewStatus() string {
	if len(m.ids) == 0 {
		return StyleDim.Render("  (scene has no entities)")
	}
	ent := m.Scene.Entity(m.ids[m.cursor])
	if ent == nil {
		return ""
	}
	collisions := len(m.collidingIDs())
	status := fmt.Sprintf("  %s %s at (%.0f, %.0f)",
		StyleHighlight.Render(string(rune('A'+m.cursor%26))),
		StyleValue.Render(ent.DisplayLabel()),
		ent.Position.X, ent.Position.Y)
	if collisions > 0 {
		status += StyleWarning.Render(fmt.Sprintf("  %d colliding", collisions))
	} else {
		status += StyleSuccess.Render("  no collisions")
	}
	return status
}

// extents returns the world rectangle covering all zones and entities,
// padded so content does not touch the canvas border.
func (m SimulateModel) extents() (minX, minY, maxX, maxY float64) {
	minX, minY, maxX, maxY = 0, 0, 800, 600
	first := true
	extend := func(x0, y0, x1, y1 float64) {
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			return
		}
		minX = min(minX, x0)
		minY = min(minY, y0)
		maxX = max(maxX, x1)
		maxY = max(maxY, y1)
	}
	for _, z := range m.Scene.Zones {
		extend(z.Position.X, z.Position.Y, z.Position.X+z.Size.Width, z.Position.Y+z.Size.Height)
	}
	for _, id := range m.ids {
		if ent := m.Scene.Entity(id); ent != nil {
			b := m.Engine.Bounds(ent)
			extend(b.X, b.Y, b.Right(), b.Bottom())
		}
	}
	pad := 40.0
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}

// collidingIDs returns the set of entities involved in any collision.
func (m SimulateModel) collidingIDs() map[string]bool {
	out := map[string]bool{}
	for i := range m.Scene.Entities {
		for j := i + 1; j < len(m.Scene.Entities); j++ {
			a, b := &m.Scene.Entities[i], &m.Scene.Entities[j]
			if a.IsZone() || b.IsZone() {
				continue
			}
			if m.Engine.DetectCollision(a, b, m.Engine.Padding(a, b)).Colliding {
				out[a.ID] = true
				out[b.ID] = true
			}
		}
	}
	return out
}

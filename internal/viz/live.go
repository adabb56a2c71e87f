package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballistics/internal/export"
)

const (
	canvasWidth  = 70
	canvasHeight = 20
	framesPerSec = 30
)

type TickMsg time.Time

// Model replays a computed trajectory row by row. The physics is already
// done; this only animates the recorded samples.
type Model struct {
	title    string
	rows     []export.Row
	canvas   *Canvas
	playHead int
	running  bool
	showHelp bool
}

func NewModel(title string, rows []export.Row) Model {
	return Model{
		title:   title,
		rows:    rows,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/framesPerSec, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.running = true
		case "[":
			m.running = false
			if m.playHead > 0 {
				m.playHead--
			}
		case "]":
			m.running = false
			if m.playHead < len(m.rows)-1 {
				m.playHead++
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead < len(m.rows)-1 {
				m.playHead++
			} else {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	if len(m.rows) < 2 {
		return
	}

	minY, maxY := m.rows[0].HeightIn, m.rows[0].HeightIn
	for _, r := range m.rows {
		if r.HeightIn < minY {
			minY = r.HeightIn
		}
		if r.HeightIn > maxY {
			maxY = r.HeightIn
		}
	}
	if maxY < 0 {
		maxY = 0
	}
	if minY > 0 {
		minY = 0
	}

	p := m.canvas.Plotter(0, m.rows[len(m.rows)-1].RangeYd, minY, maxY)

	// sight line
	p.Line(0, 0, m.rows[len(m.rows)-1].RangeYd, 0)

	for i := 1; i <= m.playHead && i < len(m.rows); i++ {
		p.Line(m.rows[i-1].RangeYd, m.rows[i-1].HeightIn, m.rows[i].RangeYd, m.rows[i].HeightIn)
	}
	cur := m.rows[m.playHead]
	p.Mark(cur.RangeYd, cur.HeightIn)
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return "no trajectory rows\n"
	}
	m.draw()

	cur := m.rows[m.playHead]
	status := "FLYING"
	if !m.running {
		if m.playHead == len(m.rows)-1 {
			status = "IMPACT"
		} else {
			status = "PAUSED"
		}
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f s", cur.TimeS)) + "\n")
	s.WriteString(labelStyle.Render("Range") + valueStyle.Render(fmt.Sprintf("%.0f yd", cur.RangeYd)) + "\n")
	s.WriteString(labelStyle.Render("Height") + valueStyle.Render(fmt.Sprintf("%.1f in", cur.HeightIn)) + "\n")
	s.WriteString(labelStyle.Render("Windage") + valueStyle.Render(fmt.Sprintf("%.1f in", cur.WindageIn)) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%.0f fps", cur.VelocityFPS)) + "\n")
	s.WriteString(labelStyle.Render("Mach") + valueStyle.Render(fmt.Sprintf("%.2f", cur.Mach)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.0f ftlb", cur.EnergyFtLb)) + "\n")
	if cur.Flags != "range" && cur.Flags != "none" {
		s.WriteString(labelStyle.Render("Event") + eventStyle.Render(cur.Flags) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Replay Q:Quit\n[ ]:Step ?:Help"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume replay      ║
║  R        - Restart from the muzzle  ║
║  [        - Step back one row        ║
║  ]        - Step forward one row     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

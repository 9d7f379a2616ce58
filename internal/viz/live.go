package viz

import (
	"fmt"
	"image"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sparkfield/internal/field"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 36
	historyCapacity = 600
	canvasLeft      = 2
	canvasTop       = 1
)

type TickMsg time.Time

type Options struct {
	Title   string
	Seed    int64
	FPS     int
	Scale   float64
	GIFPath string
}

// Model hosts a simulator in the terminal. Ticks pump the frame queue,
// mouse events become pointer input.
type Model struct {
	sim        *field.Simulator
	queue      *field.FrameQueue
	canvas     *Canvas
	opts       Options
	cols, rows int
	paused     bool
	tick       int
	population []float64
	links      []float64
	recording  bool
	frames     []*image.Paletted
	showHelp   bool
	status     string
}

func NewModel(params field.Params, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "sparkfield"
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "sparkfield.gif"
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	canvas := NewCanvas(defaultCols, defaultRows, opts.Scale)
	queue := field.NewFrameQueue()
	m := Model{
		sim:        field.NewSimulator(canvas, queue, rand.New(rand.NewSource(opts.Seed)), params),
		queue:      queue,
		canvas:     canvas,
		opts:       opts,
		cols:       defaultCols,
		rows:       defaultRows,
		population: make([]float64, 0, historyCapacity),
		links:      make([]float64, 0, historyCapacity),
	}
	m.sim.Start(m.surfaceSize())
	return m
}

// Simulator exposes the hosted simulator.
func (m Model) Simulator() *field.Simulator { return m.sim }

func (m Model) surfaceSize() (int, int) {
	s := m.canvas.Scale
	return int(float64(m.cols*2) * s), int(float64(m.rows*4) * s)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles input events and pumps the simulator.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2*canvasLeft-statsWidth-1, 0)
		m.rows = max(msg.Height-2*canvasTop, 0)
		m.sim.Resize(m.surfaceSize())
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stopRecording()
			m.sim.Stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.sim.Restart(m.surfaceSize())
			m.population = m.population[:0]
			m.links = m.links[:0]
		case "t":
			NextTheme()
			m.sim.Field().SetPalette(CurrentTheme.Palette())
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.status = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.tick++
		if !m.paused && m.queue.Pump() > 0 {
			m.record()
		}
		if m.recording {
			m.frames = append(m.frames, captureFrame(m.canvas, m.sim.Field().Params()))
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasLeft, msg.Y-canvasTop
	if col < 0 || row < 0 || col >= m.cols || row >= m.rows {
		return
	}
	p := m.canvas.CellToSurface(col, row)
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.sim.PointerMove(p.X, p.Y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.sim.PointerClick(p.X, p.Y)
	}
}

func (m *Model) record() {
	st := m.sim.Field().Stats()
	m.population = appendCapped(m.population, float64(st.Population))
	m.links = appendCapped(m.links, float64(st.Links))
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	if err := saveGIF(m.opts.GIFPath, m.frames, m.opts.FPS); err != nil {
		m.status = "gif: " + err.Error()
	} else if len(m.frames) > 0 {
		m.status = "saved " + m.opts.GIFPath
	}
	m.frames = nil
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	theme := CurrentTheme
	canvasView := canvasStyle.
		Background(theme.Background).
		Width(m.cols + 2*canvasLeft).
		Render(strings.TrimSuffix(m.canvas.Render(), "\n"))

	f := m.sim.Field()
	st := f.Stats()

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.opts.Title), theme.Primary, theme.Secondary) + "\n\n")

	switch {
	case !m.sim.Running():
		s.WriteString(StatusPaused.Render("STOPPED"))
	case m.paused:
		s.WriteString(StatusPaused.Render("PAUSED"))
	default:
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.tick) + " RUNNING"))
	}
	if m.recording {
		s.WriteString("  " + StatusRecording.Render("● REC"))
	}
	s.WriteString("\n")

	if len(m.population) > 1 {
		chart := asciigraph.Plot(m.population,
			asciigraph.Height(5),
			asciigraph.Width(statsWidth-12),
			asciigraph.Caption("Particles"))
		s.WriteString(graphStyle.Foreground(theme.Accent).Render(chart) + "\n")
	}

	w, h := m.sim.Surface().Size()
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", f.Frame())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", st.Population)) + "\n")
	s.WriteString(labelStyle.Render("Trail") + valueStyle.Render(fmt.Sprintf("%d", st.Trail)) + "\n")
	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d", st.Links)) + "\n")
	s.WriteString(labelStyle.Render("Age") + ProgressBar(st.MeanAgeRatio, 12) + "\n")
	s.WriteString(labelStyle.Render("Surface") + valueStyle.Render(fmt.Sprintf("%dx%d", w, h)) + "\n")
	s.WriteString(labelStyle.Render("Skipped") + valueStyle.Render(fmt.Sprintf("%d", m.sim.FramesSkipped())) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(theme.Name) + "\n\n")
	s.WriteString(SparklineChart(m.links, statsWidth-6) + "\n")
	if m.status != "" {
		s.WriteString(Subtle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render(Separator(statsWidth-6) + "\nSP:Pause R:Restart Q:Quit\nT:Theme  G:Record  ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Mouse    - Move to attract, spawn   ║
║  Click    - Burst of particles       ║
║  Space    - Pause/Resume             ║
║  R        - Restart the field        ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view with mouse tracking on the alternate screen.
func Run(params field.Params, opts Options) error {
	m := NewModel(params, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	m.sim.Stop()
	return err
}

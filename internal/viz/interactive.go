package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sparkfield/internal/config"
	"github.com/san-kum/sparkfield/internal/field"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

var presetInfo = map[string]string{
	"default": "the overlay as shipped",
	"calm":    "slow, sparse, long-lived",
	"storm":   "fast bursts, strong pull",
	"dense":   "crowded constellation",
}

// tunables are the parameters offered in the config screen, with the step
// applied by h/l.
var tunables = []struct {
	name string
	step float64
}{
	{"seed_count", 5},
	{"burst_size", 1},
	{"spawn_probability", 0.05},
	{"attract_radius", 10},
	{"attract_strength", 0.01},
	{"link_radius", 10},
	{"damping", 0.005},
	{"speed", 0.1},
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// App lets the user pick a preset, tune it, and then runs the live view.
type App struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	values        map[string]float64
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	opts          Options
	live          Model
}

func NewApp(opts Options) App {
	return App{
		state:   stateMenu,
		presets: config.ListPresets(),
		opts:    opts,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch a.state {
		case stateMenu:
			return a.menuKey(key)
		case stateConfig:
			return a.configKey(key)
		}
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.selected = a.presets[a.cursor]
		a.cfg = config.GetPreset(a.selected)
		a.values = tunableValues(a.cfg)
		a.state, a.paramCursor, a.err = stateConfig, 0, ""
	}
	return a, nil
}

func tunableValues(cfg *config.Config) map[string]float64 {
	f := cfg.Field
	return map[string]float64{
		"seed_count":        float64(f.SeedCount),
		"burst_size":        float64(f.BurstSize),
		"spawn_probability": f.SpawnProbability,
		"attract_radius":    f.AttractRadius,
		"attract_strength":  f.AttractStrength,
		"link_radius":       f.LinkRadius,
		"damping":           f.Damping,
		"speed":             f.Speed,
	}
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	name := tunables[a.paramCursor].name
	if a.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(a.editBuf, 64); err == nil {
				a.values[name] = v
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				a.editBuf += s
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(tunables)-1 {
			a.paramCursor++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, strconv.FormatFloat(a.values[name], 'f', -1, 64)
	case "left", "h":
		a.values[name] -= tunables[a.paramCursor].step
	case "right", "l":
		a.values[name] += tunables[a.paramCursor].step
	case "s":
		return a.start()
	}
	return a, nil
}

// Params applies the tuned values to the selected preset.
func (a App) Params() (field.Params, error) {
	p, err := a.cfg.Params()
	if err != nil {
		return p, err
	}
	for _, t := range tunables {
		if err := p.SetParam(t.name, a.values[t.name]); err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

func (a App) start() (App, tea.Cmd) {
	params, err := a.Params()
	if err != nil {
		a.err = err.Error()
		return a, nil
	}
	opts := a.opts
	opts.Title = a.selected
	a.live = NewModel(params, opts)
	a.state = stateSim
	return a, a.live.Init()
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.live.View()
	}
	return ""
}

func (a App) header(title, sub string) string {
	return "\n\n    " + titleStyle.Render(title) + "\n    " + subStyle.Render(sub) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n"
}

func hints(pairs ...string) string {
	var b strings.Builder
	b.WriteString("\n    ")
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String() + "\n"
}

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString(a.header("SPARKFIELD", "interactive particle field"))
	for i, name := range a.presets {
		if i == a.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", name)), infoStyle.Render(presetInfo[name]))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", name)), idleStyle.Render(presetInfo[name]))
		}
	}
	b.WriteString(hints("j/k", "navigate", "enter", "select", "q", "quit"))
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	b.WriteString(a.header(strings.ToUpper(a.selected), presetInfo[a.selected]))
	for i, t := range tunables {
		valStr := fmt.Sprintf("%8.3f", a.values[t.name])
		if a.editing && i == a.paramCursor {
			valStr = fmt.Sprintf("%8s", a.editBuf+"_")
		}
		if i == a.paramCursor {
			fmt.Fprintf(&b, "    %s %s %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-18s", t.name)), infoStyle.Bold(true).Render(valStr))
		} else {
			fmt.Fprintf(&b, "    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-18s", t.name)), idleStyle.Render(valStr))
		}
	}
	if a.err != "" {
		b.WriteString("\n    " + StatusRecording.UnsetBlink().Render(a.err) + "\n")
	}
	b.WriteString(hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back"))
	return b.String()
}

// RunInteractive shows the preset menu and then the live view.
func RunInteractive(opts Options) error {
	app := NewApp(opts)
	final, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if a, ok := final.(App); ok && a.state == stateSim {
		a.live.sim.Stop()
	}
	return err
}

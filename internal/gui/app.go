package gui

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/sparkfield/internal/field"
)

var (
	ColBgDark    = fromHex("#111827")
	ColBgLight   = fromHex("#ffffff")
	ColTextDark  = rl.NewColor(140, 140, 140, 255)
	ColTextLight = rl.NewColor(90, 90, 110, 255)
)

type Options struct {
	Width  int
	Height int
	FPS    int
	Seed   int64
	Title  string
	Light  bool
}

// App hosts one simulator in a resizable raylib window. Every loop
// iteration pumps the frame queue once inside BeginDrawing/EndDrawing.
type App struct {
	Sim      *field.Simulator
	Queue    *field.FrameQueue
	Surface  *Surface
	Title    string
	Light    bool
	ShowHUD  bool
	quit     bool
	lastX    float32
	lastY    float32
	hasMouse bool
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func withDefaults(opts Options) Options {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "sparkfield"
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}

// NewApp builds the simulator for an already open window and starts it at
// the current screen size.
func NewApp(params field.Params, opts Options) *App {
	surface := NewSurface(ColBgDark)
	queue := field.NewFrameQueue()
	a := &App{
		Sim:     field.NewSimulator(surface, queue, rand.New(rand.NewSource(opts.Seed)), params),
		Queue:   queue,
		Surface: surface,
		Title:   opts.Title,
		ShowHUD: true,
	}
	a.setLight(opts.Light)
	a.Sim.Start(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	return a
}

// Run opens the window and blocks until it is closed.
func Run(params field.Params, opts Options) {
	opts = withDefaults(opts)
	initWindow(opts)
	defer rl.CloseWindow()
	app := NewApp(params, opts)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.Sim.Stop()
}

func (a *App) setLight(light bool) {
	a.Light = light
	a.Surface.Background = ColBgDark
	if light {
		a.Surface.Background = ColBgLight
	}
}

// Update forwards window and input events to the simulator.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.Sim.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	mouse := rl.GetMousePosition()
	if !a.hasMouse || mouse.X != a.lastX || mouse.Y != a.lastY {
		if a.hasMouse {
			a.Sim.PointerMove(float64(mouse.X), float64(mouse.Y))
		}
		a.lastX, a.lastY, a.hasMouse = mouse.X, mouse.Y, true
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.Sim.PointerClick(float64(mouse.X), float64(mouse.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyT):
		a.setLight(!a.Light)
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	if !a.pump() {
		rl.ClearBackground(a.Surface.Background)
	}
	if a.ShowHUD {
		a.drawHUD()
	}
	rl.EndDrawing()
}

// pump runs the queued frame callbacks and reports whether the simulator
// drew a frame. Skipped frames leave the back buffer untouched.
func (a *App) pump() bool {
	before := a.Sim.FramesRendered()
	a.Queue.Pump()
	return a.Sim.FramesRendered() != before
}

func (a *App) drawHUD() {
	col := ColTextDark
	if a.Light {
		col = ColTextLight
	}
	st := a.Sim.Field().Stats()
	h := int32(rl.GetScreenHeight())
	rl.DrawText(a.Title, 20, 20, 20, col)
	rl.DrawText(fmt.Sprintf("%d particles  %d links  %d FPS", st.Population, st.Links, rl.GetFPS()), 20, 46, 10, col)
	rl.DrawText("[T] THEME  [H] HUD  [Q] QUIT", 20, h-24, 10, col)
}

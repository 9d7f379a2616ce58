package pointer

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sparkfield/internal/field"
)

func TestNone(t *testing.T) {
	in := NewNone().Next(10, 800, 600)
	if in.Move || in.Click {
		t.Errorf("expected no input, got %+v", in)
	}
}

func TestOrbit(t *testing.T) {
	o := NewOrbit(0.25, 0.1, 30)

	for frame := 0; frame < 100; frame++ {
		in := o.Next(frame, 800, 600)
		if !in.Move {
			t.Fatalf("frame %d: expected move", frame)
		}
		d := in.Pos.Dist(field.Vec2{X: 400, Y: 300})
		if math.Abs(d-150) > 1e-9 {
			t.Fatalf("frame %d: distance from centre %v, want 150", frame, d)
		}
		wantClick := frame == 30 || frame == 60 || frame == 90
		if in.Click != wantClick {
			t.Errorf("frame %d: click = %v, want %v", frame, in.Click, wantClick)
		}
	}
}

func TestSweep(t *testing.T) {
	s := NewSweep(4, 0.1, 0)

	tests := []struct {
		frame int
		x, y  float64
	}{
		{0, 0, 50},
		{5, 400, 50},
		{10, 800, 150},
		{15, 400, 150},
		{40, 0, 50},
	}
	for _, tt := range tests {
		in := s.Next(tt.frame, 800, 400)
		if math.Abs(in.Pos.X-tt.x) > 1e-6 || math.Abs(in.Pos.Y-tt.y) > 1e-6 {
			t.Errorf("frame %d: pos = %v, want (%v, %v)", tt.frame, in.Pos, tt.x, tt.y)
		}
	}
}

func TestWanderStaysInside(t *testing.T) {
	w := NewWander(40, 0.05, 3)
	clicks := 0
	for frame := 0; frame < 2000; frame++ {
		in := w.Next(frame, 300, 200)
		if in.Pos.X < 0 || in.Pos.X > 300 || in.Pos.Y < 0 || in.Pos.Y > 200 {
			t.Fatalf("frame %d: left the surface at %v", frame, in.Pos)
		}
		if in.Click {
			clicks++
		}
	}
	if clicks == 0 {
		t.Error("expected some clicks")
	}
}

func TestWanderDeterministic(t *testing.T) {
	a, b := NewWander(10, 0.1, 9), NewWander(10, 0.1, 9)
	for frame := 0; frame < 50; frame++ {
		if a.Next(frame, 100, 100) != b.Next(frame, 100, 100) {
			t.Fatalf("frame %d: same seed diverged", frame)
		}
	}
}

const demoScript = `
name: demo
units: fraction
loop: 20
events:
  - frame: 5
    action: click
    x: 0.5
    y: 0.5
  - frame: 2
    action: move
    x: 0.25
    y: 0.75
  - frame: 5
    action: move
    x: 0.1
    y: 0.1
`

func TestScript(t *testing.T) {
	s, err := ParseScript([]byte(demoScript))
	if err != nil {
		t.Fatal(err)
	}

	in := s.Next(2, 400, 200)
	if !in.Move || in.Click || in.Pos != (field.Vec2{X: 100, Y: 150}) {
		t.Errorf("frame 2: got %+v", in)
	}

	in = s.Next(25, 400, 200)
	if !in.Move || !in.Click {
		t.Errorf("frame 25 should loop to 5 and carry both events, got %+v", in)
	}

	if in := s.Next(3, 400, 200); in.Move || in.Click {
		t.Errorf("frame 3: expected nothing, got %+v", in)
	}
}

func TestScriptValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad action", "events:\n  - frame: 1\n    action: drag\n"},
		{"bad units", "units: inches\n"},
		{"negative frame", "events:\n  - frame: -1\n    action: move\n"},
		{"negative loop", "loop: -3\n"},
		{"not yaml", "events: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"none", "orbit", "sweep", "wander"} {
		d, err := New(name, Options{Radius: 0.3, Speed: 0.05, ClickEvery: 10})
		if err != nil || d == nil {
			t.Errorf("New(%q) = %v, %v", name, d, err)
		}
	}

	if _, err := New("nonexistent", Options{}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := New("script", Options{}); err == nil {
		t.Error("expected error for script without file")
	}

	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(demoScript), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := New("script", Options{Script: path})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(*Script); !ok {
		t.Errorf("expected *Script, got %T", d)
	}
}

func TestDriversFeedRun(t *testing.T) {
	for _, name := range List() {
		if name == "script" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			d, err := New(name, Options{Radius: 0.3, Speed: 0.05, ClickEvery: 15, Seed: 1})
			if err != nil {
				t.Fatal(err)
			}
			res, err := field.Run(context.Background(), field.RunConfig{
				Params: field.DefaultParams(),
				Width:  400,
				Height: 300,
				Frames: 120,
				Seed:   5,
				Driver: d,
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Samples) != 120 {
				t.Errorf("got %d samples", len(res.Samples))
			}
		})
	}
}

package metrics

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/sparkfield/internal/field"
)

func seededField(t *testing.T) *field.Field {
	t.Helper()
	f := field.NewField(field.DefaultParams(), rand.New(rand.NewSource(4)))
	f.SetBounds(200, 200)
	f.Seed()
	return f
}

func TestPopulation(t *testing.T) {
	f := seededField(t)
	peak, mean := NewPeakPopulation(), NewMeanPopulation()

	peak.OnFrame(f)
	mean.OnFrame(f)
	f.PointerClick(100, 100)
	peak.OnFrame(f)
	mean.OnFrame(f)

	if peak.Value() != 45 {
		t.Errorf("peak = %v, want 45", peak.Value())
	}
	if mean.Value() != 37.5 {
		t.Errorf("mean = %v, want 37.5", mean.Value())
	}

	peak.Reset()
	mean.Reset()
	if peak.Value() != 0 || mean.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMaxAgeRatioStaysBelowOne(t *testing.T) {
	f := seededField(t)
	m := NewMaxAgeRatio()
	for i := 0; i < 200; i++ {
		if i%10 == 0 {
			f.PointerClick(50, 50)
		}
		f.Step()
		m.OnFrame(f)
	}
	if m.Value() <= 0 || m.Value() >= 1 {
		t.Errorf("max age ratio = %v, want in (0, 1)", m.Value())
	}
}

func TestCursorDistance(t *testing.T) {
	p := field.DefaultParams()
	p.SpawnProbability = 0
	f := field.NewField(p, rand.New(rand.NewSource(1)))
	c := NewCursorDistance()

	c.OnFrame(f)
	if c.Value() != 0 {
		t.Errorf("empty field distance = %v", c.Value())
	}

	f.PointerClick(300, 400)
	f.PointerMove(0, 0)
	c.OnFrame(f)
	if math.Abs(c.Value()-500) > 40 {
		t.Errorf("mean distance = %v, want ~500", c.Value())
	}
}

func TestMeanLinks(t *testing.T) {
	f := field.NewField(field.DefaultParams(), rand.New(rand.NewSource(1)))
	f.PointerClick(100, 100)
	m := NewMeanLinks()
	m.OnFrame(f)

	want := float64(15 * 14 / 2)
	if m.Value() != want {
		t.Errorf("links = %v, want %v", m.Value(), want)
	}
}

func TestDefaultInRun(t *testing.T) {
	ms := Default()
	res, err := field.Run(context.Background(), field.RunConfig{
		Params:    field.DefaultParams(),
		Width:     320,
		Height:    240,
		Frames:    90,
		Seed:      2,
		Observers: Observers(ms),
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"peak_population", "mean_population", "max_age_ratio", "mean_cursor_distance", "mean_links"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if res.Metrics["peak_population"] != 30 {
		t.Errorf("peak population = %v, want 30", res.Metrics["peak_population"])
	}
}

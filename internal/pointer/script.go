package pointer

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/sparkfield/internal/field"
	"gopkg.in/yaml.v3"
)

// Script replays timed pointer events.
type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Loop        int     `yaml:"loop"`
	Units       string  `yaml:"units"`
	Events      []Event `yaml:"events"`

	sorted bool
}

// Event is a single pointer action. With units "fraction", X and Y are
// multiplied by the surface size.
type Event struct {
	Frame  int     `yaml:"frame"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

const (
	ActionMove  = "move"
	ActionClick = "click"
)

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	switch s.Units {
	case "", "pixels", "fraction":
	default:
		return fmt.Errorf("script %q: unknown units %q", s.Name, s.Units)
	}
	if s.Loop < 0 {
		return fmt.Errorf("script %q: negative loop %d", s.Name, s.Loop)
	}
	for i, e := range s.Events {
		if e.Action != ActionMove && e.Action != ActionClick {
			return fmt.Errorf("script %q: event %d: unknown action %q", s.Name, i, e.Action)
		}
		if e.Frame < 0 {
			return fmt.Errorf("script %q: event %d: negative frame", s.Name, i)
		}
	}
	return nil
}

// Next merges every event scheduled for the frame. The last event wins the
// position.
func (s *Script) Next(frame int, width, height float64) field.Input {
	if !s.sorted {
		sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].Frame < s.Events[j].Frame })
		s.sorted = true
	}
	if s.Loop > 0 {
		frame %= s.Loop
	}

	var in field.Input
	i := sort.Search(len(s.Events), func(i int) bool { return s.Events[i].Frame >= frame })
	for ; i < len(s.Events) && s.Events[i].Frame == frame; i++ {
		e := s.Events[i]
		in.Pos = s.point(e, width, height)
		switch e.Action {
		case ActionMove:
			in.Move = true
		case ActionClick:
			in.Click = true
		}
	}
	return in
}

func (s *Script) point(e Event, width, height float64) field.Vec2 {
	if s.Units == "fraction" {
		return field.Vec2{X: e.X * width, Y: e.Y * height}
	}
	return field.Vec2{X: e.X, Y: e.Y}
}

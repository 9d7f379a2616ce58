package pointer

import (
	"fmt"
	"sort"

	"github.com/san-kum/sparkfield/internal/field"
)

type Options struct {
	ClickEvery int
	Radius     float64
	Speed      float64
	Seed       int64
	Script     string
}

var drivers = map[string]func(Options) (field.Driver, error){
	"none": func(Options) (field.Driver, error) { return NewNone(), nil },
	"orbit": func(o Options) (field.Driver, error) {
		return NewOrbit(o.Radius, o.Speed, o.ClickEvery), nil
	},
	"sweep": func(o Options) (field.Driver, error) {
		return NewSweep(5, o.Speed, o.ClickEvery), nil
	},
	"wander": func(o Options) (field.Driver, error) {
		chance := 0.0
		if o.ClickEvery > 0 {
			chance = 1 / float64(o.ClickEvery)
		}
		return NewWander(o.Speed*200, chance, o.Seed), nil
	},
	"script": func(o Options) (field.Driver, error) {
		if o.Script == "" {
			return nil, fmt.Errorf("script driver needs a script file")
		}
		s, err := LoadScript(o.Script)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
}

// New builds the named driver.
func New(name string, opts Options) (field.Driver, error) {
	fn, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown pointer driver: %s", name)
	}
	return fn(opts)
}

func List() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

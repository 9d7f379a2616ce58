package field

import "math"

type cellKey struct{ x, y int }

// spatialGrid buckets particle indices into square cells of the link radius,
// so only neighbouring cells need a distance check.
type spatialGrid struct {
	size  float64
	cells map[cellKey][]int
}

func newSpatialGrid() *spatialGrid {
	return &spatialGrid{cells: make(map[cellKey][]int)}
}

// reset empties every cell, keeping their backing arrays unless the map has
// grown well past the number of particles it last held.
func (g *spatialGrid) reset(size float64, particles int) {
	g.size = size
	if len(g.cells) > 4*particles+16 {
		clear(g.cells)
		return
	}
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
}

func (g *spatialGrid) key(p Vec2) cellKey {
	return cellKey{int(math.Floor(p.X / g.size)), int(math.Floor(p.Y / g.size))}
}

func (g *spatialGrid) insert(i int, p Vec2) {
	k := g.key(p)
	g.cells[k] = append(g.cells[k], i)
}

// Links calls fn for every unordered pair of particles closer than
// LinkRadius, with i < j.
func (f *Field) Links(fn func(i, j int, dist float64)) {
	r := f.params.LinkRadius
	if r <= 0 || len(f.particles) < 2 {
		return
	}
	if len(f.particles) <= f.params.GridThreshold {
		f.linksBrute(r, fn)
		return
	}
	f.linksGrid(r, fn)
}

func (f *Field) linksBrute(r float64, fn func(i, j int, dist float64)) {
	ps := f.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if d := ps[i].Pos.Dist(ps[j].Pos); d < r {
				fn(i, j, d)
			}
		}
	}
}

func (f *Field) linksGrid(r float64, fn func(i, j int, dist float64)) {
	if f.grid == nil {
		f.grid = newSpatialGrid()
	}
	g := f.grid
	g.reset(r, len(f.particles))

	ps := f.particles
	for i := range ps {
		if ps[i].Pos.IsValid() {
			g.insert(i, ps[i].Pos)
		}
	}

	for i := range ps {
		if !ps[i].Pos.IsValid() {
			continue
		}
		k := g.key(ps[i].Pos)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				for _, j := range g.cells[cellKey{k.x + dx, k.y + dy}] {
					if j <= i {
						continue
					}
					if d := ps[i].Pos.Dist(ps[j].Pos); d < r {
						fn(i, j, d)
					}
				}
			}
		}
	}
}

// LinkCount returns the number of linked pairs in the current frame.
func (f *Field) LinkCount() int {
	n := 0
	f.Links(func(int, int, float64) { n++ })
	return n
}

package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sparkfield/internal/field"
)

type ExportData struct {
	Run       RunMetadata      `json:"run"`
	Samples   []field.Stats    `json:"samples"`
	Particles []ParticleRecord `json:"particles,omitempty"`
}

type ParticleRecord struct {
	ID      uint64  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Age     int     `json:"age"`
	MaxLife int     `json:"max_life"`
	Color   string  `json:"color"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`
}

func ParticleRecords(ps []field.Particle) []ParticleRecord {
	out := make([]ParticleRecord, len(ps))
	for i, p := range ps {
		out[i] = ParticleRecord{
			ID:      p.ID,
			X:       p.Pos.X,
			Y:       p.Pos.Y,
			VX:      p.Vel.X,
			VY:      p.Vel.Y,
			Age:     p.Age,
			MaxLife: p.MaxLife,
			Color:   p.Color.Hex(),
			Radius:  p.Radius,
			Opacity: p.Opacity(),
		}
	}
	return out
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV copies the frames file of a run to path.
func (s *Store) ExportCSV(runID, path string) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return writeFrames(path, samples)
}

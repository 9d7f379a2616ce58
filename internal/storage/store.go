package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sparkfield/internal/field"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{
	"frame", "population", "trail", "links",
	"mean_age_ratio", "max_age_ratio", "mean_cursor_dist", "draw_ops",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Preset         string             `json:"preset"`
	Driver         string             `json:"driver"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	Width          int                `json:"width"`
	Height         int                `json:"height"`
	Frames         int                `json:"frames"`
	FramesRendered int                `json:"frames_rendered"`
	FramesSkipped  int                `json:"frames_skipped"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes a run report directory and returns its ID. ID, Timestamp and
// the frame counters of meta are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *field.Result) (string, error) {
	now := time.Now()
	base := fmt.Sprintf("%s_%d", meta.Preset, now.Unix())

	runID, runDir := base, filepath.Join(s.baseDir, base)
	for i := 1; ; i++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Seed = result.Seed
	meta.Frames = len(result.Samples)
	meta.FramesRendered = result.FramesRendered
	meta.FramesSkipped = result.FramesSkipped
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, samples []field.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}
	for _, st := range samples {
		row := []string{
			strconv.Itoa(st.Frame),
			strconv.Itoa(st.Population),
			strconv.Itoa(st.Trail),
			strconv.Itoa(st.Links),
			strconv.FormatFloat(st.MeanAgeRatio, 'f', 6, 64),
			strconv.FormatFloat(st.MaxAgeRatio, 'f', 6, 64),
			strconv.FormatFloat(st.MeanCursorDist, 'f', 6, 64),
			strconv.Itoa(st.DrawOps),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads the per-frame statistics of a run. Malformed rows are
// skipped.
func (s *Store) LoadSamples(runID string) ([]field.Stats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []field.Stats{}, nil
	}

	samples := make([]field.Stats, 0, len(records)-1)
	for _, rec := range records[1:] {
		st, ok := parseRow(rec)
		if !ok {
			continue
		}
		samples = append(samples, st)
	}
	return samples, nil
}

func parseRow(rec []string) (field.Stats, bool) {
	if len(rec) != len(framesHeader) {
		return field.Stats{}, false
	}
	var (
		st   field.Stats
		errs []error
	)
	atoi := func(s string) int {
		v, err := strconv.Atoi(s)
		errs = append(errs, err)
		return v
	}
	atof := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		errs = append(errs, err)
		return v
	}
	st.Frame = atoi(rec[0])
	st.Population = atoi(rec[1])
	st.Trail = atoi(rec[2])
	st.Links = atoi(rec[3])
	st.MeanAgeRatio = atof(rec[4])
	st.MaxAgeRatio = atof(rec[5])
	st.MeanCursorDist = atof(rec[6])
	st.DrawOps = atoi(rec[7])
	return st, errors.Join(errs...) == nil
}

// Series extracts one column of samples by its CSV header name.
func Series(samples []field.Stats, column string) ([]float64, error) {
	var get func(st field.Stats) float64
	switch column {
	case "population":
		get = func(st field.Stats) float64 { return float64(st.Population) }
	case "trail":
		get = func(st field.Stats) float64 { return float64(st.Trail) }
	case "links":
		get = func(st field.Stats) float64 { return float64(st.Links) }
	case "mean_age_ratio":
		get = func(st field.Stats) float64 { return st.MeanAgeRatio }
	case "max_age_ratio":
		get = func(st field.Stats) float64 { return st.MaxAgeRatio }
	case "mean_cursor_dist":
		get = func(st field.Stats) float64 { return st.MeanCursorDist }
	case "draw_ops":
		get = func(st field.Stats) float64 { return float64(st.DrawOps) }
	default:
		return nil, fmt.Errorf("unknown column %q", column)
	}
	out := make([]float64, len(samples))
	for i, st := range samples {
		out[i] = get(st)
	}
	return out, nil
}

// Columns lists the numeric columns accepted by Series.
func Columns() []string {
	return append([]string(nil), framesHeader[1:]...)
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	profileFile   = "profile.csv"
	snapshotsFile = "snapshots.csv"
)

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
	ID          string             `json:"id"`
	Profile     string             `json:"profile"`
	Timestamp   time.Time          `json:"timestamp"`
	Length      float64            `json:"length"`
	Dx          float64            `json:"dx"`
	Diffusivity float64            `json:"diffusivity"`
	Steps       int                `json:"steps"`
	Dt          float64            `json:"dt"`
	Points      int                `json:"points"`
	Duration    float64            `json:"duration"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes metadata.json, profile.csv (x, initial, final) and snapshots.csv
// into a new run directory and returns the run id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Profile, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Profile:     cfg.Profile,
		Timestamp:   now,
		Length:      cfg.Length,
		Dx:          cfg.Dx,
		Diffusivity: cfg.Diffusivity,
		Steps:       result.StepsTaken,
		Dt:          result.Dt,
		Points:      result.Grid.Len(),
		Duration:    result.Duration(),
		Metrics:     result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	x := result.Grid.Points()
	rows := make([][]string, 0, len(x)+1)
	rows = append(rows, []string{"x", "initial", "final"})
	for i := range x {
		rows = append(rows, []string{formatFloat(x[i]), formatFloat(result.Initial[i]), formatFloat(result.Final[i])})
	}
	if err := writeCSV(filepath.Join(runDir, profileFile), rows); err != nil {
		return "", err
	}

	rows = rows[:0]
	header := []string{"time"}
	for i := range x {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	rows = append(rows, header)
	for i, snap := range result.Snapshots {
		row := make([]string, 0, len(snap)+1)
		row = append(row, formatFloat(result.Times[i]))
		for _, v := range snap {
			row = append(row, formatFloat(v))
		}
		rows = append(rows, row)
	}
	if err := writeCSV(filepath.Join(runDir, snapshotsFile), rows); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns saved runs, oldest first. Directories without readable metadata are skipped.
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
		return nil, err
	}

	return &meta, nil
}

// LoadProfile returns the grid coordinates with the initial and final fields.
func (s *Store) LoadProfile(runID string) (x, initial, final []float64, err error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, profileFile))
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, []float64{}, nil
	}

	n := len(records) - 1
	x, initial, final = make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)
	for i, record := range records[1:] {
		if len(record) < 3 {
			return nil, nil, nil, fmt.Errorf("%s line %d: expected 3 columns, got %d", profileFile, i+2, len(record))
		}
		vals, err := parseFloats(record[:3])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s line %d: %w", profileFile, i+2, err)
		}
		x = append(x, vals[0])
		initial = append(initial, vals[1])
		final = append(final, vals[2])
	}
	return x, initial, final, nil
}

// LoadSnapshots returns the recorded fields and their simulated times.
func (s *Store) LoadSnapshots(runID string) ([][]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, snapshotsFile))
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	snaps := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		vals, err := parseFloats(record)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", snapshotsFile, i+2, err)
		}
		times = append(times, vals[0])
		snaps = append(snaps, vals[1:])
	}
	return snaps, times, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

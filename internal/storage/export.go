package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	RunMetadata
	X         []float64   `json:"x"`
	Initial   []float64   `json:"initial"`
	Final     []float64   `json:"final"`
	Times     []float64   `json:"times"`
	Snapshots [][]float64 `json:"snapshots"`
}

// Export gathers everything stored for runID.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	x, initial, final, err := s.LoadProfile(runID)
	if err != nil {
		return nil, err
	}
	snaps, times, err := s.LoadSnapshots(runID)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		RunMetadata: *meta,
		X:           x,
		Initial:     initial,
		Final:       final,
		Times:       times,
		Snapshots:   snaps,
	}, nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, data); err != nil {
		return err
	}
	return file.Close()
}

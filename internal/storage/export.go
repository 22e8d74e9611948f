package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/dynarray/internal/script"
)

type ExportData struct {
	ID        string             `json:"id"`
	Script    string             `json:"script"`
	Steps     int                `json:"steps"`
	Snapshots []script.Snapshot  `json:"snapshots"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Export loads a saved run and returns it as one document.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	snaps, err := s.LoadTrace(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		ID:        meta.ID,
		Script:    meta.Script,
		Steps:     meta.Steps,
		Snapshots: snaps,
		Metrics:   meta.Metrics,
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

	return WriteJSON(file, data)
}

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

	"github.com/san-kum/dynarray/internal/script"
)

var traceHeader = []string{"step", "title", "op", "array", "kind", "capacity", "num_used", "contents", "output"}

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
	ID        string             `json:"id"`
	Script    string             `json:"script"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata.json and trace.csv under a new run
// directory and returns the run id.
func (s *Store) Save(result *script.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runName(result.Name), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Script:    result.Name,
		Timestamp: now,
		Steps:     len(result.Snapshots),
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(traceHeader); err != nil {
		return "", err
	}
	for _, snap := range result.Snapshots {
		row := []string{
			strconv.Itoa(snap.Step),
			snap.Title,
			snap.Op,
			snap.Array,
			snap.Kind,
			strconv.Itoa(snap.Capacity),
			strconv.Itoa(snap.NumUsed),
			snap.Contents,
			snap.Output,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// runName keeps a script name from placing the run outside the base dir.
func runName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "run"
	}
	return base
}

// List returns the saved runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads back the snapshots written by Save.
func (s *Store) LoadTrace(runID string) ([]script.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []script.Snapshot{}, nil
	}

	snaps := make([]script.Snapshot, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err1 := strconv.Atoi(record[0])
		capacity, err2 := strconv.Atoi(record[5])
		numUsed, err3 := strconv.Atoi(record[6])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("trace %s: malformed row %d", runID, i+1)
		}
		snaps = append(snaps, script.Snapshot{
			Step:     step,
			Title:    record[1],
			Op:       record[2],
			Array:    record[3],
			Kind:     record[4],
			Capacity: capacity,
			NumUsed:  numUsed,
			Contents: record[7],
			Output:   record[8],
		})
	}

	return snaps, nil
}

// Package storage persists runs as flat files: one directory per run
// holding metadata.json, states.csv and, when recorded, coupling.csv.
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

	"github.com/feiyulu/L96-demo/internal/ode"
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
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Timestamp  time.Time `json:"timestamp"`
	Seed       int64     `json:"seed"`
	Dt         float64   `json:"dt"`
	Steps      int       `json:"steps"`
	Integrator string    `json:"integrator"`
	Closure    string    `json:"closure,omitempty"`
	K          int       `json:"k"`
	J          int       `json:"j"`
	F          float64   `json:"f"`
	Diverged   bool      `json:"diverged"`
	DivergedAt int       `json:"diverged_at"`
}

// Save writes one run to disk and returns its generated ID. Unset
// trajectory entries (past a divergence truncation) are simply not
// written; the metadata records where the run stopped.
func (s *Store) Save(meta RunMetadata, tr *ode.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = tr.StepsTaken
	meta.Diverged = tr.Diverged
	meta.DivergedAt = tr.DivergedAt

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

	if err := writeSeries(filepath.Join(runDir, "states.csv"), tr.Times, tr.States); err != nil {
		return "", err
	}
	if tr.Coupling != nil {
		if err := writeSeries(filepath.Join(runDir, "coupling.csv"), tr.Times, tr.Coupling); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeSeries(path string, times []float64, rows []ode.State) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(rows) == 0 || rows[0] == nil {
		return nil
	}

	header := []string{"time"}
	for i := range rows[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range rows {
		if row == nil {
			break
		}
		rec := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadMeta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// LoadStates reads states.csv back into times and state rows.
func (s *Store) LoadStates(runID string) ([]float64, []ode.State, error) {
	return readSeries(filepath.Join(s.baseDir, runID, "states.csv"))
}

// LoadCoupling reads coupling.csv, if the run recorded one.
func (s *Store) LoadCoupling(runID string) ([]float64, []ode.State, error) {
	return readSeries(filepath.Join(s.baseDir, runID, "coupling.csv"))
}

func readSeries(path string) ([]float64, []ode.State, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]ode.State, 0, len(records)-1)
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, err
		}
		row := make(ode.State, len(rec)-1)
		for i, v := range rec[1:] {
			row[i], err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, err
			}
		}
		times = append(times, t)
		states = append(states, row)
	}
	return times, states, nil
}

// Dir returns the on-disk directory of a run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

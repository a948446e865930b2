package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/feiyulu/L96-demo/internal/ode"
)

// RunExport is the self-contained JSON form of a stored run.
type RunExport struct {
	Metadata RunMetadata `json:"metadata"`
	Times    []float64   `json:"times"`
	States   []ode.State `json:"states"`
	Coupling []ode.State `json:"coupling,omitempty"`
}

// ExportJSON writes a stored run as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.LoadMeta(runID)
	if err != nil {
		return err
	}
	times, states, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	exp := RunExport{Metadata: meta, Times: times, States: states}
	if _, coupling, err := s.LoadCoupling(runID); err == nil {
		exp.Coupling = coupling
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}

// ExportCSV streams a stored run's states as CSV.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	times, states, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, row := range states {
		rec := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

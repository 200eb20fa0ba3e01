package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes a run's metadata and metric series as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Series: series})
}

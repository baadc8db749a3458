package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.conditions/pkg/condition"
)

// Summary is an aggregated view over a set of history entries.
type Summary struct {
	ID          string               `json:"id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Total       int                  `json:"total"`
	Passed      int                  `json:"passed"`
	Failed      int                  `json:"failed"`
	Unknown     int                  `json:"unknown"`
	PassRate    float64              `json:"pass_rate"`
	Kinds       map[string]KindTally `json:"kinds"`
}

// KindTally holds per-kind counts.
type KindTally struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// BuildSummary aggregates history entries into a Summary.
func BuildSummary(entries []HistoricalEntry) *Summary {
	s := &Summary{
		ID: fmt.Sprintf(
			"summary_%s",
			time.Now().Format("20060102_150405"),
		),
		GeneratedAt: time.Now(),
		Kinds:       make(map[string]KindTally),
	}

	for _, e := range entries {
		s.Total++
		tally := s.Kinds[e.Kind]
		tally.Total++

		switch e.Status {
		case condition.StatusPassed:
			s.Passed++
			tally.Passed++
		case condition.StatusFailed:
			s.Failed++
			tally.Failed++
		default:
			s.Unknown++
			tally.Failed++
		}

		s.Kinds[e.Kind] = tally
	}

	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total)
	}

	return s
}

// WriteSummary serializes a summary to a JSON file, creating
// parent directories as needed.
func WriteSummary(path string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf(
			"failed to create summary directory: %w", err,
		)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf(
			"failed to write summary %s: %w", path, err,
		)
	}
	return nil
}

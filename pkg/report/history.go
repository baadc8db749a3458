// Package report provides persistent evaluation history and
// aggregate summaries. The checker's own ConditionHistory is a
// single-shot snapshot; the Recorder here accumulates entries
// across calls by listening on the event bus.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"digital.vasic.conditions/pkg/events"
)

// HistoricalEntry represents a single condition evaluation in
// the historical log.
type HistoricalEntry struct {
	RunID         string    `json:"run_id"`
	Timestamp     time.Time `json:"timestamp"`
	Kind          string    `json:"kind"`
	ConditionName string    `json:"condition_name,omitempty"`
	Status        string    `json:"status"`
	Message       string    `json:"message,omitempty"`
}

// AppendToHistory adds an entry built from a notification event
// to the historical log stored at historyPath. Each entry is a
// single JSON line.
func AppendToHistory(
	historyPath string,
	runID string,
	event events.Event,
) error {
	entry := HistoricalEntry{
		RunID:         runID,
		Timestamp:     event.Timestamp,
		Kind:          event.Kind,
		ConditionName: event.ConditionName,
		Status:        event.Status,
		Message:       event.Message,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}

// ReadHistory loads all entries from a JSON-lines history file.
// Malformed lines are skipped.
func ReadHistory(historyPath string) ([]HistoricalEntry, error) {
	file, err := os.Open(historyPath)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	var entries []HistoricalEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry HistoricalEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// Recorder accumulates a persistent multi-call history by
// subscribing to a checker's event bus and appending one entry
// per notification.
type Recorder struct {
	runID       string
	historyPath string
	subs        []events.Subscription
	bus         *events.Bus
}

// NewRecorder creates a Recorder that appends to historyPath.
// Each recorder carries a fresh run id so entries from separate
// runs can be told apart.
func NewRecorder(historyPath string) *Recorder {
	return &Recorder{
		runID:       uuid.NewString(),
		historyPath: historyPath,
	}
}

// RunID returns the recorder's run identifier.
func (r *Recorder) RunID() string { return r.runID }

// Attach subscribes the recorder to both notification channels
// of the bus. Appending failures are silently dropped: history
// is best-effort and must never corrupt the evaluation that
// triggered it.
func (r *Recorder) Attach(bus *events.Bus) {
	r.bus = bus
	handler := func(e events.Event) {
		_ = AppendToHistory(r.historyPath, r.runID, e)
	}
	r.subs = append(r.subs,
		bus.Subscribe(events.ConditionMet, handler),
		bus.Subscribe(events.ConditionFailed, handler),
	)
}

// Detach removes the recorder's subscriptions.
func (r *Recorder) Detach() {
	if r.bus == nil {
		return
	}
	for _, sub := range r.subs {
		r.bus.Unsubscribe(sub)
	}
	r.subs = nil
	r.bus = nil
}

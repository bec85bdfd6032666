package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const eventsFileName = "events.jsonl"

// Event is one line of the append-only edit log. The log is an audit trail,
// not a source of truth: the invoice snapshot stays authoritative and the
// log can be deleted without data loss.
type Event struct {
	ID       string          `json:"id"`
	TS       time.Time       `json:"ts"`
	Type     string          `json:"type"`
	EntityID string          `json:"entityId"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

// AppendEvent appends a single edit event. Append-only, one JSON object per
// line.
func (s Store) AppendEvent(typ, entityID string, payload any) error {
	if typ == "" {
		return errors.New("missing event type")
	}
	if err := s.Ensure(); err != nil {
		return err
	}

	id, err := newRandomID("ev")
	if err != nil {
		return err
	}
	var pb json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		pb = b
	}
	ev := Event{
		ID:       id,
		TS:       time.Now().UTC(),
		Type:     typ,
		EntityID: entityID,
		Payload:  pb,
	}

	f, err := os.OpenFile(s.eventsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

// ReadEvents returns events ordered oldest-first. limit > 0 keeps only the
// most recent entries.
func (s Store) ReadEvents(limit int) ([]Event, error) {
	f, err := os.Open(s.eventsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var out []Event
	lineNo := 0
	for sc.Scan() {
		lineNo++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(b, &ev); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.eventsPath(), lineNo, err)
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Stable: events appended within the same timestamp keep file order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TS.Before(out[j].TS)
	})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	if out == nil {
		out = []Event{}
	}
	return out, nil
}

// Package storage persists run-to-run state in a data directory: the last
// normalized dataset (for offline listing) and a stevne snapshot used to
// detect newly announced stevner.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

const (
	snapshotFile = "snapshot.json"
	rangesFile   = "ranges.json"
)

// Storage handles persistence under a single data directory.
type Storage struct {
	dataDir string
}

// New creates a Storage instance, expanding a leading ~ and creating the
// directory if needed.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// Snapshot records every known stevne at a point in time, keyed by event ID.
type Snapshot struct {
	Stevner   map[string]*StoredStevne `json:"stevner"`
	UpdatedAt string                   `json:"updated_at"` // RFC3339
}

// StoredStevne is a stevne together with the range it belongs to.
type StoredStevne struct {
	BaneID   string       `json:"bane_id"`
	BaneName string       `json:"bane_name"`
	Event    *event.Event `json:"event"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Stevner: make(map[string]*StoredStevne)}
}

// BuildSnapshot flattens a normalized dataset into a snapshot.
func BuildSnapshot(ranges []*skytebane.Range) *Snapshot {
	snap := NewSnapshot()
	for _, r := range ranges {
		for _, evt := range r.Events {
			snap.Stevner[evt.ID] = &StoredStevne{
				BaneID:   r.ID,
				BaneName: r.Name,
				Event:    evt,
			}
		}
	}
	return snap
}

// LoadSnapshot loads the stevne snapshot, returning an empty one when no
// previous run exists.
func (s *Storage) LoadSnapshot() (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Stevner == nil {
		snap.Stevner = make(map[string]*StoredStevne)
	}
	return &snap, nil
}

// SaveSnapshot writes the stevne snapshot to disk.
func (s *Storage) SaveSnapshot(snap *Snapshot) error {
	snap.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, snapshotFile), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// SaveRanges caches a normalized dataset for offline use.
func (s *Storage) SaveRanges(ranges []*skytebane.Range) error {
	data, err := json.MarshalIndent(ranges, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ranges: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, rangesFile), data, 0644); err != nil {
		return fmt.Errorf("writing ranges: %w", err)
	}
	return nil
}

// LoadRanges loads the cached dataset. Returns an error when no cache
// exists yet, since there is nothing sensible to show offline.
func (s *Storage) LoadRanges() ([]*skytebane.Range, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, rangesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no cached dataset in %s, run once without --offline", s.dataDir)
		}
		return nil, fmt.Errorf("reading cached ranges: %w", err)
	}

	var ranges []*skytebane.Range
	if err := json.Unmarshal(data, &ranges); err != nil {
		return nil, fmt.Errorf("parsing cached ranges: %w", err)
	}
	return ranges, nil
}

// Diff returns the stevner in current that were absent from previous,
// ordered by date then event ID.
func Diff(previous, current *Snapshot) []*StoredStevne {
	if previous == nil {
		previous = NewSnapshot()
	}

	var fresh []*StoredStevne
	for id, st := range current.Stevner {
		if _, known := previous.Stevner[id]; !known {
			fresh = append(fresh, st)
		}
	}

	sort.Slice(fresh, func(i, j int) bool {
		if fresh[i].Event.Date != fresh[j].Event.Date {
			return fresh[i].Event.Date < fresh[j].Event.Date
		}
		return fresh[i].Event.ID < fresh[j].Event.ID
	})
	return fresh
}

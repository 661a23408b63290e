// Package store persists simulation runs: one directory per run holding
// metadata, the per-tick stress trace, and the settled structure.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/trusslab/internal/structure"
)

const (
	metadataFile  = "metadata.json"
	traceFile     = "stress.csv"
	structureFile = "structure.json"
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
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration"`
	TickRate  int       `json:"tick_rate"`

	NodeCount    int     `json:"node_count"`
	SegmentCount int     `json:"segment_count"`
	WeightCount  int     `json:"weight_count"`
	MaxStress    float64 `json:"max_stress"`
}

// Save writes a finished run. trace holds one max-stress sample per tick.
func (s *Store) Save(name string, duration float64, tickRate int, st *structure.Structure, trace []float64) (string, error) {
	runID := fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	stats := st.Stats()
	peak := 0.0
	for _, v := range trace {
		if v > peak {
			peak = v
		}
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    time.Now(),
		Duration:     duration,
		TickRate:     tickRate,
		NodeCount:    stats.NodeCount,
		SegmentCount: stats.SegmentCount,
		WeightCount:  stats.WeightCount,
		MaxStress:    peak,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeTrace(runDir, tickRate, trace); err != nil {
		return "", err
	}

	if err := structure.WriteFile(st, filepath.Join(runDir, structureFile)); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeTrace(runDir string, tickRate int, trace []float64) error {
	f, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "max_stress"}); err != nil {
		return err
	}
	for i, v := range trace {
		row := []string{
			strconv.FormatFloat(float64(i)/float64(tickRate), 'f', 6, 64),
			strconv.FormatFloat(v, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStructure reads back the settled structure saved with a run.
func (s *Store) LoadStructure(runID string) (*structure.Structure, error) {
	return structure.ReadFile(filepath.Join(s.baseDir, runID, structureFile))
}

// LoadTrace returns the per-tick times and max-stress samples of a run.
func (s *Store) LoadTrace(runID string) ([]float64, []float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("store: empty trace for %s", runID)
	}

	times := make([]float64, 0, len(rows)-1)
	values := make([]float64, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != 2 {
			return nil, nil, fmt.Errorf("store: malformed trace row in %s", runID)
		}
		tv, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, err
		}
		sv, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, tv)
		values = append(values, sv)
	}
	return times, values, nil
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []*RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
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

package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ortholab/internal/mat3"
	"ortholab/internal/trajectory"
)

// Store persists runs under a base directory, one subdirectory per run
// holding metadata.json and snapshots.csv.
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
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Degree        int       `json:"degree"`
	Coefficients  []float64 `json:"coefficients"`
	Steps         int       `json:"steps"`
	StepsTaken    int       `json:"steps_taken"`
	Normalize     bool      `json:"normalize"`
	FirstUnstable int       `json:"first_unstable"`
}

var csvHeader = []string{
	"step",
	"m00", "m01", "m02", "m10", "m11", "m12", "m20", "m21", "m22",
	"sigma1", "sigma2", "sigma3",
	"unstable",
}

func (s *Store) Save(cfg trajectory.Config, result *trajectory.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Degree:        cfg.Degree,
		Coefficients:  cfg.Coefficients,
		Steps:         cfg.Steps,
		StepsTaken:    result.Steps(),
		Normalize:     cfg.Normalize,
		FirstUnstable: result.FirstUnstable,
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

	csvFile, err := os.Create(filepath.Join(runDir, "snapshots.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, snap := range result.Snapshots {
		row := make([]string, 0, len(csvHeader))
		row = append(row, strconv.Itoa(snap.Step))
		for _, v := range snap.Matrix.Flat() {
			row = append(row, formatFloat(v))
		}
		for _, v := range snap.Sigma {
			row = append(row, formatFloat(v))
		}
		row = append(row, strconv.FormatBool(snap.Unstable))

		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// formatFloat keeps NaN/Inf round-trippable through strconv.ParseFloat.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

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

func (s *Store) LoadSnapshots(runID string) ([]trajectory.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "snapshots.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []trajectory.Snapshot{}, nil
	}

	snapshots := make([]trajectory.Snapshot, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(csvHeader) {
			continue
		}

		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		vals := make([]float64, 0, 9)
		ok := true
		for _, field := range record[1:10] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			continue
		}

		m, err := mat3.FromSlice(vals)
		if err != nil {
			continue
		}

		snap := trajectory.Snapshot{Step: step, Matrix: m}
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(record[10+i], 64)
			if err != nil {
				ok = false
				break
			}
			snap.Sigma[i] = v
		}
		if !ok {
			continue
		}

		snap.Unstable, _ = strconv.ParseBool(record[13])
		snapshots = append(snapshots, snap)
	}

	return snapshots, nil
}

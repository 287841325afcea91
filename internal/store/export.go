package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"ortholab/internal/trajectory"
)

type ExportData struct {
	Degree        int         `json:"degree"`
	Coefficients  []float64   `json:"coefficients"`
	Normalize     bool        `json:"normalize"`
	Steps         int         `json:"steps"`
	FirstUnstable int         `json:"first_unstable"`
	Snapshots     []exportRow `json:"snapshots"`
}

// jsonFloat encodes non-finite values as null; JSON has no NaN or Inf
// and encoding/json errors on them.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

type exportRow struct {
	Step     int         `json:"step"`
	Matrix   []jsonFloat `json:"matrix"`
	Sigma    []jsonFloat `json:"sigma"`
	Unstable bool        `json:"unstable"`
}

func toJSONFloats(vals []float64) []jsonFloat {
	out := make([]jsonFloat, len(vals))
	for i, v := range vals {
		out[i] = jsonFloat(v)
	}
	return out
}

func makeExportData(cfg trajectory.Config, result *trajectory.Result) ExportData {
	data := ExportData{
		Degree:        cfg.Degree,
		Coefficients:  cfg.Coefficients,
		Normalize:     cfg.Normalize,
		Steps:         result.Steps(),
		FirstUnstable: result.FirstUnstable,
		Snapshots:     make([]exportRow, 0, len(result.Snapshots)),
	}

	for _, snap := range result.Snapshots {
		data.Snapshots = append(data.Snapshots, exportRow{
			Step:     snap.Step,
			Matrix:   toJSONFloats(snap.Matrix.Flat()),
			Sigma:    toJSONFloats(snap.Sigma[:]),
			Unstable: snap.Unstable,
		})
	}

	return data
}

func ExportJSON(w io.Writer, cfg trajectory.Config, result *trajectory.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(makeExportData(cfg, result))
}

func ExportJSONFile(path string, cfg trajectory.Config, result *trajectory.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, cfg, result)
}

func ExportCSV(w io.Writer, result *trajectory.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return err
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

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/deskstead/internal/sim"
)

type ExportData struct {
	Preset   string             `json:"preset"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Rows     []Row              `json:"rows"`
	Metrics  map[string]float64 `json:"metrics"`
}

func NewExportData(preset string, cfg sim.Config, result *sim.Result) ExportData {
	return ExportData{
		Preset:   preset,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Steps:    result.StepsTaken,
		Rows:     Rows(result.Samples),
		Metrics:  result.Metrics,
	}
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result.Samples)
}

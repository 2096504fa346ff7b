package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/deskstead/internal/metrics"
	"github.com/san-kum/deskstead/internal/physics"
)

var csvHeader = []string{"time", "tick", "id", "x", "y", "vx", "vy", "contact"}

// Row is one body in one tick.
type Row struct {
	Time    float64    `json:"time"`
	Tick    uint64     `json:"tick"`
	ID      physics.ID `json:"id"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	VX      float64    `json:"vx"`
	VY      float64    `json:"vy"`
	Contact bool       `json:"contact"`
}

// Rows flattens samples into one row per movable body per tick.
func Rows(samples []metrics.Sample) []Row {
	var rows []Row
	for _, s := range samples {
		landed := make(map[physics.ID]bool, len(s.Stats.Contacts))
		for _, c := range s.Stats.Contacts {
			landed[c.Body] = true
		}
		for _, bs := range s.Bodies {
			b := bs.Body
			rows = append(rows, Row{
				Time:    s.Time,
				Tick:    s.Tick,
				ID:      bs.ID,
				X:       b.Position.X(),
				Y:       b.Position.Y(),
				VX:      b.Velocity.X(),
				VY:      b.Velocity.Y(),
				Contact: landed[bs.ID],
			})
		}
	}
	return rows
}

func WriteCSV(w io.Writer, samples []metrics.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range Rows(samples) {
		record := []string{
			strconv.FormatFloat(r.Time, 'f', 6, 64),
			strconv.FormatUint(r.Tick, 10),
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.FormatFloat(r.X, 'f', 6, 64),
			strconv.FormatFloat(r.Y, 'f', 6, 64),
			strconv.FormatFloat(r.VX, 'f', 6, 64),
			strconv.FormatFloat(r.VY, 'f', 6, 64),
			strconv.FormatBool(r.Contact),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses what WriteCSV produced.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("storage: line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	var row Row
	floats := make([]float64, 0, 5)
	for _, i := range []int{0, 3, 4, 5, 6} {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return Row{}, err
		}
		floats = append(floats, v)
	}
	row.Time, row.X, row.Y, row.VX, row.VY = floats[0], floats[1], floats[2], floats[3], floats[4]

	tick, err := strconv.ParseUint(rec[1], 10, 64)
	if err != nil {
		return Row{}, err
	}
	id, err := strconv.ParseUint(rec[2], 10, 64)
	if err != nil {
		return Row{}, err
	}
	contact, err := strconv.ParseBool(rec[7])
	if err != nil {
		return Row{}, err
	}
	row.Tick, row.ID, row.Contact = tick, physics.ID(id), contact
	return row, nil
}

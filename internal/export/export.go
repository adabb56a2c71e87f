// Package export turns engine results into display rows and serialized
// output. Rows carry customary field units (yards, inches, MOA) derived from
// the engine's foot-based samples.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/ballistics/internal/engine"
	"github.com/san-kum/ballistics/internal/traj"
)

const (
	inchesPerFoot = 12.0
	yardsPerFoot  = 1.0 / 3.0
	moaPerRadian  = 60 * 180 / math.Pi

	// energyFactor converts grains and fps into foot-pounds.
	energyFactor = 450400.0
	// ogwFactor is the Optimal Game Weight scale constant.
	ogwFactor = 1.5e-12
)

// Energy is the projectile kinetic energy in foot-pounds for a bullet weight
// in grains and speed in fps.
func Energy(weightGr, speedFPS float64) float64 {
	return weightGr * speedFPS * speedFPS / energyFactor
}

// OptimalGameWeight is the Matunas OGW estimate in pounds.
func OptimalGameWeight(weightGr, speedFPS float64) float64 {
	return weightGr * weightGr * speedFPS * speedFPS * speedFPS * ogwFactor
}

// Row is one display-ready trajectory line.
type Row struct {
	TimeS       float64 `json:"time_s"`
	RangeYd     float64 `json:"range_yd"`
	HeightIn    float64 `json:"height_in"`
	DropAdjMOA  float64 `json:"drop_adj_moa"`
	WindageIn   float64 `json:"windage_in"`
	WindAdjMOA  float64 `json:"wind_adj_moa"`
	VelocityFPS float64 `json:"velocity_fps"`
	Mach        float64 `json:"mach"`
	EnergyFtLb  float64 `json:"energy_ftlb"`
	OGWLb       float64 `json:"ogw_lb"`
	Flags       string  `json:"flags"`
}

// adjustment is the sight correction angle for an offset at a distance.
func adjustment(offsetFt, distanceFt float64) float64 {
	if distanceFt == 0 {
		return 0
	}
	return math.Atan(offsetFt/distanceFt) * moaPerRadian
}

func makeRow(s traj.Sample, weightGr float64) Row {
	speed := s.Speed()
	return Row{
		TimeS:       s.Time,
		RangeYd:     s.Range() * yardsPerFoot,
		HeightIn:    s.Height() * inchesPerFoot,
		DropAdjMOA:  adjustment(s.Height(), s.Range()),
		WindageIn:   s.Windage() * inchesPerFoot,
		WindAdjMOA:  adjustment(s.Windage(), s.Range()),
		VelocityFPS: speed,
		Mach:        s.Mach,
		EnergyFtLb:  Energy(weightGr, speed),
		OGWLb:       OptimalGameWeight(weightGr, speed),
		Flags:       s.Flags.String(),
	}
}

// Rows converts every recorded sample, deriving energy columns from the
// bullet weight in grains.
func Rows(result *engine.Result, weightGr float64) []Row {
	rows := make([]Row, 0, result.Samples.Len())
	for _, s := range result.Samples.Samples() {
		rows = append(rows, makeRow(s, weightGr))
	}
	return rows
}

// Data is the full serialized form of one run.
type Data struct {
	Cartridge string `json:"cartridge,omitempty"`
	Stepper   string `json:"stepper"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	RowCount  int    `json:"row_count"`
	Rows      []Row  `json:"rows"`
}

func NewData(cartridge, stepper string, result *engine.Result, weightGr float64) Data {
	rows := Rows(result, weightGr)
	d := Data{
		Cartridge: cartridge,
		Stepper:   stepper,
		Status:    result.Status.String(),
		RowCount:  len(rows),
		Rows:      rows,
	}
	if result.Reason != engine.ReasonNone {
		d.Reason = result.Reason.String()
	}
	return d
}

func WriteJSON(w io.Writer, data Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data Data) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

var csvHeader = []string{
	"time_s", "range_yd", "height_in", "drop_adj_moa",
	"windage_in", "wind_adj_moa", "velocity_fps", "mach",
	"energy_ftlb", "ogw_lb", "flags",
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatFloat(r.TimeS, 'f', 4, 64),
			strconv.FormatFloat(r.RangeYd, 'f', 2, 64),
			strconv.FormatFloat(r.HeightIn, 'f', 2, 64),
			strconv.FormatFloat(r.DropAdjMOA, 'f', 2, 64),
			strconv.FormatFloat(r.WindageIn, 'f', 2, 64),
			strconv.FormatFloat(r.WindAdjMOA, 'f', 2, 64),
			strconv.FormatFloat(r.VelocityFPS, 'f', 1, 64),
			strconv.FormatFloat(r.Mach, 'f', 3, 64),
			strconv.FormatFloat(r.EnergyFtLb, 'f', 1, 64),
			strconv.FormatFloat(r.OGWLb, 'f', 1, 64),
			r.Flags,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, rows)
}

// ReadCSV parses rows previously written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: %d fields, want %d", i, len(rec), len(csvHeader))
		}
		vals := make([]float64, len(csvHeader)-1)
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d field %s: %w", i, csvHeader[j], err)
			}
			vals[j] = v
		}
		rows = append(rows, Row{
			TimeS: vals[0], RangeYd: vals[1], HeightIn: vals[2], DropAdjMOA: vals[3],
			WindageIn: vals[4], WindAdjMOA: vals[5], VelocityFPS: vals[6], Mach: vals[7],
			EnergyFtLb: vals[8], OGWLb: vals[9], Flags: rec[10],
		})
	}
	return rows, nil
}

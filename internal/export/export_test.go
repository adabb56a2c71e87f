package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/ballistics/internal/engine"
	"github.com/san-kum/ballistics/internal/geom"
	"github.com/san-kum/ballistics/internal/traj"
)

func testResult(t *testing.T) *engine.Result {
	t.Helper()
	seq := traj.NewSequence(3)
	samples := []traj.Sample{
		{Time: 0, Position: geom.New(0, -0.158, 0), Velocity: geom.New(2600, 0, 0), Mach: 2.33, Flags: traj.FlagRange},
		{Time: 0.36, Position: geom.New(900, -1, 0.5), Velocity: geom.New(2300, -11, 2), Mach: 2.06, Flags: traj.FlagRange},
		{Time: 0.78, Position: geom.New(1800, -9.2, 2.1), Velocity: geom.New(2010, -25, 4), Mach: 1.8, Flags: traj.FlagRange},
	}
	for _, s := range samples {
		if err := seq.Append(s); err != nil {
			t.Fatal(err)
		}
	}
	return &engine.Result{Status: engine.Completed, Samples: seq}
}

func TestEnergy(t *testing.T) {
	got := Energy(175, 2600)
	want := 175 * 2600 * 2600 / 450400.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("energy: got %f want %f", got, want)
	}
	if got < 2600 || got > 2650 {
		t.Errorf("175gr at 2600 fps should carry about 2626 ftlb, got %f", got)
	}
}

func TestOptimalGameWeight(t *testing.T) {
	got := OptimalGameWeight(175, 2600)
	if got < 780 || got > 830 {
		t.Errorf("unexpected OGW %f lb", got)
	}
}

func TestRowsConvertUnits(t *testing.T) {
	rows := Rows(testResult(t), 175)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	r := rows[1]
	if math.Abs(r.RangeYd-300) > 1e-9 {
		t.Errorf("900 ft should be 300 yd, got %f", r.RangeYd)
	}
	if math.Abs(r.HeightIn-(-12)) > 1e-9 {
		t.Errorf("-1 ft should be -12 in, got %f", r.HeightIn)
	}
	wantMOA := math.Atan(-1.0/900) * 60 * 180 / math.Pi
	if math.Abs(r.DropAdjMOA-wantMOA) > 1e-9 {
		t.Errorf("drop adjustment: got %f want %f", r.DropAdjMOA, wantMOA)
	}
	if rows[0].DropAdjMOA != 0 {
		t.Errorf("muzzle row has no adjustment, got %f", rows[0].DropAdjMOA)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rows := Rows(testResult(t), 175)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(rows) {
		t.Fatalf("expected %d rows back, got %d", len(rows), len(back))
	}
	// formatted at two decimals
	if math.Abs(back[2].RangeYd-rows[2].RangeYd) > 0.01 {
		t.Errorf("range: got %f want %f", back[2].RangeYd, rows[2].RangeYd)
	}
	if back[0].Flags != rows[0].Flags {
		t.Errorf("flags: got %q want %q", back[0].Flags, rows[0].Flags)
	}
}

func TestWriteJSON(t *testing.T) {
	data := NewData("308win", "rk4", testResult(t), 175)
	if data.RowCount != 3 || data.Status != "completed" {
		t.Fatalf("unexpected data header: %+v", data)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"cartridge": "308win"`) {
		t.Errorf("missing cartridge in output:\n%s", out)
	}
	if strings.Contains(out, `"reason"`) {
		t.Errorf("completed run should omit the reason:\n%s", out)
	}
}

func TestSVG(t *testing.T) {
	rows := Rows(testResult(t), 175)
	svg := SVG(rows, 800, 400, "#00ff00")
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "<path") {
		t.Errorf("malformed svg:\n%s", svg)
	}

	if SVG(rows[:1], 800, 400, "#00ff00") != "" {
		t.Error("single point should produce no svg")
	}
}

package chart

import (
	"math"
	"reflect"
	"testing"

	"utangku/internal/core"
)

func activity(label string, owed, lent int64) core.ActivityPoint {
	return core.ActivityPoint{
		Label: label,
		Owed:  core.Money{Rupiah: owed},
		Lent:  core.Money{Rupiah: lent},
	}
}

func balance(label string, v int64) core.BalancePoint {
	return core.BalancePoint{Label: label, Balance: core.Money{Rupiah: v}}
}

func barRects(cmds []Command, fill Color) []Rect {
	var out []Rect
	for _, c := range cmds {
		if r, ok := c.(Rect); ok && r.Fill == fill && r.W == DefaultBarConfig().BarWidth {
			out = append(out, r)
		}
	}
	return out
}

func TestGroupedBarsHeightRatio(t *testing.T) {
	cfg := DefaultBarConfig()
	series := []core.ActivityPoint{activity("2023", 1_000_000, 500_000)}

	for _, size := range [][2]float64{{800, 400}, {400, 256}} {
		cmds := GroupedBars(series, size[0], size[1], cfg)
		owed := barRects(cmds, cfg.OwedColor)
		lent := barRects(cmds, cfg.LentColor)
		if len(owed) != 1 || len(lent) != 1 {
			t.Fatalf("expected one bar per kind, got %d/%d", len(owed), len(lent))
		}
		ratio := owed[0].H / lent[0].H
		if math.Abs(ratio-2.0) > 1e-9 {
			t.Fatalf("canvas %v: expected height ratio 2, got %f", size, ratio)
		}
	}
}

func TestGroupedBarsBottomAnchored(t *testing.T) {
	cfg := DefaultBarConfig()
	cmds := GroupedBars([]core.ActivityPoint{activity("2024", 2_000_000, 1_000_000)}, 800, 400, cfg)
	baseline := 400 - cfg.MarginBottom
	for _, r := range barRects(cmds, cfg.OwedColor) {
		if math.Abs(r.Y+r.H-baseline) > 1e-9 {
			t.Fatalf("bar not anchored to baseline: y=%f h=%f", r.Y, r.H)
		}
	}
}

func TestGroupedBarsZeroDataUsesScaleFloor(t *testing.T) {
	cfg := DefaultBarConfig()
	cmds := GroupedBars([]core.ActivityPoint{activity("2024", 0, 0)}, 800, 400, cfg)
	for _, r := range barRects(cmds, cfg.OwedColor) {
		if r.H != 0 {
			t.Fatalf("zero data must render zero-height bars, got %f", r.H)
		}
	}
	// No in-bar value labels for invisible bars.
	for _, c := range cmds {
		if txt, ok := c.(Text); ok && txt.Fill == valueTextColor {
			t.Fatalf("unexpected value label on zero-height bar: %+v", txt)
		}
	}
}

func TestGroupedBarsValueLabelThreshold(t *testing.T) {
	cfg := DefaultBarConfig()
	// Owed bar is tall, lent bar renders below the 20px threshold.
	cmds := GroupedBars([]core.ActivityPoint{activity("2024", 10_000_000, 100_000)}, 800, 400, cfg)
	var valueLabels []Text
	for _, c := range cmds {
		if txt, ok := c.(Text); ok && txt.Fill == valueTextColor {
			valueLabels = append(valueLabels, txt)
		}
	}
	if len(valueLabels) != 1 {
		t.Fatalf("expected exactly one value label, got %d", len(valueLabels))
	}
	if valueLabels[0].Content != "10M" {
		t.Fatalf("expected 10M label, got %q", valueLabels[0].Content)
	}
}

func TestGroupedBarsGridlineCount(t *testing.T) {
	cmds := GroupedBars([]core.ActivityPoint{activity("2024", 1, 1)}, 800, 400, DefaultBarConfig())
	lines := 0
	for _, c := range cmds {
		if _, ok := c.(Line); ok {
			lines++
		}
	}
	if lines != gridDivisions+1 {
		t.Fatalf("expected %d gridlines, got %d", gridDivisions+1, lines)
	}
}

func TestGroupedBarsDeterministic(t *testing.T) {
	series := []core.ActivityPoint{
		activity("2023", 1_500_000, 2_000_000),
		activity("2024", 3_000_000, 750_000),
	}
	a := GroupedBars(series, 640, 320, DefaultBarConfig())
	b := GroupedBars(series, 640, 320, DefaultBarConfig())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("projection must be deterministic")
	}
}

func TestGroupedBarsEmpty(t *testing.T) {
	if cmds := GroupedBars(nil, 800, 400, DefaultBarConfig()); cmds != nil {
		t.Fatalf("empty series must yield no commands, got %d", len(cmds))
	}
}

func TestBalanceLineFlatSeries(t *testing.T) {
	cfg := DefaultLineConfig()
	series := []core.BalancePoint{balance("Jan", 100), balance("Feb", 100)}
	cmds := BalanceLine(series, 800, 400, cfg)
	if len(cmds) == 0 {
		t.Fatalf("flat series must still project")
	}
	var line *Line
	for _, c := range cmds {
		if l, ok := c.(Line); ok && l.Stroke == cfg.LineColor {
			line = &l
			break
		}
	}
	if line == nil {
		t.Fatalf("expected a data line")
	}
	if len(line.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(line.Points))
	}
	if line.Points[0].Y != line.Points[1].Y {
		t.Fatalf("flat series must be colinear: %+v", line.Points)
	}
	for _, p := range line.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			t.Fatalf("range floor must prevent division blowups: %+v", p)
		}
	}
}

func TestBalanceLineSinglePoint(t *testing.T) {
	cfg := DefaultLineConfig()
	cmds := BalanceLine([]core.BalancePoint{balance("Jan", 500)}, 800, 400, cfg)
	markers := 0
	for _, c := range cmds {
		switch v := c.(type) {
		case Line:
			if v.Stroke == cfg.LineColor {
				t.Fatalf("single point must not emit a line segment")
			}
		case FilledPath:
			t.Fatalf("single point must not emit a filled area")
		case Rect:
			if v.Fill == cfg.MarkerColor {
				markers++
			}
		}
	}
	if markers != 1 {
		t.Fatalf("expected exactly one marker, got %d", markers)
	}
}

func TestBalanceLineFilledArea(t *testing.T) {
	cfg := DefaultLineConfig()
	series := []core.BalancePoint{balance("Jan", 0), balance("Feb", 2_000_000), balance("Mar", 1_000_000)}
	cmds := BalanceLine(series, 800, 400, cfg)
	var area *FilledPath
	for _, c := range cmds {
		if f, ok := c.(FilledPath); ok {
			area = &f
			break
		}
	}
	if area == nil {
		t.Fatalf("expected a filled area")
	}
	baseline := 400 - cfg.MarginBottom
	first, last := area.Points[0], area.Points[len(area.Points)-1]
	if first.Y != baseline || last.Y != baseline {
		t.Fatalf("area must close on the baseline: first=%+v last=%+v", first, last)
	}
}

func TestBalanceLineDeterministic(t *testing.T) {
	series := []core.BalancePoint{balance("Jan", -500_000), balance("Feb", 1_250_000)}
	a := BalanceLine(series, 500, 300, DefaultLineConfig())
	b := BalanceLine(series, 500, 300, DefaultLineConfig())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("projection must be deterministic")
	}
}

func TestBalanceLineEmpty(t *testing.T) {
	if cmds := BalanceLine(nil, 800, 400, DefaultLineConfig()); cmds != nil {
		t.Fatalf("empty series must yield no commands")
	}
}

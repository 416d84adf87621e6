package chart

import (
	"utangku/internal/core"
)

// LineConfig controls the balance line projection.
type LineConfig struct {
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	// RangeFloor is the minimum value range the y axis spans, so a flat
	// series never divides by a near-zero range.
	RangeFloor   float64
	LineWidth    float64
	MarkerRadius float64
	Title        string

	LineColor   Color
	FillColor   Color
	MarkerColor Color
}

// DefaultLineConfig mirrors the dashboard's balance history chart.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		MarginLeft:   50,
		MarginRight:  30,
		MarginTop:    30,
		MarginBottom: 50,
		RangeFloor:   1_000_000,
		LineWidth:    3,
		MarkerRadius: 4,
		Title:        "Balance Trend",
		LineColor:    "#3b82f6",
		FillColor:    "rgba(59,130,246,0.1)",
		MarkerColor:  "#3b82f6",
	}
}

// BalanceLine projects a chronologically ordered balance series as a line
// with a filled area down to the plot baseline. A single-point series emits
// only its marker, no line segment. An empty series yields no commands.
func BalanceLine(series []core.BalancePoint, width, height float64, cfg LineConfig) []Command {
	if len(series) == 0 {
		return nil
	}
	if cfg.RangeFloor <= 0 {
		cfg = DefaultLineConfig()
	}

	plotW := width - cfg.MarginLeft - cfg.MarginRight
	plotH := height - cfg.MarginTop - cfg.MarginBottom
	baseline := cfg.MarginTop + plotH

	// Scale always includes zero so the baseline is meaningful.
	minValue, maxValue := 0.0, 0.0
	for _, p := range series {
		v := float64(p.Balance.Rupiah)
		if v < minValue {
			minValue = v
		}
		if v > maxValue {
			maxValue = v
		}
	}
	valueRange := maxValue - minValue
	if valueRange < cfg.RangeFloor {
		valueRange = cfg.RangeFloor
	}

	// Index maps linearly across the plot width; a single point sits at the
	// left edge.
	step := 0.0
	if len(series) > 1 {
		step = plotW / float64(len(series)-1)
	}
	points := make([]Point, len(series))
	for i, p := range series {
		normalized := (float64(p.Balance.Rupiah) - minValue) / valueRange
		points[i] = Point{
			X: cfg.MarginLeft + float64(i)*step,
			Y: baseline - normalized*plotH,
		}
	}

	var cmds []Command
	cmds = append(cmds, Rect{X: 0, Y: 0, W: width, H: height, Fill: backgroundColor})

	for i := 0; i <= gridDivisions; i++ {
		y := cfg.MarginTop + plotH*float64(i)/gridDivisions
		cmds = append(cmds, Line{
			Points: []Point{{X: cfg.MarginLeft, Y: y}, {X: cfg.MarginLeft + plotW, Y: y}},
			Stroke: gridColor,
			Width:  1,
		})
	}

	if len(points) > 1 {
		cmds = append(cmds, Line{Points: points, Stroke: cfg.LineColor, Width: cfg.LineWidth})

		// Filled area between the line and the baseline.
		area := make([]Point, 0, len(points)+2)
		area = append(area, Point{X: points[0].X, Y: baseline})
		area = append(area, points...)
		area = append(area, Point{X: points[len(points)-1].X, Y: baseline})
		cmds = append(cmds, FilledPath{Points: area, Fill: cfg.FillColor})
	}

	// Point markers: squares centered on each data point, the closest shape
	// in the command vocabulary.
	for _, p := range points {
		cmds = append(cmds, Rect{
			X: p.X - cfg.MarkerRadius, Y: p.Y - cfg.MarkerRadius,
			W: cfg.MarkerRadius * 2, H: cfg.MarkerRadius * 2,
			Fill: cfg.MarkerColor,
		})
	}

	for i, p := range series {
		cmds = append(cmds, Text{
			X: points[i].X, Y: baseline + 20,
			Content: p.Label, Font: axisFont, Fill: axisTextColor, Align: AlignCenter,
		})
	}
	for i := 0; i <= gridDivisions; i++ {
		value := minValue + valueRange*float64(gridDivisions-i)/gridDivisions
		y := cfg.MarginTop + plotH*float64(i)/gridDivisions
		cmds = append(cmds, Text{
			X: cfg.MarginLeft - 10, Y: y + 4,
			Content: axisLabel(value), Font: axisFont, Fill: axisTextColor, Align: AlignRight,
		})
	}

	if cfg.Title != "" {
		cmds = append(cmds, Text{
			X: width / 2, Y: 20, Content: cfg.Title, Font: titleFont, Fill: titleTextColor, Align: AlignCenter,
		})
	}
	return cmds
}

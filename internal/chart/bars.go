package chart

import (
	"utangku/internal/core"
)

// BarConfig controls the grouped bar projection. Zero values are replaced
// by DefaultBarConfig's.
type BarConfig struct {
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	BarWidth     float64
	PairGap      float64 // gap between the two bars of one group
	GroupSpacing float64 // gap between groups
	// ScaleFloor is the minimum value the y axis is scaled to. It prevents
	// division by zero on all-zero data and keeps near-zero data from
	// rendering as full-height bars.
	ScaleFloor float64
	// LabelThreshold is the minimum bar height, in pixels, for an in-bar
	// value label to stay legible.
	LabelThreshold float64
	Title          string

	OwedColor  Color
	LentColor  Color
	OwedLegend string
	LentLegend string
}

// DefaultBarConfig mirrors the dashboard's yearly activity chart.
func DefaultBarConfig() BarConfig {
	return BarConfig{
		MarginLeft:     60,
		MarginRight:    20,
		MarginTop:      50,
		MarginBottom:   50,
		BarWidth:       60,
		PairGap:        5,
		GroupSpacing:   40,
		ScaleFloor:     1_000_000,
		LabelThreshold: 20,
		Title:          "Yearly Financial Summary",
		OwedColor:      "#ef4444",
		LentColor:      "#22c55e",
		OwedLegend:     "Utang",
		LentLegend:     "Piutang",
	}
}

const (
	backgroundColor = Color("#f8fafc")
	gridColor       = Color("#e2e8f0")
	axisTextColor   = Color("#6b7280")
	labelTextColor  = Color("#374151")
	valueTextColor  = Color("#ffffff")
	titleTextColor  = Color("#1f2937")

	axisFont  = "12px Inter, sans-serif"
	labelFont = "14px Inter, sans-serif"
	valueFont = "10px Inter, sans-serif"
	titleFont = "bold 14px Inter, sans-serif"
)

// GroupedBars projects a grouped activity series (one owed and one lent bar
// per bucket) onto a canvas of the given pixel size. An empty series yields
// no commands.
func GroupedBars(series []core.ActivityPoint, width, height float64, cfg BarConfig) []Command {
	if len(series) == 0 {
		return nil
	}
	if cfg.ScaleFloor <= 0 {
		cfg = DefaultBarConfig()
	}

	plotW := width - cfg.MarginLeft - cfg.MarginRight
	plotH := height - cfg.MarginTop - cfg.MarginBottom

	maxValue := cfg.ScaleFloor
	for _, p := range series {
		if v := float64(p.Owed.Rupiah); v > maxValue {
			maxValue = v
		}
		if v := float64(p.Lent.Rupiah); v > maxValue {
			maxValue = v
		}
	}

	var cmds []Command
	cmds = append(cmds, Rect{X: 0, Y: 0, W: width, H: height, Fill: backgroundColor})

	// Horizontal gridlines at fixed fractional divisions.
	for i := 0; i <= gridDivisions; i++ {
		y := cfg.MarginTop + plotH*float64(i)/gridDivisions
		cmds = append(cmds, Line{
			Points: []Point{{X: cfg.MarginLeft, Y: y}, {X: cfg.MarginLeft + plotW, Y: y}},
			Stroke: gridColor,
			Width:  1,
		})
	}

	for i, p := range series {
		x := cfg.MarginLeft + float64(i)*(cfg.BarWidth*2+cfg.GroupSpacing)
		baseline := cfg.MarginTop + plotH

		owedH := float64(p.Owed.Rupiah) / maxValue * plotH
		cmds = append(cmds, Rect{
			X: x, Y: baseline - owedH, W: cfg.BarWidth, H: owedH, Fill: cfg.OwedColor,
		})

		lentH := float64(p.Lent.Rupiah) / maxValue * plotH
		cmds = append(cmds, Rect{
			X: x + cfg.BarWidth + cfg.PairGap, Y: baseline - lentH, W: cfg.BarWidth, H: lentH, Fill: cfg.LentColor,
		})

		cmds = append(cmds, Text{
			X: x + cfg.BarWidth, Y: baseline + 25,
			Content: p.Label, Font: labelFont, Fill: labelTextColor, Align: AlignCenter,
		})

		// In-bar value labels only when the bar is tall enough to read.
		if owedH > cfg.LabelThreshold {
			cmds = append(cmds, Text{
				X: x + cfg.BarWidth/2, Y: baseline - owedH/2 + 3,
				Content: axisLabel(float64(p.Owed.Rupiah)), Font: valueFont, Fill: valueTextColor, Align: AlignCenter,
			})
		}
		if lentH > cfg.LabelThreshold {
			cmds = append(cmds, Text{
				X: x + cfg.BarWidth + cfg.PairGap + cfg.BarWidth/2, Y: baseline - lentH/2 + 3,
				Content: axisLabel(float64(p.Lent.Rupiah)), Font: valueFont, Fill: valueTextColor, Align: AlignCenter,
			})
		}
	}

	for i := 0; i <= gridDivisions; i++ {
		value := maxValue * float64(gridDivisions-i) / gridDivisions
		y := cfg.MarginTop + plotH*float64(i)/gridDivisions
		cmds = append(cmds, Text{
			X: cfg.MarginLeft - 10, Y: y + 4,
			Content: axisLabel(value), Font: axisFont, Fill: axisTextColor, Align: AlignRight,
		})
	}

	// Legend.
	cmds = append(cmds,
		Rect{X: cfg.MarginLeft, Y: cfg.MarginTop - 35, W: 15, H: 15, Fill: cfg.OwedColor},
		Text{X: cfg.MarginLeft + 20, Y: cfg.MarginTop - 25, Content: cfg.OwedLegend, Font: axisFont, Fill: labelTextColor, Align: AlignLeft},
		Rect{X: cfg.MarginLeft + 80, Y: cfg.MarginTop - 35, W: 15, H: 15, Fill: cfg.LentColor},
		Text{X: cfg.MarginLeft + 100, Y: cfg.MarginTop - 25, Content: cfg.LentLegend, Font: axisFont, Fill: labelTextColor, Align: AlignLeft},
	)

	if cfg.Title != "" {
		cmds = append(cmds, Text{
			X: width / 2, Y: 20, Content: cfg.Title, Font: titleFont, Fill: titleTextColor, Align: AlignCenter,
		})
	}
	return cmds
}

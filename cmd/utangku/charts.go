package main

import (
	"fmt"
	"os"
	"path/filepath"

	"utangku/internal/chart"
	"utangku/internal/chart/svg"
	"utangku/internal/dashboard"
)

// renderCharts writes one SVG per chart widget into the configured output
// directory. A widget that failed or came back empty is skipped with a note;
// the others still render.
func (a *app) renderCharts(page dashboard.Page) error {
	if err := os.MkdirAll(a.cfg.ChartOutDir, 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	width := float64(a.cfg.ChartWidth)
	height := float64(a.cfg.ChartHeight)

	var cmds []chart.Command

	if page.Yearly.OK() {
		cmds = chart.GroupedBars(page.Yearly.Data, width, height, chart.DefaultBarConfig())
		if err := a.writeChart("yearly.svg", cmds); err != nil {
			return err
		}
	} else {
		a.widgetError("yearly chart", page.Yearly.Err)
	}

	if page.Weekly.OK() {
		cfg := chart.DefaultBarConfig()
		cfg.Title = "Weekly Activity"
		cmds = chart.GroupedBars(page.Weekly.Data, width, height, cfg)
		if err := a.writeChart("weekly.svg", cmds); err != nil {
			return err
		}
	} else {
		a.widgetError("weekly chart", page.Weekly.Err)
	}

	if page.Balance.OK() {
		cmds = chart.BalanceLine(page.Balance.Data, width, height, chart.DefaultLineConfig())
		if err := a.writeChart("balance.svg", cmds); err != nil {
			return err
		}
	} else {
		a.widgetError("balance chart", page.Balance.Err)
	}
	return nil
}

func (a *app) writeChart(name string, cmds []chart.Command) error {
	path := filepath.Join(a.cfg.ChartOutDir, name)
	if len(cmds) == 0 {
		fmt.Fprintf(a.stdout, "  %s: no data, skipped\n", name)
		return nil
	}
	doc := svg.Render(cmds, a.cfg.ChartWidth, a.cfg.ChartHeight)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(a.stdout, "  wrote %s\n", path)
	return nil
}

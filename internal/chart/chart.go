// Package chart projects numeric series onto 2D draw primitives.
//
// Projections are pure: the same series, canvas size and config always
// produce the same ordered command list, so output can be snapshot-tested
// without any rendering surface. Rendering (SVG, terminal, anything with a
// 2D primitive set) is a separate concern that just walks the commands.
package chart

import "strconv"

// Color is a CSS color value ("#ef4444", "rgba(59,130,246,0.1)").
type Color string

type Point struct {
	X, Y float64
}

// Command is one draw instruction. The closed set of implementations is
// Rect, Line, FilledPath and Text.
type Command interface {
	cmd()
}

// Rect is an axis-aligned filled rectangle.
type Rect struct {
	X, Y, W, H float64
	Fill       Color
}

// Line is an open polyline.
type Line struct {
	Points []Point
	Stroke Color
	Width  float64
}

// FilledPath is a closed, filled polygon.
type FilledPath struct {
	Points []Point
	Fill   Color
}

// Align is horizontal text alignment relative to the anchor point.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Text is a single text label.
type Text struct {
	X, Y    float64
	Content string
	Font    string
	Fill    Color
	Align   Align
}

func (Rect) cmd()       {}
func (Line) cmd()       {}
func (FilledPath) cmd() {}
func (Text) cmd()       {}

// gridDivisions is the fixed number of horizontal gridline intervals, drawn
// independent of the data.
const gridDivisions = 5

// axisLabel renders an amount for axis and bar labels the way the dashboard
// shows them: millions, rounded half-away-from-zero, suffixed with "M".
func axisLabel(v float64) string {
	millions := v / 1_000_000
	var rounded int64
	if millions < 0 {
		rounded = -int64(-millions + 0.5)
	} else {
		rounded = int64(millions + 0.5)
	}
	return strconv.FormatInt(rounded, 10) + "M"
}

// Package svg renders chart draw commands as an SVG document. It holds no
// geometry of its own; every coordinate comes from the projection.
package svg

import (
	"fmt"
	"strings"

	"utangku/internal/chart"
)

// Render walks the command list in order and emits one SVG element per
// command, so the document is as deterministic as the projection.
func Render(cmds []chart.Command, width, height int) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	b.WriteByte('\n')

	for _, c := range cmds {
		switch v := c.(type) {
		case chart.Rect:
			fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
				num(v.X), num(v.Y), num(v.W), num(v.H), v.Fill)
		case chart.Line:
			fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
				pointList(v.Points), v.Stroke, num(v.Width))
		case chart.FilledPath:
			fmt.Fprintf(&b, `<polygon points="%s" fill="%s"/>`,
				pointList(v.Points), v.Fill)
		case chart.Text:
			fmt.Fprintf(&b, `<text x="%s" y="%s" style="font:%s" fill="%s" text-anchor="%s">%s</text>`,
				num(v.X), num(v.Y), v.Font, v.Fill, anchor(v.Align), escape(v.Content))
		}
		b.WriteByte('\n')
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func pointList(points []chart.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats coordinates compactly: no exponent, no trailing zeros.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func anchor(a chart.Align) string {
	switch a {
	case chart.AlignCenter:
		return "middle"
	case chart.AlignRight:
		return "end"
	default:
		return "start"
	}
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}

package analytics

import (
	"fmt"
	"math"
	"strings"
)

// Point is one {label, value} pair consumed by the chart renderer.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSpec is the tagged chart variant consumed by RenderSVG. Layout math
// lives in the layout helpers; only the Render methods emit markup.
type ChartSpec interface {
	title() string
	empty() bool
}

// LineSpec describes a line chart with optional area fill.
type LineSpec struct {
	Title  string  `json:"title"`
	Points []Point `json:"points"`
	Fill   bool    `json:"fill"`
}

// BarSpec describes a vertical bar chart.
type BarSpec struct {
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}

// PieSpec describes a donut pie chart with a legend.
type PieSpec struct {
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}

func (s LineSpec) title() string { return s.Title }
func (s LineSpec) empty() bool   { return len(s.Points) == 0 }
func (s BarSpec) title() string  { return s.Title }
func (s BarSpec) empty() bool    { return len(s.Points) == 0 }
func (s PieSpec) title() string  { return s.Title }
func (s PieSpec) empty() bool    { return len(s.Points) == 0 }

const (
	chartWidth    = 600.0
	chartHeight   = 300.0
	chartPadding  = 40.0
	gridLineCount = 4
	minBarHeight  = 3.0 // zero bars stay visible, distinguishable from missing
	donutRatio    = 0.55
)

var pieColors = []string{"#4f46e5", "#059669", "#d97706", "#dc2626", "#0891b2", "#7c3aed", "#db2777", "#65a30d"}

// RenderSVG renders any chart spec. Empty data degrades to a placeholder
// rather than dividing by zero.
func RenderSVG(spec ChartSpec) string {
	if spec.empty() {
		return renderPlaceholder(spec.title())
	}

	switch s := spec.(type) {
	case LineSpec:
		return renderLine(s)
	case BarSpec:
		return renderBar(s)
	case PieSpec:
		return renderPie(s)
	default:
		return renderPlaceholder(spec.title())
	}
}

// ---------- layout ----------

type xy struct {
	X, Y float64
}

// lineLayout maps points into the viewport using the data's own min/max as
// the vertical scale, with a small padding so extremes don't touch the frame.
func lineLayout(points []Point) []xy {
	minVal, maxVal := points[0].Value, points[0].Value
	for _, p := range points {
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	span := maxVal - minVal
	pad := span * 0.1
	if span == 0 {
		pad = 1 // flat series renders as a centered line
	}
	minVal -= pad
	maxVal += pad
	span = maxVal - minVal

	plotWidth := chartWidth - 2*chartPadding
	plotHeight := chartHeight - 2*chartPadding

	step := 0.0
	if len(points) > 1 {
		step = plotWidth / float64(len(points)-1)
	}

	coords := make([]xy, len(points))
	for i, p := range points {
		x := chartPadding + step*float64(i)
		if len(points) == 1 {
			x = chartWidth / 2
		}
		y := chartPadding + plotHeight*(1-(p.Value-minVal)/span)
		coords[i] = xy{X: x, Y: y}
	}
	return coords
}

// barLayout normalizes bar heights against the series maximum, guaranteeing
// a minimum visible height.
func barLayout(points []Point) []float64 {
	maxVal := 0.0
	for _, p := range points {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	plotHeight := chartHeight - 2*chartPadding
	heights := make([]float64, len(points))
	for i, p := range points {
		h := 0.0
		if maxVal > 0 {
			h = plotHeight * p.Value / maxVal
		}
		if h < minBarHeight {
			h = minBarHeight
		}
		heights[i] = h
	}
	return heights
}

type pieSlice struct {
	StartAngle float64
	SweepAngle float64
	Color      string
	Label      string
	Value      float64
}

// pieLayout accumulates sweep angles across slices in input order.
func pieLayout(points []Point) ([]pieSlice, float64) {
	var total float64
	for _, p := range points {
		total += p.Value
	}

	slices := make([]pieSlice, 0, len(points))
	start := 0.0
	for i, p := range points {
		sweep := 0.0
		if total > 0 {
			sweep = p.Value / total * 360
		}
		slices = append(slices, pieSlice{
			StartAngle: start,
			SweepAngle: sweep,
			Color:      pieColors[i%len(pieColors)],
			Label:      p.Label,
			Value:      p.Value,
		})
		start += sweep
	}
	return slices, total
}

// arcPath builds an SVG path for one pie slice. Angles are degrees measured
// clockwise from 12 o'clock.
func arcPath(cx, cy, r, startAngle, sweepAngle float64) string {
	toRad := func(deg float64) float64 { return (deg - 90) * math.Pi / 180 }

	x1 := cx + r*math.Cos(toRad(startAngle))
	y1 := cy + r*math.Sin(toRad(startAngle))
	x2 := cx + r*math.Cos(toRad(startAngle+sweepAngle))
	y2 := cy + r*math.Sin(toRad(startAngle+sweepAngle))

	largeArc := 0
	if sweepAngle > 180 {
		largeArc = 1
	}

	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		cx, cy, x1, y1, r, r, largeArc, x2, y2)
}

// ---------- markup emission ----------

func svgOpen(b *strings.Builder) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`,
		chartWidth, chartHeight, chartWidth, chartHeight)
}

func svgTitle(b *strings.Builder, title string) {
	if title != "" {
		fmt.Fprintf(b, `<text x="%.0f" y="20" font-size="14" font-weight="bold" fill="#111827">%s</text>`,
			chartPadding, escapeText(title))
	}
}

func renderPlaceholder(title string) string {
	var b strings.Builder
	svgOpen(&b)
	svgTitle(&b, title)
	fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" text-anchor="middle" font-size="13" fill="#9ca3af">No data available</text>`,
		chartWidth/2, chartHeight/2)
	b.WriteString(`</svg>`)
	return b.String()
}

func renderLine(spec LineSpec) string {
	coords := lineLayout(spec.Points)

	var b strings.Builder
	svgOpen(&b)
	svgTitle(&b, spec.Title)

	// Horizontal grid reference lines, evenly spaced.
	plotHeight := chartHeight - 2*chartPadding
	for i := 0; i <= gridLineCount; i++ {
		y := chartPadding + plotHeight*float64(i)/gridLineCount
		fmt.Fprintf(&b, `<line x1="%.0f" y1="%.2f" x2="%.0f" y2="%.2f" stroke="#e5e7eb" stroke-width="1"/>`,
			chartPadding, y, chartWidth-chartPadding, y)
	}

	polyline := make([]string, len(coords))
	for i, c := range coords {
		polyline[i] = fmt.Sprintf("%.2f,%.2f", c.X, c.Y)
	}

	if spec.Fill {
		baseline := chartHeight - chartPadding
		area := fmt.Sprintf("%.2f,%.2f %s %.2f,%.2f",
			coords[0].X, baseline, strings.Join(polyline, " "), coords[len(coords)-1].X, baseline)
		fmt.Fprintf(&b, `<polygon points="%s" fill="#4f46e5" opacity="0.1"/>`, area)
	}

	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#4f46e5" stroke-width="2"/>`,
		strings.Join(polyline, " "))

	for i, c := range coords {
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="#4f46e5"/>`, c.X, c.Y)
		fmt.Fprintf(&b, `<text x="%.2f" y="%.0f" text-anchor="middle" font-size="10" fill="#6b7280">%s</text>`,
			c.X, chartHeight-chartPadding+16, escapeText(spec.Points[i].Label))
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func renderBar(spec BarSpec) string {
	heights := barLayout(spec.Points)

	var b strings.Builder
	svgOpen(&b)
	svgTitle(&b, spec.Title)

	plotWidth := chartWidth - 2*chartPadding
	slot := plotWidth / float64(len(spec.Points))
	barWidth := slot * 0.6
	baseline := chartHeight - chartPadding

	for i, p := range spec.Points {
		x := chartPadding + slot*float64(i) + (slot-barWidth)/2
		y := baseline - heights[i]

		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#059669" rx="2"/>`,
			x, y, barWidth, heights[i])
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" font-size="10" fill="#374151">%s</text>`,
			x, y-4, formatValue(p.Value))
		fmt.Fprintf(&b, `<text x="%.2f" y="%.0f" text-anchor="middle" font-size="10" fill="#6b7280">%s</text>`,
			x+barWidth/2, baseline+16, escapeText(p.Label))
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func renderPie(spec PieSpec) string {
	slices, total := pieLayout(spec.Points)

	var b strings.Builder
	svgOpen(&b)
	svgTitle(&b, spec.Title)

	cx := chartHeight / 2
	cy := chartHeight / 2
	r := chartHeight/2 - chartPadding

	for _, s := range slices {
		if s.SweepAngle <= 0 {
			continue
		}
		if s.SweepAngle >= 360 {
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`, cx, cy, r, s.Color)
			continue
		}
		fmt.Fprintf(&b, `<path d="%s" fill="%s"/>`, arcPath(cx, cy, r, s.StartAngle, s.SweepAngle), s.Color)
	}

	// Donut hole with the grand total centered.
	fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="#ffffff"/>`, cx, cy, r*donutRatio)
	fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" font-size="16" font-weight="bold" fill="#111827">%s</text>`,
		cx, cy+5, formatValue(total))

	// Legend on the right.
	legendX := chartHeight + 20
	for i, s := range slices {
		y := chartPadding + float64(i)*22
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="12" height="12" fill="%s" rx="2"/>`, legendX, y, s.Color)
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" font-size="11" fill="#374151">%s: %s</text>`,
			legendX+18, y+10, escapeText(s.Label), formatValue(s.Value))
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func escapeText(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}

package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSVG_EmptyDataShowsPlaceholder(t *testing.T) {
	specs := []ChartSpec{
		LineSpec{Title: "Revenue"},
		BarSpec{Title: "Bookings"},
		PieSpec{Title: "Breakdown"},
	}

	for _, spec := range specs {
		svg := RenderSVG(spec)
		assert.Contains(t, svg, "No data available")
		assert.Contains(t, svg, spec.title())
		assert.True(t, strings.HasPrefix(svg, "<svg"))
		assert.True(t, strings.HasSuffix(svg, "</svg>"))
	}
}

func TestRenderSVG_Line(t *testing.T) {
	spec := LineSpec{
		Title:  "Monthly Revenue",
		Points: []Point{{Label: "Jan", Value: 100}, {Label: "Feb", Value: 200}, {Label: "Mar", Value: 150}},
		Fill:   true,
	}

	svg := RenderSVG(spec)

	assert.Contains(t, svg, "<polyline")
	assert.Contains(t, svg, "<polygon")
	assert.Contains(t, svg, "Jan")
	assert.Contains(t, svg, "Mar")
	assert.NotContains(t, svg, "No data available")
}

func TestRenderSVG_BarKeepsZeroValuesVisible(t *testing.T) {
	spec := BarSpec{
		Title:  "Bookings by Day",
		Points: []Point{{Label: "Sun", Value: 0}, {Label: "Mon", Value: 10}},
	}

	svg := RenderSVG(spec)

	assert.Contains(t, svg, "<rect")
	assert.Contains(t, svg, `height="3.00"`)
}

func TestLineLayout_FlatSeriesCentered(t *testing.T) {
	points := []Point{{Value: 50}, {Value: 50}, {Value: 50}}
	coords := lineLayout(points)

	require.Len(t, coords, 3)
	mid := chartPadding + (chartHeight-2*chartPadding)/2
	for _, c := range coords {
		assert.InDelta(t, mid, c.Y, 1e-9)
	}
}

func TestLineLayout_SinglePointCentered(t *testing.T) {
	coords := lineLayout([]Point{{Value: 42}})

	require.Len(t, coords, 1)
	assert.InDelta(t, chartWidth/2, coords[0].X, 1e-9)
}

func TestBarLayout(t *testing.T) {
	heights := barLayout([]Point{{Value: 0}, {Value: 5}, {Value: 10}})

	require.Len(t, heights, 3)
	plotHeight := chartHeight - 2*chartPadding
	assert.InDelta(t, minBarHeight, heights[0], 1e-9)
	assert.InDelta(t, plotHeight/2, heights[1], 1e-9)
	assert.InDelta(t, plotHeight, heights[2], 1e-9)
}

func TestPieLayout_AnglesSumTo360(t *testing.T) {
	slices, total := pieLayout([]Point{
		{Label: "A", Value: 1},
		{Label: "B", Value: 1},
		{Label: "C", Value: 2},
	})

	require.Len(t, slices, 3)
	assert.InDelta(t, 4.0, total, 1e-9)
	assert.InDelta(t, 90.0, slices[0].SweepAngle, 1e-9)
	assert.InDelta(t, 90.0, slices[1].SweepAngle, 1e-9)
	assert.InDelta(t, 180.0, slices[2].SweepAngle, 1e-9)

	// Slices tile the circle in input order.
	assert.InDelta(t, 0.0, slices[0].StartAngle, 1e-9)
	assert.InDelta(t, 90.0, slices[1].StartAngle, 1e-9)
	assert.InDelta(t, 180.0, slices[2].StartAngle, 1e-9)
	last := slices[2]
	assert.InDelta(t, 360.0, last.StartAngle+last.SweepAngle, 1e-9)
}

func TestPieLayout_ZeroTotal(t *testing.T) {
	slices, total := pieLayout([]Point{{Label: "A", Value: 0}})

	require.Len(t, slices, 1)
	assert.InDelta(t, 0.0, total, 1e-9)
	assert.InDelta(t, 0.0, slices[0].SweepAngle, 1e-9)
}

func TestRenderSVG_SingleSliceRendersFullCircle(t *testing.T) {
	spec := PieSpec{
		Title:  "Earnings",
		Points: []Point{{Label: "Net Earnings", Value: 540}},
	}

	svg := RenderSVG(spec)

	// A 360 degree sweep degrades an arc path into a plain circle.
	assert.Contains(t, svg, `<circle`)
	assert.NotContains(t, svg, "<path")
	assert.Contains(t, svg, "Net Earnings")
	assert.Contains(t, svg, "540")
}

func TestRenderSVG_PieLegendAndTotal(t *testing.T) {
	spec := PieSpec{
		Title: "Earnings Breakdown",
		Points: []Point{
			{Label: "Net Earnings", Value: 540},
			{Label: "Platform Fees", Value: 60},
		},
	}

	svg := RenderSVG(spec)

	assert.Contains(t, svg, "<path")
	assert.Contains(t, svg, "Net Earnings: 540")
	assert.Contains(t, svg, "Platform Fees: 60")
	assert.Contains(t, svg, ">600<") // donut center shows the grand total
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "Fish &amp; Chips", escapeText("Fish & Chips"))
	assert.Equal(t, "&lt;svg&gt;", escapeText("<svg>"))
	assert.Equal(t, "say &quot;hi&quot;", escapeText(`say "hi"`))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "600", formatValue(600))
	assert.Equal(t, "599.99", formatValue(599.99))
}

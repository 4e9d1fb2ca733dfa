package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthlyEarningsCSV(t *testing.T) {
	earnings := []MonthlyEarning{
		{Month: "Jan", Year: 2024, Gross: 1000, Net: 900, Bookings: 4, Refunds: 50},
		{Month: "Feb", Year: 2024, Gross: 1234.5, Net: 1111.05, Bookings: 6, Refunds: 0},
	}

	csv := BuildMonthlyEarningsCSV(earnings)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "Month,Year,Gross Earnings,Net Earnings,Bookings,Refunds", lines[0])
	assert.Equal(t, "Jan,2024,1000.00,900.00,4,50.00", lines[1])
	assert.Equal(t, "Feb,2024,1234.50,1111.05,6,0.00", lines[2])
	assert.True(t, strings.HasSuffix(csv, "\n"))
}

func TestBuildMonthlyEarningsCSV_Empty(t *testing.T) {
	csv := BuildMonthlyEarningsCSV(nil)

	assert.Equal(t, "Month,Year,Gross Earnings,Net Earnings,Bookings,Refunds\n", csv)
}

package analytics

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// csvHeader is the fixed column order of the monthly earnings export. The
// format is consumed by owners' spreadsheets, so it must stay stable.
const csvHeader = "Month,Year,Gross Earnings,Net Earnings,Bookings,Refunds"

// BuildMonthlyEarningsCSV renders the monthly earnings export. Money columns
// are fixed to two decimal places.
func BuildMonthlyEarningsCSV(earnings []MonthlyEarning) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, e := range earnings {
		fields := []string{
			e.Month,
			strconv.Itoa(e.Year),
			money(e.Gross),
			money(e.Net),
			strconv.Itoa(e.Bookings),
			money(e.Refunds),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	return b.String()
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

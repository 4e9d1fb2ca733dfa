package analytics

import (
	"testing"

	"rently/internal/bookings"
	"rently/internal/vehicles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildChartBundle(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 100, 2),
			testBooking(vehicleID, bookings.StatusCompleted, 200, 5),
			testBooking(vehicleID, bookings.StatusCancelled, 50, 8),
		},
	}
	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	bundle := BuildChartBundle(report)

	assert.Contains(t, bundle.RevenueTrend, "Revenue Trend")
	assert.Contains(t, bundle.WeeklyTrend, "Weekly Bookings")
	assert.Contains(t, bundle.DayOfWeek, "Bookings by Day")
	assert.Contains(t, bundle.DayOfWeek, "Sun")
	assert.Contains(t, bundle.DayOfWeek, "Sat")
	assert.Contains(t, bundle.EarningsBreakdown, "Earnings Breakdown")
	assert.Contains(t, bundle.EarningsBreakdown, "Net Earnings")
	assert.NotContains(t, bundle.EarningsBreakdown, "No data available")
}

func TestBuildChartBundle_NoEarningsShowsPlaceholder(t *testing.T) {
	report := Aggregate(&Dataset{}, Period30Days, uuid.Nil, testNow, DefaultOptions())

	bundle := BuildChartBundle(report)

	assert.Contains(t, bundle.RevenueTrend, "No data available")
	assert.Contains(t, bundle.EarningsBreakdown, "No data available")

	// Day-of-week buckets always exist, so that chart still renders bars.
	assert.Contains(t, bundle.DayOfWeek, "<rect")
}

package analytics

import (
	"fmt"
	"testing"
	"time"

	"rently/internal/bookings"
	"rently/internal/reviews"
	"rently/internal/vehicles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func testVehicle(id uuid.UUID, vehicleMake, vehicleModel string) vehicles.Vehicle {
	return vehicles.Vehicle{
		ID:      id,
		Make:    vehicleMake,
		Model:   vehicleModel,
		Status:  vehicles.StatusActive,
		OwnerID: uuid.New(),
	}
}

func testBooking(vehicleID uuid.UUID, status bookings.BookingStatus, amount float64, daysAgo int) bookings.VehicleBooking {
	created := testNow.AddDate(0, 0, -daysAgo)
	return bookings.VehicleBooking{
		ID:          uuid.New(),
		VehicleID:   vehicleID,
		CustomerID:  uuid.NewString(),
		Status:      status,
		TotalAmount: amount,
		PickupDate:  created.AddDate(0, 0, 1),
		DropoffDate: created.AddDate(0, 0, 3),
		PickupTime:  "10:00",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestAggregate_EarningsBreakdown(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 100, 5),
			testBooking(vehicleID, bookings.StatusCompleted, 200, 10),
			testBooking(vehicleID, bookings.StatusCompleted, 300, 15),
		},
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	assert.InDelta(t, 600.0, report.Earnings.TotalEarnings, 1e-9)
	assert.InDelta(t, 60.0, report.Earnings.PlatformFees, 1e-9)
	assert.InDelta(t, 540.0, report.Earnings.NetEarnings, 1e-9)
	assert.InDelta(t, 0.0, report.Earnings.Refunds, 1e-9)
	assert.InDelta(t, 0.0, report.Earnings.PendingPayouts, 1e-9)
	assert.InDelta(t, 540.0, report.Earnings.CompletedPayouts, 1e-9)

	assert.Equal(t, 3, report.Summary.TotalBookings)
	assert.Equal(t, 3, report.Summary.CompletedBookings)
	assert.InDelta(t, 100.0, report.Summary.ConversionRate, 1e-9)
	assert.InDelta(t, 200.0, report.Summary.AvgBookingValue, 1e-9)
}

func TestAggregate_RefundsAndPendingPayouts(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Honda", "Vezel")},
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 400, 3),
			testBooking(vehicleID, bookings.StatusCancelled, 100, 4),
			testBooking(vehicleID, bookings.StatusConfirmed, 150, 5),
			testBooking(vehicleID, bookings.StatusInProgress, 50, 6),
			testBooking(vehicleID, bookings.StatusPending, 75, 7),
		},
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	assert.InDelta(t, 400.0, report.Earnings.TotalEarnings, 1e-9)
	assert.InDelta(t, 50.0, report.Earnings.Refunds, 1e-9)
	assert.InDelta(t, 200.0, report.Earnings.PendingPayouts, 1e-9)
	assert.InDelta(t, 360.0, report.Earnings.NetEarnings, 1e-9)
	assert.InDelta(t, 160.0, report.Earnings.CompletedPayouts, 1e-9)

	assert.Equal(t, 2, report.Summary.ActiveBookings)
	assert.Equal(t, 1, report.Summary.CancelledBookings)
	assert.Equal(t, 1, report.Summary.PendingBookings)
	assert.InDelta(t, 20.0, report.Summary.ConversionRate, 1e-9)
}

func TestAggregate_TimeSlots(t *testing.T) {
	vehicleID := uuid.New()
	morning := testBooking(vehicleID, bookings.StatusCompleted, 100, 1)
	morning.PickupTime = "07:30"
	afternoon := testBooking(vehicleID, bookings.StatusCompleted, 100, 2)
	afternoon.PickupTime = "14:00"
	evening := testBooking(vehicleID, bookings.StatusCompleted, 100, 3)
	evening.PickupTime = "20:15"

	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Suzuki", "Wagon R")},
		Bookings: []bookings.VehicleBooking{morning, afternoon, evening},
	}

	report := Aggregate(ds, Period7Days, uuid.Nil, testNow, DefaultOptions())

	require.Len(t, report.TimeSlots, 3)
	for _, slot := range report.TimeSlots {
		assert.Equal(t, 1, slot.Count, "slot %s", slot.Slot)
		assert.InDelta(t, 33.3, slot.Percentage, 1e-9, "slot %s", slot.Slot)
	}
}

func TestAggregate_MissingPickupTimeCountsAsMidday(t *testing.T) {
	assert.Equal(t, SlotAfternoon, pickupSlot(""))
	assert.Equal(t, SlotMorning, pickupSlot("06:00"))
	assert.Equal(t, SlotMorning, pickupSlot("11:59"))
	assert.Equal(t, SlotAfternoon, pickupSlot("17:45"))
	assert.Equal(t, SlotEvening, pickupSlot("18:00"))
	assert.Equal(t, SlotEvening, pickupSlot("03:00"))
}

func TestAggregate_MalformedPickupTimeFallsToEvening(t *testing.T) {
	assert.Equal(t, SlotEvening, pickupSlot("not-a-time"))
	assert.Equal(t, SlotEvening, pickupSlot("noon"))
	assert.Equal(t, SlotEvening, pickupSlot("??:30"))

	vehicleID := uuid.New()
	garbled := testBooking(vehicleID, bookings.StatusCompleted, 100, 1)
	garbled.PickupTime = "not-a-time"

	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Bookings: []bookings.VehicleBooking{garbled},
	}

	report := Aggregate(ds, Period7Days, uuid.Nil, testNow, DefaultOptions())

	require.Len(t, report.TimeSlots, 3)
	for _, slot := range report.TimeSlots {
		if slot.Slot == SlotEvening {
			assert.Equal(t, 1, slot.Count)
		} else {
			assert.Equal(t, 0, slot.Count)
		}
	}
}

func TestAggregate_EmptyDataset(t *testing.T) {
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{},
		Bookings: []bookings.VehicleBooking{},
		Reviews:  []reviews.VehicleReview{},
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	assert.Equal(t, 0, report.Summary.TotalBookings)
	assert.InDelta(t, 0.0, report.Summary.ConversionRate, 1e-9)
	assert.InDelta(t, 0.0, report.Summary.UtilizationRate, 1e-9)
	assert.InDelta(t, 0.0, report.Summary.AverageRating, 1e-9)
	assert.InDelta(t, 0.0, report.Earnings.TotalEarnings, 1e-9)
	assert.Empty(t, report.MonthlyEarnings)
	assert.Empty(t, report.VehicleShares)
	assert.Equal(t, 0, report.Customers.TotalCustomers)
	assert.InDelta(t, 0.0, report.Comparison.RevenueChangePct, 1e-9)

	// Fixed-bucket views keep their shape even with no data.
	assert.Len(t, report.DayOfWeek, 7)
	assert.Len(t, report.TimeSlots, 3)
	assert.NotEmpty(t, report.WeeklyTrend)
}

func TestAggregate_RepeatCustomers(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Nissan", "Leaf")},
	}

	repeat := "cust-repeat"
	for i := 0; i < 3; i++ {
		b := testBooking(vehicleID, bookings.StatusCompleted, 100, i+1)
		b.CustomerID = repeat
		ds.Bookings = append(ds.Bookings, b)
	}
	for i := 0; i < 4; i++ {
		b := testBooking(vehicleID, bookings.StatusCompleted, 100, i+5)
		b.CustomerID = fmt.Sprintf("cust-%d", i)
		ds.Bookings = append(ds.Bookings, b)
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	assert.Equal(t, 5, report.Customers.TotalCustomers)
	assert.Equal(t, 1, report.Customers.RepeatCustomers)
	assert.InDelta(t, 20.0, report.Customers.RepeatRate, 1e-9)
	assert.InDelta(t, 1.4, report.Customers.AvgBookingsPerCustomer, 1e-9)
}

func TestAggregate_CustomerFallsBackToEmail(t *testing.T) {
	vehicleID := uuid.New()
	withEmail := testBooking(vehicleID, bookings.StatusCompleted, 100, 1)
	withEmail.CustomerID = ""
	withEmail.CustomerEmail = "guest@example.com"
	anonymous := testBooking(vehicleID, bookings.StatusCompleted, 100, 2)
	anonymous.CustomerID = ""
	anonymous.CustomerEmail = ""

	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Hiace")},
		Bookings: []bookings.VehicleBooking{withEmail, anonymous},
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	// The anonymous booking is not attributable to any customer.
	assert.Equal(t, 1, report.Customers.TotalCustomers)
	assert.Equal(t, 0, report.Customers.RepeatCustomers)
}

func TestAggregate_VehicleFilter(t *testing.T) {
	v1 := uuid.New()
	v2 := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{
			testVehicle(v1, "Toyota", "Aqua"),
			testVehicle(v2, "Honda", "Vezel"),
		},
		Bookings: []bookings.VehicleBooking{
			testBooking(v1, bookings.StatusCompleted, 100, 1),
			testBooking(v1, bookings.StatusCompleted, 200, 2),
			testBooking(v2, bookings.StatusCompleted, 500, 3),
		},
	}

	all := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())
	only1 := Aggregate(ds, Period30Days, v1, testNow, DefaultOptions())

	assert.Equal(t, "all", all.VehicleFilter)
	assert.Equal(t, v1.String(), only1.VehicleFilter)

	assert.Equal(t, 3, all.Summary.TotalBookings)
	assert.Equal(t, 2, only1.Summary.TotalBookings)
	assert.InDelta(t, 300.0, only1.Earnings.TotalEarnings, 1e-9)
	assert.Equal(t, 1, only1.Summary.TotalVehicles)
	require.Len(t, only1.VehicleShares, 1)
	assert.InDelta(t, 100.0, only1.VehicleShares[0].Percentage, 1e-9)
}

func TestAggregate_FilterMatchesPreFilteredDataset(t *testing.T) {
	v1 := uuid.New()
	v2 := uuid.New()
	full := &Dataset{
		Vehicles: []vehicles.Vehicle{
			testVehicle(v1, "Toyota", "Aqua"),
			testVehicle(v2, "Honda", "Vezel"),
		},
		Bookings: []bookings.VehicleBooking{
			testBooking(v1, bookings.StatusCompleted, 100, 1),
			testBooking(v2, bookings.StatusCompleted, 500, 2),
			testBooking(v1, bookings.StatusCancelled, 50, 3),
		},
		Reviews: []reviews.VehicleReview{
			{ID: uuid.New(), VehicleID: v1, Rating: 5, CreatedAt: testNow},
			{ID: uuid.New(), VehicleID: v2, Rating: 2, CreatedAt: testNow},
		},
	}

	restricted := &Dataset{
		Vehicles: full.Vehicles[:1],
		Bookings: []bookings.VehicleBooking{full.Bookings[0], full.Bookings[2]},
		Reviews:  full.Reviews[:1],
	}

	filtered := Aggregate(full, Period30Days, v1, testNow, DefaultOptions())
	prefiltered := Aggregate(restricted, Period30Days, uuid.Nil, testNow, DefaultOptions())

	// Filtering inside the aggregator and filtering the dataset up front
	// must agree on every derived number.
	filtered.VehicleFilter = prefiltered.VehicleFilter
	require.Equal(t, prefiltered, filtered)
}

func TestAggregate_VehicleSharesRankedAndCapped(t *testing.T) {
	ds := &Dataset{}
	amounts := []float64{700, 100, 500, 300, 200, 600, 400}
	for _, amount := range amounts {
		id := uuid.New()
		ds.Vehicles = append(ds.Vehicles, testVehicle(id, "Make", fmt.Sprintf("%.0f", amount)))
		ds.Bookings = append(ds.Bookings, testBooking(id, bookings.StatusCompleted, amount, 1))
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	require.Len(t, report.VehicleShares, 5)
	for i := 1; i < len(report.VehicleShares); i++ {
		assert.GreaterOrEqual(t, report.VehicleShares[i-1].Revenue, report.VehicleShares[i].Revenue)
	}
	assert.InDelta(t, 700.0, report.VehicleShares[0].Revenue, 1e-9)

	var pctSum float64
	for _, share := range report.VehicleShares {
		pctSum += share.Percentage
	}
	assert.LessOrEqual(t, pctSum, 100.0+1e-9)
}

func TestAggregate_WeeklyTrendShape(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 100, 2),
			testBooking(vehicleID, bookings.StatusCompleted, 100, 9),
		},
	}

	cases := []struct {
		period  Period
		buckets int
	}{
		{Period7Days, 1},
		{Period30Days, 5},
		{Period90Days, 8},
		{Period12Mon, 8},
		{PeriodAllTime, 8},
	}

	for _, tc := range cases {
		report := Aggregate(ds, tc.period, uuid.Nil, testNow, DefaultOptions())
		require.Len(t, report.WeeklyTrend, tc.buckets, "period %s", tc.period)

		for i, point := range report.WeeklyTrend {
			assert.Equal(t, fmt.Sprintf("W%d", i+1), point.Label)
		}
	}

	// Both bookings land in the trailing two weeks of the 30d view.
	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())
	var total int
	for _, point := range report.WeeklyTrend {
		total += point.Count
	}
	assert.Equal(t, 2, total)
}

func TestAggregate_MonthlyEarnings(t *testing.T) {
	vehicleID := uuid.New()

	jan := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	var bs []bookings.VehicleBooking
	for i := 0; i < 4; i++ {
		b := testBooking(vehicleID, bookings.StatusCompleted, 250, 0)
		b.CreatedAt = jan.AddDate(0, 0, i)
		bs = append(bs, b)
	}
	cancelledJan := testBooking(vehicleID, bookings.StatusCancelled, 100, 0)
	cancelledJan.CreatedAt = jan.AddDate(0, 0, 20)
	bs = append(bs, cancelledJan)

	// A cancelled booking in a month with no completed revenue is dropped.
	cancelledMar := testBooking(vehicleID, bookings.StatusCancelled, 999, 0)
	cancelledMar.CreatedAt = time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	bs = append(bs, cancelledMar)

	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Bookings: bs,
	}

	report := Aggregate(ds, PeriodAllTime, uuid.Nil, testNow, DefaultOptions())

	require.Len(t, report.MonthlyEarnings, 1)
	month := report.MonthlyEarnings[0]
	assert.Equal(t, "Jan", month.Month)
	assert.Equal(t, 2024, month.Year)
	assert.InDelta(t, 1000.0, month.Gross, 1e-9)
	assert.InDelta(t, 900.0, month.Net, 1e-9)
	assert.Equal(t, 4, month.Bookings)
	assert.InDelta(t, 50.0, month.Refunds, 1e-9)
}

func TestAggregate_PeriodComparison(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 300, 3),
			testBooking(vehicleID, bookings.StatusCompleted, 100, 10),
		},
	}

	report := Aggregate(ds, Period7Days, uuid.Nil, testNow, DefaultOptions())

	// Current window holds 300, the prior week 100.
	assert.InDelta(t, 200.0, report.Comparison.RevenueChangePct, 1e-9)
	assert.InDelta(t, 0.0, report.Comparison.BookingsChangePct, 1e-9)
}

func TestAggregate_PriorWindowEmptyReportsZeroChange(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 300, 3),
		},
	}

	report := Aggregate(ds, Period7Days, uuid.Nil, testNow, DefaultOptions())

	assert.InDelta(t, 0.0, report.Comparison.RevenueChangePct, 1e-9)
	assert.InDelta(t, 0.0, report.Comparison.BookingsChangePct, 1e-9)
}

func TestAggregate_AllTimeHasNoComparison(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 300, 3),
			testBooking(vehicleID, bookings.StatusCompleted, 100, 400),
		},
	}

	report := Aggregate(ds, PeriodAllTime, uuid.Nil, testNow, DefaultOptions())

	assert.Equal(t, 2, report.Summary.TotalBookings)
	assert.InDelta(t, 0.0, report.Comparison.RevenueChangePct, 1e-9)
	assert.InDelta(t, 0.0, report.Summary.UtilizationRate, 1e-9)
}

func TestAggregate_PeriodCutoffExcludesOldBookings(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Bookings: []bookings.VehicleBooking{
			testBooking(vehicleID, bookings.StatusCompleted, 100, 5),
			testBooking(vehicleID, bookings.StatusCompleted, 100, 40),
		},
	}

	week := Aggregate(ds, Period7Days, uuid.Nil, testNow, DefaultOptions())
	month := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())
	all := Aggregate(ds, PeriodAllTime, uuid.Nil, testNow, DefaultOptions())

	assert.Equal(t, 1, week.Summary.TotalBookings)
	assert.Equal(t, 1, month.Summary.TotalBookings)
	assert.Equal(t, 2, all.Summary.TotalBookings)
}

func TestAggregate_ZeroTimestampOnlyInAllTime(t *testing.T) {
	vehicleID := uuid.New()
	legacy := testBooking(vehicleID, bookings.StatusCompleted, 100, 0)
	legacy.CreatedAt = time.Time{}

	ds := &Dataset{Bookings: []bookings.VehicleBooking{legacy}}

	month := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())
	all := Aggregate(ds, PeriodAllTime, uuid.Nil, testNow, DefaultOptions())

	assert.Equal(t, 0, month.Summary.TotalBookings)
	assert.Equal(t, 1, all.Summary.TotalBookings)
	assert.InDelta(t, 100.0, all.Earnings.TotalEarnings, 1e-9)

	// Without a usable timestamp the booking stays out of time-bucketed views.
	assert.Empty(t, all.MonthlyEarnings)
	var weekly int
	for _, point := range all.WeeklyTrend {
		weekly += point.Count
	}
	assert.Equal(t, 0, weekly)
	var daily int
	for _, point := range all.DayOfWeek {
		daily += point.Count
	}
	assert.Equal(t, 0, daily)
}

func TestAggregate_ReviewMetrics(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{testVehicle(vehicleID, "Toyota", "Aqua")},
		Reviews: []reviews.VehicleReview{
			{ID: uuid.New(), VehicleID: vehicleID, Rating: 5, OwnerResponse: "Thanks!", CreatedAt: testNow},
			{ID: uuid.New(), VehicleID: vehicleID, Rating: 4, CreatedAt: testNow},
			{ID: uuid.New(), VehicleID: vehicleID, Rating: 3, CreatedAt: testNow},
		},
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	assert.InDelta(t, 4.0, report.Summary.AverageRating, 1e-9)
	assert.InDelta(t, 33.3, report.Summary.ResponseRate, 1e-9)
}

func TestAggregate_RecentActivityMergedNewestFirst(t *testing.T) {
	vehicleID := uuid.New()
	ds := &Dataset{}
	for i := 0; i < 7; i++ {
		ds.Bookings = append(ds.Bookings, testBooking(vehicleID, bookings.StatusCompleted, 100, i+1))
	}
	for i := 0; i < 5; i++ {
		ds.Reviews = append(ds.Reviews, reviews.VehicleReview{
			ID:        uuid.New(),
			VehicleID: vehicleID,
			Rating:    5,
			CreatedAt: testNow.AddDate(0, 0, -(i + 1)),
		})
	}

	report := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	require.Len(t, report.RecentActivity, 8)
	for i := 1; i < len(report.RecentActivity); i++ {
		assert.False(t, report.RecentActivity[i].OccurredAt.After(report.RecentActivity[i-1].OccurredAt))
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	v1 := uuid.New()
	v2 := uuid.New()
	ds := &Dataset{
		Vehicles: []vehicles.Vehicle{
			testVehicle(v1, "Toyota", "Aqua"),
			testVehicle(v2, "Honda", "Vezel"),
		},
		Bookings: []bookings.VehicleBooking{
			testBooking(v1, bookings.StatusCompleted, 120, 2),
			testBooking(v2, bookings.StatusCancelled, 80, 4),
			testBooking(v1, bookings.StatusConfirmed, 60, 6),
			testBooking(v2, bookings.StatusCompleted, 120, 8),
		},
		Reviews: []reviews.VehicleReview{
			{ID: uuid.New(), VehicleID: v1, Rating: 5, CreatedAt: testNow.AddDate(0, 0, -3)},
		},
	}

	first := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())
	second := Aggregate(ds, Period30Days, uuid.Nil, testNow, DefaultOptions())

	require.Equal(t, first, second)
}

func TestAggregate_ConversionRateBounded(t *testing.T) {
	vehicleID := uuid.New()
	statuses := []bookings.BookingStatus{
		bookings.StatusCompleted, bookings.StatusCancelled, bookings.StatusPending,
		bookings.StatusConfirmed, bookings.StatusCompleted, bookings.StatusInProgress,
	}

	ds := &Dataset{}
	for i, status := range statuses {
		ds.Bookings = append(ds.Bookings, testBooking(vehicleID, status, 50, i+1))
	}

	for _, period := range []Period{Period7Days, Period30Days, Period90Days, Period12Mon, PeriodAllTime} {
		report := Aggregate(ds, period, uuid.Nil, testNow, DefaultOptions())
		assert.GreaterOrEqual(t, report.Summary.ConversionRate, 0.0, "period %s", period)
		assert.LessOrEqual(t, report.Summary.ConversionRate, 100.0, "period %s", period)
	}
}

func TestBookingDays_RoundsUp(t *testing.T) {
	pickup := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		dropoff time.Time
		want    int
	}{
		{"exactly two days", pickup.AddDate(0, 0, 2), 2},
		{"partial day rounds up", pickup.Add(36 * time.Hour), 2},
		{"same instant", pickup, 0},
		{"inverted range", pickup.AddDate(0, 0, -1), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := bookings.VehicleBooking{PickupDate: pickup, DropoffDate: tc.dropoff}
			assert.Equal(t, tc.want, bookingDays(&b))
		})
	}

	missing := bookings.VehicleBooking{DropoffDate: pickup}
	assert.Equal(t, 0, bookingDays(&missing))
}

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		input string
		want  Period
		ok    bool
	}{
		{"7d", Period7Days, true},
		{"30d", Period30Days, true},
		{"90d", Period90Days, true},
		{"12m", Period12Mon, true},
		{"all", PeriodAllTime, true},
		{"", Period30Days, true},
		{"1y", "", false},
		{"weekly", "", false},
	}

	for _, tc := range cases {
		got, err := ParsePeriod(tc.input)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, got)
		} else {
			assert.ErrorIs(t, err, ErrInvalidPeriod, "input %q", tc.input)
		}
	}
}

package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"rently/internal/bookings"
	"rently/internal/vehicles"

	"github.com/google/uuid"
)

// Aggregate transforms one owner's raw dataset into a derived report for the
// given period and optional vehicle filter (uuid.Nil means all vehicles).
// It is a pure function: the dataset is never mutated, identical inputs
// produce identical output, and degenerate inputs (empty sets, zero
// denominators) always yield zeros rather than errors.
func Aggregate(ds *Dataset, period Period, vehicleFilter uuid.UUID, now time.Time, opts Options) *Report {
	cutoff := period.Cutoff(now)

	// The vehicle filter composes before every other computation.
	filtered := filterBookings(ds.Bookings, cutoff, now, vehicleFilter, false)

	var (
		completed, cancelled, pending, active []bookings.VehicleBooking
	)
	for i := range filtered {
		b := &filtered[i]
		switch b.Status {
		case bookings.StatusCompleted:
			completed = append(completed, *b)
		case bookings.StatusCancelled:
			cancelled = append(cancelled, *b)
		case bookings.StatusConfirmed, bookings.StatusInProgress:
			active = append(active, *b)
		default:
			pending = append(pending, *b)
		}
	}

	totalEarnings := sumAmounts(completed)
	pendingPayouts := sumAmounts(active)
	refunds := opts.RefundFraction * sumAmounts(cancelled)
	platformFees := opts.PlatformFeeFraction * totalEarnings
	netEarnings := totalEarnings - platformFees

	report := &Report{
		Period:      period,
		GeneratedAt: now,
	}
	if vehicleFilter != uuid.Nil {
		report.VehicleFilter = vehicleFilter.String()
	} else {
		report.VehicleFilter = "all"
	}

	report.Earnings = EarningsSummary{
		TotalEarnings:    totalEarnings,
		PlatformFees:     platformFees,
		NetEarnings:      netEarnings,
		Refunds:          refunds,
		PendingPayouts:   pendingPayouts,
		CompletedPayouts: netEarnings - pendingPayouts,
	}

	report.Summary = summarize(ds, filtered, completed, active, cancelled, pending, vehicleFilter, period, totalEarnings)
	report.WeeklyTrend = weeklyTrend(filtered, period, now)
	report.MonthlyEarnings = monthlyEarnings(completed, cancelled, opts)
	report.DayOfWeek = dayOfWeekTrend(filtered)
	report.TimeSlots = timeSlots(filtered)
	report.VehicleShares = vehicleShares(completed, ds.Vehicles, totalEarnings)
	report.Customers = customerInsight(filtered)
	report.Comparison = compareWithPriorPeriod(ds.Bookings, period, cutoff, now, vehicleFilter, totalEarnings, len(completed))
	report.RecentActivity = recentActivity(ds, vehicleFilter)
	report.Insights = performanceInsights(report.Summary, report.Customers, len(completed), len(cancelled))

	return report
}

func filterBookings(all []bookings.VehicleBooking, cutoff, end time.Time, vehicleFilter uuid.UUID, boundEnd bool) []bookings.VehicleBooking {
	out := make([]bookings.VehicleBooking, 0, len(all))
	for i := range all {
		b := all[i]
		if vehicleFilter != uuid.Nil && b.VehicleID != vehicleFilter {
			continue
		}
		if b.CreatedAt.Before(cutoff) {
			continue
		}
		if boundEnd && !b.CreatedAt.Before(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func sumAmounts(set []bookings.VehicleBooking) float64 {
	var total float64
	for i := range set {
		total += set[i].TotalAmount
	}
	return total
}

func summarize(ds *Dataset, filtered, completed, active, cancelled, pending []bookings.VehicleBooking,
	vehicleFilter uuid.UUID, period Period, totalEarnings float64) SummaryStats {

	stats := SummaryStats{
		TotalBookings:     len(filtered),
		CompletedBookings: len(completed),
		ActiveBookings:    len(active),
		CancelledBookings: len(cancelled),
		PendingBookings:   len(pending),
		ConversionRate:    round1(safeDiv(float64(len(completed)), float64(len(filtered))) * 100),
		AvgBookingValue:   safeDiv(totalEarnings, float64(len(completed))),
	}

	// Mean of per-booking durations, each rounded up to whole days.
	var totalDays float64
	for i := range filtered {
		totalDays += float64(bookingDays(&filtered[i]))
	}
	stats.AvgDurationDays = round1(safeDiv(totalDays, float64(len(filtered))))

	for i := range ds.Vehicles {
		v := &ds.Vehicles[i]
		if vehicleFilter != uuid.Nil && v.ID != vehicleFilter {
			continue
		}
		stats.TotalVehicles++
		if v.Status == vehicles.StatusActive {
			stats.ActiveVehicles++
		}
	}

	// Utilization counts booked days across non-cancelled bookings against
	// the fleet's total available days in the window. All-time has no window
	// length, so utilization reports 0 there.
	var bookedDays float64
	for i := range filtered {
		if filtered[i].Status == bookings.StatusCancelled {
			continue
		}
		bookedDays += float64(bookingDays(&filtered[i]))
	}
	capacity := float64(stats.TotalVehicles * period.Days())
	stats.UtilizationRate = round1(safeDiv(bookedDays, capacity) * 100)

	// Review metrics cover all fetched reviews for the scoped vehicles.
	var ratingSum float64
	var reviewCount, responded int
	for i := range ds.Reviews {
		r := &ds.Reviews[i]
		if vehicleFilter != uuid.Nil && r.VehicleID != vehicleFilter {
			continue
		}
		reviewCount++
		ratingSum += float64(r.Rating)
		if r.OwnerResponse != "" {
			responded++
		}
	}
	stats.AverageRating = round1(safeDiv(ratingSum, float64(reviewCount)))
	stats.ResponseRate = round1(safeDiv(float64(responded), float64(reviewCount)) * 100)

	return stats
}

// bookingDays returns the rental length in whole days, rounding each booking
// up. Missing or inverted dates contribute zero.
func bookingDays(b *bookings.VehicleBooking) int {
	if b.PickupDate.IsZero() || b.DropoffDate.IsZero() {
		return 0
	}
	d := b.DropoffDate.Sub(b.PickupDate)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// weeklyTrend partitions the period into up to 8 trailing 7-day windows,
// labeled W1..Wn oldest first. Records without a usable creation timestamp
// are excluded from every time-bucketed view.
func weeklyTrend(filtered []bookings.VehicleBooking, period Period, now time.Time) []TrendPoint {
	days := period.Days()
	if days == 0 {
		days = 56 // all-time trend shows the trailing 8 weeks
	}
	numWindows := (days + 6) / 7
	if numWindows > 8 {
		numWindows = 8
	}

	points := make([]TrendPoint, numWindows)
	for w := 0; w < numWindows; w++ {
		start := now.AddDate(0, 0, -7*(numWindows-w))
		end := start.AddDate(0, 0, 7)

		point := TrendPoint{Label: fmt.Sprintf("W%d", w+1)}
		for i := range filtered {
			b := &filtered[i]
			if b.CreatedAt.IsZero() {
				continue
			}
			if b.CreatedAt.Before(start) || !b.CreatedAt.Before(end) {
				continue
			}
			point.Count++
			if b.Status == bookings.StatusCompleted {
				point.Revenue += b.TotalAmount
			}
		}
		points[w] = point
	}
	return points
}

// monthlyEarnings groups completed revenue by calendar month and keeps the
// most recent 6 populated months. Cancelled amounts add refund estimates only
// to months already populated by completed bookings.
func monthlyEarnings(completed, cancelled []bookings.VehicleBooking, opts Options) []MonthlyEarning {
	type monthKey struct {
		year  int
		month time.Month
	}

	grouped := make(map[monthKey]*MonthlyEarning)
	for i := range completed {
		b := &completed[i]
		if b.CreatedAt.IsZero() {
			continue
		}
		key := monthKey{b.CreatedAt.Year(), b.CreatedAt.Month()}
		entry, ok := grouped[key]
		if !ok {
			entry = &MonthlyEarning{
				Month: b.CreatedAt.Month().String()[:3],
				Year:  key.year,
			}
			grouped[key] = entry
		}
		entry.Gross += b.TotalAmount
		entry.Net += b.TotalAmount * (1 - opts.PlatformFeeFraction)
		entry.Bookings++
	}

	for i := range cancelled {
		b := &cancelled[i]
		if b.CreatedAt.IsZero() {
			continue
		}
		key := monthKey{b.CreatedAt.Year(), b.CreatedAt.Month()}
		if entry, ok := grouped[key]; ok {
			entry.Refunds += b.TotalAmount * opts.RefundFraction
		}
	}

	keys := make([]monthKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	if len(keys) > 6 {
		keys = keys[len(keys)-6:]
	}

	result := make([]MonthlyEarning, 0, len(keys))
	for _, key := range keys {
		result = append(result, *grouped[key])
	}
	return result
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func dayOfWeekTrend(filtered []bookings.VehicleBooking) []TrendPoint {
	points := make([]TrendPoint, 7)
	for i, name := range weekdayNames {
		points[i] = TrendPoint{Label: name}
	}

	for i := range filtered {
		b := &filtered[i]
		if b.CreatedAt.IsZero() {
			continue
		}
		idx := int(b.CreatedAt.Weekday())
		points[idx].Count++
		if b.Status == bookings.StatusCompleted {
			points[idx].Revenue += b.TotalAmount
		}
	}
	return points
}

const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

// timeSlots buckets pickups into morning (06-11), afternoon (12-17) and
// evening (everything else). A missing pickup time counts as midday.
func timeSlots(filtered []bookings.VehicleBooking) []TimeSlotBucket {
	counts := map[string]int{SlotMorning: 0, SlotAfternoon: 0, SlotEvening: 0}

	for i := range filtered {
		counts[pickupSlot(filtered[i].PickupTime)]++
	}

	total := counts[SlotMorning] + counts[SlotAfternoon] + counts[SlotEvening]
	slots := []TimeSlotBucket{
		{Slot: SlotMorning, Count: counts[SlotMorning]},
		{Slot: SlotAfternoon, Count: counts[SlotAfternoon]},
		{Slot: SlotEvening, Count: counts[SlotEvening]},
	}
	for i := range slots {
		slots[i].Percentage = round1(safeDiv(float64(slots[i].Count), float64(total)) * 100)
	}
	return slots
}

func pickupSlot(pickupTime string) string {
	if pickupTime == "" {
		pickupTime = "12:00"
	}
	hourStr, _, found := strings.Cut(pickupTime, ":")
	if !found {
		hourStr = pickupTime
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		// An unparseable hour matches neither daytime range.
		return SlotEvening
	}

	switch {
	case hour >= 6 && hour <= 11:
		return SlotMorning
	case hour >= 12 && hour <= 17:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// vehicleShares ranks vehicles by completed revenue, top 5 retained.
func vehicleShares(completed []bookings.VehicleBooking, fleet []vehicles.Vehicle, totalEarnings float64) []VehicleShare {
	names := make(map[uuid.UUID]string, len(fleet))
	for i := range fleet {
		names[fleet[i].ID] = fleet[i].DisplayName()
	}

	byVehicle := make(map[uuid.UUID]*VehicleShare)
	for i := range completed {
		b := &completed[i]
		share, ok := byVehicle[b.VehicleID]
		if !ok {
			name := names[b.VehicleID]
			if name == "" {
				name = b.VehicleID.String()
			}
			share = &VehicleShare{VehicleID: b.VehicleID.String(), Name: name}
			byVehicle[b.VehicleID] = share
		}
		share.Revenue += b.TotalAmount
		share.Bookings++
	}

	shares := make([]VehicleShare, 0, len(byVehicle))
	for _, share := range byVehicle {
		share.Percentage = round1(safeDiv(share.Revenue, totalEarnings) * 100)
		shares = append(shares, *share)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Revenue != shares[j].Revenue {
			return shares[i].Revenue > shares[j].Revenue
		}
		return shares[i].VehicleID < shares[j].VehicleID
	})

	if len(shares) > 5 {
		shares = shares[:5]
	}
	return shares
}

// customerInsight counts distinct customers by ID, falling back to email.
// A customer is "repeat" when they appear more than once in the filtered set.
func customerInsight(filtered []bookings.VehicleBooking) CustomerInsight {
	perCustomer := make(map[string]int)
	locations := make(map[string]int)

	for i := range filtered {
		b := &filtered[i]
		key := b.CustomerID
		if key == "" {
			key = b.CustomerEmail
		}
		if key != "" {
			perCustomer[key]++
		}
		if b.PickupLocation != "" {
			locations[b.PickupLocation]++
		}
	}

	insight := CustomerInsight{
		TotalCustomers: len(perCustomer),
		TopLocations:   []LocationCount{},
	}
	for _, count := range perCustomer {
		if count > 1 {
			insight.RepeatCustomers++
		}
	}
	insight.RepeatRate = round1(safeDiv(float64(insight.RepeatCustomers), float64(insight.TotalCustomers)) * 100)
	insight.AvgBookingsPerCustomer = round1(safeDiv(float64(len(filtered)), float64(insight.TotalCustomers)))

	for location, count := range locations {
		insight.TopLocations = append(insight.TopLocations, LocationCount{Location: location, Count: count})
	}
	sort.SliceStable(insight.TopLocations, func(i, j int) bool {
		if insight.TopLocations[i].Count != insight.TopLocations[j].Count {
			return insight.TopLocations[i].Count > insight.TopLocations[j].Count
		}
		return insight.TopLocations[i].Location < insight.TopLocations[j].Location
	})
	if len(insight.TopLocations) > 5 {
		insight.TopLocations = insight.TopLocations[:5]
	}

	return insight
}

// compareWithPriorPeriod reports percentage change against the immediately
// preceding window of equal length. A zero prior denominator reports zero
// change. All-time has no prior window.
func compareWithPriorPeriod(all []bookings.VehicleBooking, period Period, cutoff, now time.Time,
	vehicleFilter uuid.UUID, currentRevenue float64, currentCompleted int) PeriodComparison {

	days := period.Days()
	if days == 0 {
		return PeriodComparison{}
	}

	priorStart := cutoff.AddDate(0, 0, -days)
	prior := filterBookings(all, priorStart, cutoff, vehicleFilter, true)

	var priorRevenue float64
	var priorCompleted int
	for i := range prior {
		if prior[i].Status == bookings.StatusCompleted {
			priorCompleted++
			priorRevenue += prior[i].TotalAmount
		}
	}

	return PeriodComparison{
		RevenueChangePct:  round1(percentChange(currentRevenue, priorRevenue)),
		BookingsChangePct: round1(percentChange(float64(currentCompleted), float64(priorCompleted))),
	}
}

// recentActivity merges the latest bookings and reviews into one feed,
// newest first.
func recentActivity(ds *Dataset, vehicleFilter uuid.UUID) []ActivityItem {
	var items []ActivityItem

	sorted := make([]bookings.VehicleBooking, 0, len(ds.Bookings))
	for i := range ds.Bookings {
		if vehicleFilter != uuid.Nil && ds.Bookings[i].VehicleID != vehicleFilter {
			continue
		}
		sorted = append(sorted, ds.Bookings[i])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	for i := range sorted {
		b := &sorted[i]
		items = append(items, ActivityItem{
			Type:        "booking",
			ID:          b.ID.String(),
			Description: fmt.Sprintf("Booking %s by %s", b.Status, b.CustomerEmail),
			Amount:      b.TotalAmount,
			OccurredAt:  b.CreatedAt,
		})
	}

	recent := make([]int, 0, len(ds.Reviews))
	for i := range ds.Reviews {
		if vehicleFilter != uuid.Nil && ds.Reviews[i].VehicleID != vehicleFilter {
			continue
		}
		recent = append(recent, i)
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return ds.Reviews[recent[i]].CreatedAt.After(ds.Reviews[recent[j]].CreatedAt)
	})
	if len(recent) > 3 {
		recent = recent[:3]
	}
	for _, idx := range recent {
		r := &ds.Reviews[idx]
		items = append(items, ActivityItem{
			Type:        "review",
			ID:          r.ID.String(),
			Description: fmt.Sprintf("%d-star review received", r.Rating),
			OccurredAt:  r.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	if len(items) > 8 {
		items = items[:8]
	}
	return items
}

// performanceInsights produces rule-based advisory lines for the dashboard.
func performanceInsights(stats SummaryStats, customers CustomerInsight, completed, cancelled int) []string {
	var insights []string

	if stats.UtilizationRate > 0 && stats.UtilizationRate < 50 {
		insights = append(insights, "Fleet utilization is below 50%. Consider adjusting rates or availability.")
	}
	if stats.ResponseRate > 0 && stats.ResponseRate < 80 {
		insights = append(insights, "Less than 80% of reviews have a response. Responding builds customer trust.")
	}
	if completed > 0 && float64(cancelled) > 0.2*float64(completed) {
		insights = append(insights, "Cancellations exceed 20% of completed bookings. Review your booking policies.")
	}
	if stats.AverageRating >= 4.5 {
		insights = append(insights, "Excellent average rating. Highlight customer reviews in your listings.")
	}
	if customers.RepeatCustomers > 0 {
		insights = append(insights, "You have repeat customers. A loyalty discount could increase retention.")
	}

	return insights
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func percentChange(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / prior * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package analytics

import (
	"errors"
	"time"

	"rently/internal/bookings"
	"rently/internal/reviews"
	"rently/internal/vehicles"
)

var ErrInvalidPeriod = errors.New("invalid reporting period")

// Period is the rolling date window over which records are included in a
// report.
type Period string

const (
	Period7Days   Period = "7d"
	Period30Days  Period = "30d"
	Period90Days  Period = "90d"
	Period12Mon   Period = "12m"
	PeriodAllTime Period = "all"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period7Days, Period30Days, Period90Days, Period12Mon, PeriodAllTime:
		return Period(s), nil
	case "":
		return Period30Days, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Days returns the window length in days, 0 for all-time.
func (p Period) Days() int {
	switch p {
	case Period7Days:
		return 7
	case Period30Days:
		return 30
	case Period90Days:
		return 90
	case Period12Mon:
		return 365
	default:
		return 0
	}
}

// Cutoff returns the earliest creation timestamp included in the period.
// All-time returns the zero time, which every record (including records with
// a missing timestamp) passes.
func (p Period) Cutoff(now time.Time) time.Time {
	days := p.Days()
	if days == 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -days)
}

// Dataset is the raw record set for one owner, fetched once and treated as
// read-only by the aggregator.
type Dataset struct {
	Vehicles []vehicles.Vehicle        `json:"vehicles"`
	Bookings []bookings.VehicleBooking `json:"bookings"`
	Reviews  []reviews.VehicleReview   `json:"reviews"`
}

// Options carries the payout policy fractions. They mirror marketplace
// business rules and are injected from config rather than hardcoded.
type Options struct {
	PlatformFeeFraction float64
	RefundFraction      float64
}

func DefaultOptions() Options {
	return Options{
		PlatformFeeFraction: 0.10,
		RefundFraction:      0.50,
	}
}

// SummaryStats is the flat scalar metric block of a report.
type SummaryStats struct {
	TotalBookings     int     `json:"total_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	ActiveBookings    int     `json:"active_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConversionRate    float64 `json:"conversion_rate"`
	AvgBookingValue   float64 `json:"avg_booking_value"`
	AvgDurationDays   float64 `json:"avg_duration_days"`
	UtilizationRate   float64 `json:"utilization_rate"`
	TotalVehicles     int     `json:"total_vehicles"`
	ActiveVehicles    int     `json:"active_vehicles"`
	AverageRating     float64 `json:"average_rating"`
	ResponseRate      float64 `json:"response_rate"`
}

// EarningsSummary holds the monetary aggregates of one report.
type EarningsSummary struct {
	TotalEarnings    float64 `json:"total_earnings"`
	PlatformFees     float64 `json:"platform_fees"`
	NetEarnings      float64 `json:"net_earnings"`
	Refunds          float64 `json:"refunds"`
	PendingPayouts   float64 `json:"pending_payouts"`
	CompletedPayouts float64 `json:"completed_payouts"`
}

// TrendPoint is one time bucket of a trend view.
type TrendPoint struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// MonthlyEarning is one populated calendar month of the earnings report, and
// the row format of the CSV export.
type MonthlyEarning struct {
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Gross    float64 `json:"gross"`
	Net      float64 `json:"net"`
	Bookings int     `json:"bookings"`
	Refunds  float64 `json:"refunds"`
}

// TimeSlotBucket is one pickup time-of-day slot.
type TimeSlotBucket struct {
	Slot       string  `json:"slot"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// VehicleShare is one vehicle's contribution to completed revenue.
type VehicleShare struct {
	VehicleID  string  `json:"vehicle_id"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Bookings   int     `json:"bookings"`
	Percentage float64 `json:"percentage"`
}

// LocationCount is one pickup location ranked by frequency.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// CustomerInsight summarizes the customer base within the filtered set.
type CustomerInsight struct {
	TotalCustomers         int             `json:"total_customers"`
	RepeatCustomers        int             `json:"repeat_customers"`
	RepeatRate             float64         `json:"repeat_rate"`
	AvgBookingsPerCustomer float64         `json:"avg_bookings_per_customer"`
	TopLocations           []LocationCount `json:"top_locations"`
}

// PeriodComparison reports change versus the immediately preceding window of
// equal length.
type PeriodComparison struct {
	RevenueChangePct  float64 `json:"revenue_change_pct"`
	BookingsChangePct float64 `json:"bookings_change_pct"`
}

// ActivityItem is one entry of the recent activity feed.
type ActivityItem struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Report is the complete derived output of one aggregation pass. It is
// recomputed from the raw dataset on every request (or served from cache) and
// never persisted.
type Report struct {
	OwnerID       string `json:"owner_id"`
	Period        Period `json:"period"`
	VehicleFilter string `json:"vehicle_filter"`

	Summary         SummaryStats     `json:"summary"`
	Earnings        EarningsSummary  `json:"earnings"`
	WeeklyTrend     []TrendPoint     `json:"weekly_trend"`
	MonthlyEarnings []MonthlyEarning `json:"monthly_earnings"`
	DayOfWeek       []TrendPoint     `json:"day_of_week"`
	TimeSlots       []TimeSlotBucket `json:"time_slots"`
	VehicleShares   []VehicleShare   `json:"vehicle_shares"`
	Customers       CustomerInsight  `json:"customers"`
	Comparison      PeriodComparison `json:"comparison"`
	RecentActivity  []ActivityItem   `json:"recent_activity"`
	Insights        []string         `json:"insights"`

	GeneratedAt time.Time `json:"generated_at"`
}

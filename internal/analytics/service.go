package analytics

import (
	"context"
	"fmt"
	"time"

	"rently/internal/shared/config"
	"rently/internal/shared/utils/constants"
	"rently/pkg/cache"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

// ChartBundle holds the rendered SVG views of one report.
type ChartBundle struct {
	RevenueTrend      string `json:"revenue_trend"`
	WeeklyTrend       string `json:"weekly_trend"`
	DayOfWeek         string `json:"day_of_week"`
	EarningsBreakdown string `json:"earnings_breakdown"`
}

type Service interface {
	GetOwnerReport(ctx context.Context, ownerID uuid.UUID, period Period, vehicleFilter uuid.UUID, refresh bool) (*Report, error)
	GetOwnerCharts(ctx context.Context, ownerID uuid.UUID, period Period, vehicleFilter uuid.UUID) (*ChartBundle, error)
	ExportMonthlyEarnings(ctx context.Context, ownerID uuid.UUID, period Period) (string, error)
}

type service struct {
	fetcher      *Fetcher
	cacheService cache.Service
	config       *config.Config
	logger       *logger.Logger
}

func NewService(fetcher *Fetcher, cacheService cache.Service, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		fetcher:      fetcher,
		cacheService: cacheService,
		config:       cfg,
		logger:       log,
	}
}

// GetOwnerReport serves a derived report, cache-aside per (owner, period,
// vehicle filter). refresh busts every cached report for the owner before
// re-aggregating.
func (s *service) GetOwnerReport(ctx context.Context, ownerID uuid.UUID, period Period, vehicleFilter uuid.UUID, refresh bool) (*Report, error) {
	vehicleKey := ""
	if vehicleFilter != uuid.Nil {
		vehicleKey = vehicleFilter.String()
	}
	cacheKey := constants.BuildOwnerReportKey(ownerID.String(), string(period), vehicleKey)

	if refresh {
		pattern := constants.BuildOwnerAnalyticsPattern(ownerID.String())
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			s.logger.WarnContext(ctx, "failed to bust owner report cache",
				"owner_id", ownerID.String(), "error", err.Error())
		}
	} else {
		var cached Report
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	report, err := s.buildReport(ctx, ownerID, period, vehicleFilter)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.Set(ctx, cacheKey, report, s.config.Analytics.ReportCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache owner report",
			"owner_id", ownerID.String(), "error", err.Error())
	}

	return report, nil
}

func (s *service) GetOwnerCharts(ctx context.Context, ownerID uuid.UUID, period Period, vehicleFilter uuid.UUID) (*ChartBundle, error) {
	report, err := s.GetOwnerReport(ctx, ownerID, period, vehicleFilter, false)
	if err != nil {
		return nil, err
	}
	return BuildChartBundle(report), nil
}

func (s *service) ExportMonthlyEarnings(ctx context.Context, ownerID uuid.UUID, period Period) (string, error) {
	report, err := s.GetOwnerReport(ctx, ownerID, period, uuid.Nil, false)
	if err != nil {
		return "", err
	}
	return BuildMonthlyEarningsCSV(report.MonthlyEarnings), nil
}

func (s *service) buildReport(ctx context.Context, ownerID uuid.UUID, period Period, vehicleFilter uuid.UUID) (*Report, error) {
	started := time.Now()

	dataset, err := s.fetcher.FetchOwnerData(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch owner data: %w", err)
	}

	opts := Options{
		PlatformFeeFraction: s.config.Analytics.PlatformFeeFraction,
		RefundFraction:      s.config.Analytics.RefundFraction,
	}

	report := Aggregate(dataset, period, vehicleFilter, time.Now(), opts)
	report.OwnerID = ownerID.String()

	s.logger.LogReportAggregated(ctx, ownerID.String(), string(period), len(dataset.Bookings), time.Since(started))
	return report, nil
}

// BuildChartBundle renders the standard dashboard views of one report.
func BuildChartBundle(report *Report) *ChartBundle {
	revenuePoints := make([]Point, 0, len(report.MonthlyEarnings))
	for _, m := range report.MonthlyEarnings {
		revenuePoints = append(revenuePoints, Point{
			Label: fmt.Sprintf("%s %d", m.Month, m.Year),
			Value: m.Gross,
		})
	}

	weeklyPoints := make([]Point, 0, len(report.WeeklyTrend))
	for _, w := range report.WeeklyTrend {
		weeklyPoints = append(weeklyPoints, Point{Label: w.Label, Value: float64(w.Count)})
	}

	dayPoints := make([]Point, 0, len(report.DayOfWeek))
	for _, d := range report.DayOfWeek {
		dayPoints = append(dayPoints, Point{Label: d.Label[:3], Value: float64(d.Count)})
	}

	var breakdownPoints []Point
	e := report.Earnings
	if e.TotalEarnings > 0 || e.Refunds > 0 || e.PendingPayouts > 0 {
		breakdownPoints = []Point{
			{Label: "Net Earnings", Value: e.NetEarnings},
			{Label: "Platform Fees", Value: e.PlatformFees},
			{Label: "Refunds", Value: e.Refunds},
			{Label: "Pending Payouts", Value: e.PendingPayouts},
		}
	}

	return &ChartBundle{
		RevenueTrend:      RenderSVG(LineSpec{Title: "Revenue Trend", Points: revenuePoints, Fill: true}),
		WeeklyTrend:       RenderSVG(LineSpec{Title: "Weekly Bookings", Points: weeklyPoints}),
		DayOfWeek:         RenderSVG(BarSpec{Title: "Bookings by Day", Points: dayPoints}),
		EarningsBreakdown: RenderSVG(PieSpec{Title: "Earnings Breakdown", Points: breakdownPoints}),
	}
}

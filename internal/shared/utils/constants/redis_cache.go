package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Rently application
// Pattern: rently:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_SHORT = 6 * time.Hour  // 6 hours - for owner profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour // 2 hours - for vehicle details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour // 1 hour - for fleet listings
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for analytics reports
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for booking listings
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "rently"
)

// ================== VEHICLES MODULE ==================

const (
	CACHE_KEY_VEHICLES_BY_OWNER = CACHE_PREFIX + ":vehicles:by_owner:uuid:" // + owner-id
	CACHE_KEY_VEHICLE_DETAIL    = CACHE_PREFIX + ":vehicles:detail:uuid:"   // + vehicle-id
)

const (
	TTL_VEHICLE_LIST   = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_VEHICLE_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== ANALYTICS MODULE ==================

// Analytics Cache Keys
// Derived reports are cached per owner, per period, per vehicle filter so a
// booking event can invalidate everything for one owner with a single pattern.
const (
	CACHE_KEY_ANALYTICS_OWNER = CACHE_PREFIX + ":analytics:owner:" // + owner-id + :report:period:vehicle
)

const (
	TTL_ANALYTICS_REPORT = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// BuildOwnerReportKey builds the cache key for one derived report.
func BuildOwnerReportKey(ownerID, period, vehicleFilter string) string {
	if vehicleFilter == "" {
		vehicleFilter = "all"
	}
	return fmt.Sprintf("%s%s:report:%s:%s", CACHE_KEY_ANALYTICS_OWNER, ownerID, period, vehicleFilter)
}

// BuildOwnerAnalyticsPattern matches every cached report for one owner.
func BuildOwnerAnalyticsPattern(ownerID string) string {
	return fmt.Sprintf("%s%s:*", CACHE_KEY_ANALYTICS_OWNER, ownerID)
}

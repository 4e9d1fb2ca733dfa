package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOwnerReportKey(t *testing.T) {
	key := BuildOwnerReportKey("owner-123", "30d", "vehicle-456")
	assert.Equal(t, "rently:analytics:owner:owner-123:report:30d:vehicle-456", key)

	// Empty vehicle filter normalizes to "all" so one cache entry serves
	// both spellings of an unfiltered report.
	key = BuildOwnerReportKey("owner-123", "7d", "")
	assert.Equal(t, "rently:analytics:owner:owner-123:report:7d:all", key)
}

func TestBuildOwnerAnalyticsPattern(t *testing.T) {
	pattern := BuildOwnerAnalyticsPattern("owner-123")
	assert.Equal(t, "rently:analytics:owner:owner-123:*", pattern)

	// The pattern must match every key the builder can produce for the owner.
	key := BuildOwnerReportKey("owner-123", "90d", "all")
	assert.Contains(t, key, "rently:analytics:owner:owner-123:")
}

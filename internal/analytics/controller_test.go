package analytics

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testGinContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	return ctx
}

func TestOwnerIDFromContext(t *testing.T) {
	ownerID := uuid.New()

	ctx := testGinContext(t)
	ctx.Set("owner_id", ownerID.String())
	got, ok := ownerIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, ownerID, got)

	// Missing, non-string and malformed values all degrade to not-ok
	// instead of panicking.
	ctx = testGinContext(t)
	_, ok = ownerIDFromContext(ctx)
	assert.False(t, ok)

	ctx = testGinContext(t)
	ctx.Set("owner_id", 12345)
	_, ok = ownerIDFromContext(ctx)
	assert.False(t, ok)

	ctx = testGinContext(t)
	ctx.Set("owner_id", "not-a-uuid")
	_, ok = ownerIDFromContext(ctx)
	assert.False(t, ok)
}

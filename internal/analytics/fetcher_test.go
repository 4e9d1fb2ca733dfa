package analytics

import (
	"context"
	"errors"
	"testing"

	"rently/internal/bookings"
	"rently/internal/reviews"
	"rently/internal/vehicles"
	"rently/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVehicleRepo struct {
	vehicles.Repository
	fleet []vehicles.Vehicle
	err   error
}

func (s *stubVehicleRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]vehicles.Vehicle, error) {
	return s.fleet, s.err
}

type stubBookingRepo struct {
	bookings.Repository
	byVehicle map[uuid.UUID][]bookings.VehicleBooking
	failOn    uuid.UUID
	calls     int
}

func (s *stubBookingRepo) GetByVehicleIDs(ctx context.Context, vehicleIDs []uuid.UUID) ([]bookings.VehicleBooking, error) {
	s.calls++
	var out []bookings.VehicleBooking
	for _, id := range vehicleIDs {
		if id == s.failOn {
			return nil, errors.New("query failed")
		}
		out = append(out, s.byVehicle[id]...)
	}
	return out, nil
}

type stubReviewRepo struct {
	reviews.Repository
	byVehicle map[uuid.UUID][]reviews.VehicleReview
	calls     int
}

func (s *stubReviewRepo) GetByVehicleIDs(ctx context.Context, vehicleIDs []uuid.UUID) ([]reviews.VehicleReview, error) {
	s.calls++
	var out []reviews.VehicleReview
	for _, id := range vehicleIDs {
		out = append(out, s.byVehicle[id]...)
	}
	return out, nil
}

func stubFleet(n int) []vehicles.Vehicle {
	fleet := make([]vehicles.Vehicle, n)
	for i := range fleet {
		fleet[i] = vehicles.Vehicle{ID: uuid.New(), Status: vehicles.StatusActive}
	}
	return fleet
}

func TestFetchOwnerData_NoVehiclesShortCircuits(t *testing.T) {
	vehicleRepo := &stubVehicleRepo{fleet: []vehicles.Vehicle{}}
	bookingRepo := &stubBookingRepo{}
	reviewRepo := &stubReviewRepo{}
	fetcher := NewFetcher(vehicleRepo, bookingRepo, reviewRepo, 10, logger.GetDefault())

	ds, err := fetcher.FetchOwnerData(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, ds.Vehicles)
	assert.NotNil(t, ds.Bookings)
	assert.NotNil(t, ds.Reviews)
	assert.Empty(t, ds.Vehicles)
	assert.Empty(t, ds.Bookings)
	assert.Empty(t, ds.Reviews)

	// With no vehicle IDs there is nothing to look up.
	assert.Equal(t, 0, bookingRepo.calls)
	assert.Equal(t, 0, reviewRepo.calls)
}

func TestFetchOwnerData_ConcatenatesAcrossChunks(t *testing.T) {
	fleet := stubFleet(12)
	bookingRepo := &stubBookingRepo{byVehicle: map[uuid.UUID][]bookings.VehicleBooking{}}
	reviewRepo := &stubReviewRepo{byVehicle: map[uuid.UUID][]reviews.VehicleReview{}}
	for _, v := range fleet {
		bookingRepo.byVehicle[v.ID] = []bookings.VehicleBooking{{ID: uuid.New(), VehicleID: v.ID}}
		reviewRepo.byVehicle[v.ID] = []reviews.VehicleReview{{ID: uuid.New(), VehicleID: v.ID}}
	}
	fetcher := NewFetcher(&stubVehicleRepo{fleet: fleet}, bookingRepo, reviewRepo, 10, logger.GetDefault())

	ds, err := fetcher.FetchOwnerData(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Len(t, ds.Vehicles, 12)
	assert.Len(t, ds.Bookings, 12)
	assert.Len(t, ds.Reviews, 12)

	// 12 vehicles with a bound of 10 means two lookups per record type.
	assert.Equal(t, 2, bookingRepo.calls)
	assert.Equal(t, 2, reviewRepo.calls)

	// Chunking is invisible downstream: fleet order is preserved.
	for i, v := range fleet {
		assert.Equal(t, v.ID, ds.Bookings[i].VehicleID)
	}
}

func TestFetchOwnerData_ChunkFailureDiscardsPartials(t *testing.T) {
	fleet := stubFleet(15)
	bookingRepo := &stubBookingRepo{
		byVehicle: map[uuid.UUID][]bookings.VehicleBooking{},
		failOn:    fleet[12].ID, // second chunk fails after the first succeeded
	}
	for _, v := range fleet {
		bookingRepo.byVehicle[v.ID] = []bookings.VehicleBooking{{ID: uuid.New(), VehicleID: v.ID}}
	}
	fetcher := NewFetcher(&stubVehicleRepo{fleet: fleet}, bookingRepo, &stubReviewRepo{}, 10, logger.GetDefault())

	ds, err := fetcher.FetchOwnerData(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Nil(t, ds)
	assert.ErrorContains(t, err, "fetch bookings")
	assert.Equal(t, 2, bookingRepo.calls)
}

func TestFetchOwnerData_FleetLookupError(t *testing.T) {
	vehicleRepo := &stubVehicleRepo{err: errors.New("connection reset")}
	fetcher := NewFetcher(vehicleRepo, &stubBookingRepo{}, &stubReviewRepo{}, 10, logger.GetDefault())

	ds, err := fetcher.FetchOwnerData(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Nil(t, ds)
	assert.ErrorContains(t, err, "fetch fleet")
}

func makeIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestChunkIDs(t *testing.T) {
	cases := []struct {
		name  string
		count int
		size  int
		want  []int
	}{
		{"empty", 0, 10, nil},
		{"exactly one chunk", 10, 10, []int{10}},
		{"one over", 11, 10, []int{10, 1}},
		{"multiple chunks", 25, 10, []int{10, 10, 5}},
		{"size one", 3, 1, []int{1, 1, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids := makeIDs(tc.count)
			chunks := chunkIDs(ids, tc.size)

			require.Len(t, chunks, len(tc.want))
			for i, chunk := range chunks {
				assert.Len(t, chunk, tc.want[i])
			}

			// Order is preserved across chunk boundaries.
			flattened := make([]uuid.UUID, 0, tc.count)
			for _, chunk := range chunks {
				flattened = append(flattened, chunk...)
			}
			assert.Equal(t, ids, flattened)
		})
	}
}

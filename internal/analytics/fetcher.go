package analytics

import (
	"context"
	"fmt"

	"rently/internal/bookings"
	"rently/internal/reviews"
	"rently/internal/vehicles"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

// Fetcher loads one owner's raw dataset: the fleet first, then every booking
// and review belonging to those vehicles. Downstream lookups are chunked to
// respect the query engine's IN-clause bound, transparently to the
// aggregator. Any chunk failure discards partial results so a report is
// never computed from an inconsistent subset.
type Fetcher struct {
	vehicleRepo vehicles.Repository
	bookingRepo bookings.Repository
	reviewRepo  reviews.Repository
	chunkSize   int
	logger      *logger.Logger
}

func NewFetcher(vehicleRepo vehicles.Repository, bookingRepo bookings.Repository, reviewRepo reviews.Repository, chunkSize int, log *logger.Logger) *Fetcher {
	if chunkSize <= 0 {
		chunkSize = 10
	}
	return &Fetcher{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		chunkSize:   chunkSize,
		logger:      log,
	}
}

// FetchOwnerData retrieves the complete dataset for one owner.
func (f *Fetcher) FetchOwnerData(ctx context.Context, ownerID uuid.UUID) (*Dataset, error) {
	fleet, err := f.vehicleRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch fleet: %w", err)
	}

	// No vehicles means nothing to look up.
	if len(fleet) == 0 {
		return &Dataset{
			Vehicles: []vehicles.Vehicle{},
			Bookings: []bookings.VehicleBooking{},
			Reviews:  []reviews.VehicleReview{},
		}, nil
	}

	vehicleIDs := make([]uuid.UUID, 0, len(fleet))
	for i := range fleet {
		vehicleIDs = append(vehicleIDs, fleet[i].ID)
	}

	var allBookings []bookings.VehicleBooking
	var allReviews []reviews.VehicleReview

	for _, chunk := range chunkIDs(vehicleIDs, f.chunkSize) {
		chunkBookings, err := f.bookingRepo.GetByVehicleIDs(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("fetch bookings: %w", err)
		}
		allBookings = append(allBookings, chunkBookings...)

		chunkReviews, err := f.reviewRepo.GetByVehicleIDs(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("fetch reviews: %w", err)
		}
		allReviews = append(allReviews, chunkReviews...)
	}

	if allBookings == nil {
		allBookings = []bookings.VehicleBooking{}
	}
	if allReviews == nil {
		allReviews = []reviews.VehicleReview{}
	}

	f.logger.DebugContext(ctx, "owner dataset fetched",
		"owner_id", ownerID.String(),
		"vehicles", len(fleet),
		"bookings", len(allBookings),
		"reviews", len(allReviews),
	)

	return &Dataset{
		Vehicles: fleet,
		Bookings: allBookings,
		Reviews:  allReviews,
	}, nil
}

// chunkIDs partitions ids into slices of at most size elements, preserving
// order.
func chunkIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	if len(ids) == 0 {
		return nil
	}

	chunks := make([][]uuid.UUID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

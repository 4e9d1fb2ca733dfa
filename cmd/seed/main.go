package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"rently/internal/bookings"
	"rently/internal/owners"
	"rently/internal/reviews"
	"rently/internal/shared/config"
	"rently/internal/shared/database"
	"rently/internal/vehicles"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db  *database.DB
	rng *rand.Rand
}

func main() {
	fmt.Println("🌱 Starting Rently Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(42)), // deterministic fixtures
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"vehicle_reviews",
		"vehicle_bookings",
		"vehicles",
		"owners",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	ownerIDs, err := s.SeedOwners()
	if err != nil {
		return fmt.Errorf("failed to seed owners: %w", err)
	}

	vehicleIDs, err := s.SeedFleet(ownerIDs["owner1"])
	if err != nil {
		return fmt.Errorf("failed to seed fleet: %w", err)
	}

	if err := s.SeedBookings(ownerIDs["owner1"], vehicleIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	if err := s.SeedReviews(ownerIDs["owner1"], vehicleIDs); err != nil {
		return fmt.Errorf("failed to seed reviews: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedOwners creates 1 admin and 2 fleet owners
func (s *Seeder) SeedOwners() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding owners...")

	ownerIDs := make(map[string]uuid.UUID)

	// Hash password for all owners (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ownersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      owners.Role
	}{
		{"admin", "Admin", "User", "admin@rently.lk", owners.RoleAdmin},
		{"owner1", "Nimal", "Perera", "nimal@rently.lk", owners.RoleOwner},
		{"owner2", "Kumari", "Silva", "kumari@rently.lk", owners.RoleOwner},
	}

	for _, ownerData := range ownersData {
		owner := owners.Owner{
			ID:        uuid.New(),
			FirstName: ownerData.firstName,
			LastName:  ownerData.lastName,
			Email:     ownerData.email,
			Password:  string(hashedPassword),
			Role:      ownerData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&owner).Error; err != nil {
			return nil, fmt.Errorf("failed to create owner %s: %w", ownerData.email, err)
		}

		ownerIDs[ownerData.key] = owner.ID
		fmt.Printf("    ✅ Created owner: %s (%s)\n", owner.Email, owner.Role)
	}

	return ownerIDs, nil
}

// SeedFleet creates a small fleet for the primary owner
func (s *Seeder) SeedFleet(ownerID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🚗 Seeding fleet...")

	var vehicleIDs []uuid.UUID

	fleetData := []struct {
		make         string
		model        string
		year         int
		licensePlate string
		dailyRate    float64
		location     string
		status       vehicles.VehicleStatus
	}{
		{"Toyota", "Aqua", 2019, "CAB-1234", 45.00, "Colombo", vehicles.StatusActive},
		{"Suzuki", "Wagon R", 2020, "CAC-5678", 38.00, "Colombo", vehicles.StatusActive},
		{"Honda", "Vezel", 2021, "CBA-9012", 65.00, "Kandy", vehicles.StatusActive},
		{"Nissan", "Leaf", 2018, "CAE-3456", 50.00, "Galle", vehicles.StatusActive},
		{"Toyota", "Hiace", 2017, "NB-7890", 80.00, "Negombo", vehicles.StatusInactive},
	}

	for _, data := range fleetData {
		vehicle := vehicles.Vehicle{
			ID:           uuid.New(),
			OwnerID:      ownerID,
			Make:         data.make,
			Model:        data.model,
			Year:         data.year,
			LicensePlate: data.licensePlate,
			DailyRate:    data.dailyRate,
			Location:     data.location,
			Status:       data.status,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&vehicle).Error; err != nil {
			return nil, fmt.Errorf("failed to create vehicle %s: %w", data.licensePlate, err)
		}

		vehicleIDs = append(vehicleIDs, vehicle.ID)
		fmt.Printf("    ✅ Created vehicle: %s %s (%s)\n", vehicle.Make, vehicle.Model, vehicle.LicensePlate)
	}

	return vehicleIDs, nil
}

// SeedBookings spreads bookings across statuses, pickup times and the last
// few months so every report view has data
func (s *Seeder) SeedBookings(ownerID uuid.UUID, vehicleIDs []uuid.UUID) error {
	fmt.Println("  📅 Seeding bookings...")

	statuses := []bookings.BookingStatus{
		bookings.StatusCompleted, bookings.StatusCompleted, bookings.StatusCompleted,
		bookings.StatusConfirmed, bookings.StatusInProgress,
		bookings.StatusCancelled, bookings.StatusPending,
	}
	pickupTimes := []string{"07:30", "09:00", "11:45", "13:15", "16:00", "19:30", "22:00", ""}
	locations := []string{"Colombo Fort", "Bandaranaike Airport", "Kandy City", "Galle Face", "Negombo Beach"}
	customers := []struct {
		id    string
		email string
	}{
		{"cust-001", "saman@example.com"},
		{"cust-002", "tharindu@example.com"},
		{"cust-003", "ishara@example.com"},
		{"", "walkin@example.com"}, // identified by email only
	}

	count := 0
	for i := 0; i < 60; i++ {
		customer := customers[s.rng.Intn(len(customers))]
		createdAt := time.Now().AddDate(0, 0, -s.rng.Intn(150))
		pickupDate := createdAt.AddDate(0, 0, 1+s.rng.Intn(14))
		duration := 1 + s.rng.Intn(7)

		booking := bookings.VehicleBooking{
			ID:             uuid.New(),
			VehicleID:      vehicleIDs[s.rng.Intn(len(vehicleIDs))],
			OwnerID:        ownerID,
			CustomerID:     customer.id,
			CustomerEmail:  customer.email,
			Status:         statuses[s.rng.Intn(len(statuses))],
			TotalAmount:    float64(40+s.rng.Intn(200)) + 0.50,
			PickupDate:     pickupDate,
			DropoffDate:    pickupDate.AddDate(0, 0, duration),
			PickupTime:     pickupTimes[s.rng.Intn(len(pickupTimes))],
			PickupLocation: locations[s.rng.Intn(len(locations))],
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		}

		if err := s.db.PostgreSQL.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		count++
	}

	fmt.Printf("    ✅ Created %d bookings\n", count)
	return nil
}

// SeedReviews creates reviews for the fleet, some with owner responses
func (s *Seeder) SeedReviews(ownerID uuid.UUID, vehicleIDs []uuid.UUID) error {
	fmt.Println("  ⭐ Seeding reviews...")

	comments := []string{
		"Great car, very clean and fuel efficient.",
		"Smooth pickup process, would rent again.",
		"The AC could be better but overall a good experience.",
		"Perfect for our trip down south.",
		"Vehicle was older than expected.",
	}
	responses := []string{
		"Thank you for renting with us!",
		"Glad you enjoyed the trip.",
		"",
		"",
	}

	count := 0
	for i := 0; i < 15; i++ {
		review := reviews.VehicleReview{
			ID:            uuid.New(),
			VehicleID:     vehicleIDs[s.rng.Intn(len(vehicleIDs))],
			OwnerID:       ownerID,
			CustomerID:    fmt.Sprintf("cust-%03d", 1+s.rng.Intn(4)),
			Rating:        3 + s.rng.Intn(3),
			Comment:       comments[s.rng.Intn(len(comments))],
			OwnerResponse: responses[s.rng.Intn(len(responses))],
			CreatedAt:     time.Now().AddDate(0, 0, -s.rng.Intn(120)),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		count++
	}

	fmt.Printf("    ✅ Created %d reviews\n", count)
	return nil
}

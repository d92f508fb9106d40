// Command seed creates the schema and loads reference data: queue locations,
// appointment categories and a handful of demo accounts.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"taxiq/internal/app"
	"taxiq/internal/config"
	"taxiq/internal/domain"
	"taxiq/internal/repository/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	phone         TEXT NOT NULL,
	blocked       BOOLEAN NOT NULL DEFAULT FALSE,
	joined_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS drivers (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	phone         TEXT NOT NULL,
	vehicle_model TEXT NOT NULL,
	status        TEXT NOT NULL,
	earnings      NUMERIC NOT NULL DEFAULT 0,
	rating        NUMERIC NOT NULL DEFAULT 0,
	joined_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS rides (
	id             TEXT PRIMARY KEY,
	customer_id    TEXT NOT NULL,
	driver_id      TEXT,
	pickup         TEXT NOT NULL,
	destination    TEXT NOT NULL,
	status         TEXT NOT NULL,
	fare           NUMERIC NOT NULL,
	payment_status TEXT NOT NULL,
	booked_at      TIMESTAMPTZ NOT NULL,
	cancelled_at   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS ratings (
	id          TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL,
	driver_id   TEXT NOT NULL,
	ride_id     TEXT NOT NULL,
	value       INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
	id         TEXT PRIMARY KEY,
	ride_id    TEXT NOT NULL UNIQUE,
	driver_id  TEXT NOT NULL,
	amount     NUMERIC NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS locations (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE,
	available BOOLEAN NOT NULL DEFAULT TRUE,
	hours     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS categories (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE,
	available BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS tickets (
	id          TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL,
	location_id TEXT NOT NULL,
	category_id TEXT NOT NULL,
	number      INTEGER NOT NULL,
	served      BOOLEAN NOT NULL DEFAULT FALSE,
	issued_at   TIMESTAMPTZ NOT NULL,
	served_at   TIMESTAMPTZ,
	UNIQUE (location_id, category_id, number)
);
`

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	log.Println("Schema ready")

	seedLocations(ctx, db)
	seedCategories(ctx, db)
	seedDrivers(ctx, db)

	log.Println("Seed complete")
}

func seedLocations(ctx context.Context, db *sql.DB) {
	repo := postgres.NewLocationRepository(db)

	for _, name := range []string{"Central Branch", "Airport Counter", "North Terminal"} {
		loc := &domain.Location{
			ID:        uuid.New().String(),
			Name:      name,
			Available: true,
			Hours:     "08:00-18:00",
		}
		if err := repo.Create(ctx, loc); err != nil {
			log.Printf("location %q: %v", name, err)
			continue
		}
		log.Printf("location %q -> %s", name, loc.ID)
	}
}

func seedCategories(ctx context.Context, db *sql.DB) {
	repo := postgres.NewCategoryRepository(db)

	for _, name := range []string{"General", "Priority", "Appointments"} {
		cat := &domain.Category{
			ID:        uuid.New().String(),
			Name:      name,
			Available: true,
		}
		if err := repo.Create(ctx, cat); err != nil {
			log.Printf("category %q: %v", name, err)
			continue
		}
		log.Printf("category %q -> %s", name, cat.ID)
	}
}

func seedDrivers(ctx context.Context, db *sql.DB) {
	repo := postgres.NewDriverRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash demo password: %v", err)
	}

	demo := []struct {
		username, email, vehicle string
	}{
		{"demo-driver-1", "driver1@taxiq.local", "Toyota Prius"},
		{"demo-driver-2", "driver2@taxiq.local", "Honda Civic"},
	}

	for _, d := range demo {
		driver := &domain.Driver{
			ID:           uuid.New().String(),
			Username:     d.username,
			Email:        d.email,
			PasswordHash: string(hash),
			Phone:        "000-0000",
			VehicleModel: d.vehicle,
			Status:       domain.DriverStatusAvailable,
			JoinedAt:     time.Now(),
		}
		if err := repo.Create(ctx, driver); err != nil {
			log.Printf("driver %q: %v", d.username, err)
			continue
		}
		log.Printf("driver %q -> %s", d.username, driver.ID)
	}
}

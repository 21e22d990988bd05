package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

func (db *DB) migrate() error {
	log.Info().Msg("running database migrations")

	migrations := []string{
		// Lookup tables
		db.migrationBrand(),
		db.migrationModel(),
		db.migrationFuelType(),
		db.migrationItems(),
		// Core data
		db.migrationVehicles(),
		db.migrationVehicleItems(),
		db.migrationVehiclePhotos(),
		// Customers & sales
		db.migrationCustomers(),
		db.migrationSales(),
	}

	for i, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_vehicles_brand_id ON vehicles(brand_id)",
		"CREATE INDEX IF NOT EXISTS idx_vehicle_items_vehicle_id ON vehicle_items(vehicle_id)",
		"CREATE INDEX IF NOT EXISTS idx_vehicle_photos_vehicle_id ON vehicle_photos(vehicle_id)",
		"CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales(sale_date)",
	}
	for _, idx := range indexes {
		if _, err := db.conn.Exec(idx); err != nil {
			return fmt.Errorf("index creation: %w", err)
		}
	}

	if err := db.seedFuelTypes(); err != nil {
		return err
	}

	log.Info().Msg("migrations complete")
	return nil
}

func (db *DB) migrationBrand() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS brand (
		brand_id %s,
		name TEXT UNIQUE NOT NULL
	)`, db.autoIncrement())
}

func (db *DB) migrationModel() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS model (
		model_id %s,
		brand_id INTEGER NOT NULL REFERENCES brand(brand_id),
		name TEXT NOT NULL,
		UNIQUE(brand_id, name)
	)`, db.autoIncrement())
}

func (db *DB) migrationFuelType() string {
	return `CREATE TABLE IF NOT EXISTS fuel_type (
		fuel_type TEXT PRIMARY KEY,
		description TEXT NOT NULL
	)`
}

func (db *DB) migrationItems() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS items (
		item_id %s,
		item_name TEXT UNIQUE NOT NULL
	)`, db.autoIncrement())
}

func (db *DB) migrationVehicles() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id %s,
		brand_id INTEGER NOT NULL REFERENCES brand(brand_id),
		model_id INTEGER NOT NULL REFERENCES model(model_id),
		year_manufacture INTEGER NOT NULL,
		fuel_type TEXT NOT NULL REFERENCES fuel_type(fuel_type),
		simple_description TEXT,
		mileage INTEGER,
		ad_price NUMERIC(12,2),
		fipe_price NUMERIC(12,2),
		created_at %s DEFAULT CURRENT_TIMESTAMP
	)`, db.autoIncrement(), db.timestampType())
}

func (db *DB) migrationVehicleItems() string {
	return `CREATE TABLE IF NOT EXISTS vehicle_items (
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(vehicle_id) ON DELETE CASCADE,
		item_id INTEGER NOT NULL REFERENCES items(item_id),
		PRIMARY KEY (vehicle_id, item_id)
	)`
}

func (db *DB) migrationVehiclePhotos() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS vehicle_photos (
		photo_id %s,
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(vehicle_id) ON DELETE CASCADE,
		photo_url TEXT NOT NULL
	)`, db.autoIncrement())
}

func (db *DB) migrationCustomers() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS customers (
		customer_id %s,
		full_name TEXT NOT NULL,
		phone TEXT,
		email TEXT UNIQUE,
		password TEXT,
		created_at %s DEFAULT CURRENT_TIMESTAMP
	)`, db.autoIncrement(), db.timestampType())
}

func (db *DB) migrationSales() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sales (
		sale_id %s,
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(vehicle_id),
		customer_id INTEGER NOT NULL REFERENCES customers(customer_id),
		sale_price NUMERIC(12,2) NOT NULL,
		sale_date DATE NOT NULL DEFAULT CURRENT_DATE
	)`, db.autoIncrement())
}

// seedFuelTypes inserts the fixed fuel codes. Safe to re-run; duplicate
// inserts are ignored.
func (db *DB) seedFuelTypes() error {
	fuelTypes := []struct {
		code        string
		description string
	}{
		{"G", "Gasolina"},
		{"A", "Álcool"},
		{"D", "Diesel"},
		{"F", "Flex"},
	}

	query := db.prepareQuery("INSERT INTO fuel_type (fuel_type, description) VALUES (?, ?) ON CONFLICT(fuel_type) DO NOTHING")
	for _, ft := range fuelTypes {
		if _, err := db.conn.Exec(query, ft.code, ft.description); err != nil {
			return fmt.Errorf("seeding fuel type %s: %w", ft.code, err)
		}
	}
	return nil
}

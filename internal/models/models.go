package models

import "time"

// --- Lookup Types ---

type Brand struct {
	ID   int    `json:"brand_id"`
	Name string `json:"name"`
}

type Model struct {
	ID        int    `json:"model_id"`
	BrandID   int    `json:"brand_id"`
	Name      string `json:"name"`
	BrandName string `json:"brand_name,omitempty"`
}

type Item struct {
	ID   int    `json:"item_id"`
	Name string `json:"item_name"`
}

// FuelType is a fixed lookup row (G/A/D/F). Rows are seeded by migrations
// and never created or deleted through the API.
type FuelType struct {
	Code        string `json:"fuel_type"`
	Description string `json:"description"`
}

// --- Vehicles ---

// VehicleView is the denormalized vehicle representation returned to API
// consumers: brand/model/fuel resolved to their names, items and photos
// aggregated into flat arrays.
type VehicleView struct {
	ID                int      `json:"vehicle_id"`
	Brand             string   `json:"brand"`
	Model             string   `json:"model"`
	YearManufacture   int      `json:"year_manufacture"`
	FuelType          string   `json:"fuel_type"`
	SimpleDescription *string  `json:"simple_description"`
	Mileage           *int     `json:"mileage"`
	AdPrice           *float64 `json:"ad_price"`
	FipePrice         *float64 `json:"fipe_price"`
	Items             []string `json:"items"`
	Photos            []string `json:"photos"`
}

// VehicleInput is the create payload. Brand and model are natural keys,
// resolved (and created if absent) inside the write transaction.
type VehicleInput struct {
	Brand             string   `json:"brand"`
	Model             string   `json:"model"`
	YearManufacture   int      `json:"year_manufacture"`
	FuelType          string   `json:"fuel_type"`
	SimpleDescription *string  `json:"simple_description"`
	Mileage           *int     `json:"mileage"`
	AdPrice           *float64 `json:"ad_price"`
	FipePrice         *float64 `json:"fipe_price"`
	Items             []string `json:"items"`
	Photos            []string `json:"photos"`
}

// VehicleUpdate is the sparse update payload: nil fields are left untouched.
// A non-nil Items or Photos slice (including an empty one) triggers a full
// replace of the corresponding associations.
type VehicleUpdate struct {
	Brand             *string  `json:"brand"`
	Model             *string  `json:"model"`
	YearManufacture   *int     `json:"year_manufacture"`
	FuelType          *string  `json:"fuel_type"`
	SimpleDescription *string  `json:"simple_description"`
	Mileage           *int     `json:"mileage"`
	AdPrice           *float64 `json:"ad_price"`
	FipePrice         *float64 `json:"fipe_price"`
	Items             []string `json:"items"`
	Photos            []string `json:"photos"`
}

// VehicleFilters are the optional, AND-combined listing filters.
type VehicleFilters struct {
	Brand    string
	Model    string
	FuelType string
	MinPrice *float64
	MaxPrice *float64
	MinYear  *int
	MaxYear  *int
	Limit    int
	Offset   int
}

type VehiclePhoto struct {
	ID        int    `json:"photo_id"`
	VehicleID int    `json:"vehicle_id"`
	PhotoURL  string `json:"photo_url"`
}

// --- Customers & Sales ---

type Customer struct {
	ID        int       `json:"customer_id"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`

	// Never serialized; populated only for credential checks.
	PasswordHash *string `json:"-"`
}

type CustomerInput struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type CustomerUpdate struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

// SaleView joins a sale with its vehicle and customer for reporting.
type SaleView struct {
	ID              int     `json:"sale_id"`
	SalePrice       float64 `json:"sale_price"`
	SaleDate        string  `json:"sale_date"`
	VehicleID       int     `json:"vehicle_id"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	YearManufacture int     `json:"year_manufacture"`
	CustomerID      int     `json:"customer_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerEmail   *string `json:"customer_email"`
}

type SaleInput struct {
	VehicleID  int     `json:"vehicle_id"`
	CustomerID int     `json:"customer_id"`
	SalePrice  float64 `json:"sale_price"`
	SaleDate   string  `json:"sale_date"`
}

type SaleUpdate struct {
	VehicleID  *int     `json:"vehicle_id"`
	CustomerID *int     `json:"customer_id"`
	SalePrice  *float64 `json:"sale_price"`
	SaleDate   *string  `json:"sale_date"`
}

type SaleFilters struct {
	CustomerID int
	VehicleID  int
	StartDate  string
	EndDate    string
	Limit      int
	Offset     int
}

// PriceRange summarizes ad prices over the current stock, optionally
// narrowed to a brand. Used by the chatbot adapter.
type PriceRange struct {
	Count    int     `json:"count"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	AvgPrice float64 `json:"avg_price"`
}

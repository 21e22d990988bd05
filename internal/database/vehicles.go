package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/motorlot/catalog-api/internal/models"
	"github.com/rs/zerolog/log"
)

// --- Vehicle Queries ---

const vehicleSelect = `
	SELECT v.vehicle_id, b.name, m.name, v.year_manufacture, v.fuel_type,
		v.simple_description, v.mileage, v.ad_price, v.fipe_price
	FROM vehicles v
	INNER JOIN brand b ON v.brand_id = b.brand_id
	INNER JOIN model m ON v.model_id = m.model_id
	INNER JOIN fuel_type ft ON v.fuel_type = ft.fuel_type`

// ListVehicles returns the filtered, paginated catalog, newest first.
// Items and photos are aggregated per vehicle in two follow-up queries so
// the two LEFT JOIN sides can never cross-multiply rows.
func (db *DB) ListVehicles(ctx context.Context, f models.VehicleFilters) ([]models.VehicleView, error) {
	var conditions []string
	var args []interface{}

	if f.Brand != "" {
		conditions = append(conditions, "b.name = ?")
		args = append(args, f.Brand)
	}
	if f.Model != "" {
		conditions = append(conditions, "m.name = ?")
		args = append(args, f.Model)
	}
	if f.FuelType != "" {
		conditions = append(conditions, "v.fuel_type = ?")
		args = append(args, f.FuelType)
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "v.ad_price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "v.ad_price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinYear != nil {
		conditions = append(conditions, "v.year_manufacture >= ?")
		args = append(args, *f.MinYear)
	}
	if f.MaxYear != nil {
		conditions = append(conditions, "v.year_manufacture <= ?")
		args = append(args, *f.MaxYear)
	}

	query := vehicleSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY v.vehicle_id DESC"
	query += db.limitOffsetClause(f.Limit, f.Offset, &args)

	rows, err := db.conn.QueryContext(ctx, db.prepareQuery(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.VehicleView
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.attachAssociations(ctx, vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// GetVehicle returns a single joined vehicle view, or nil when the id does
// not exist.
func (db *DB) GetVehicle(ctx context.Context, id int) (*models.VehicleView, error) {
	row := db.conn.QueryRowContext(ctx, db.prepareQuery(vehicleSelect+" WHERE v.vehicle_id = ?"), id)

	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	view := []models.VehicleView{*v}
	if err := db.attachAssociations(ctx, view); err != nil {
		return nil, err
	}
	return &view[0], nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(r rowScanner) (*models.VehicleView, error) {
	var v models.VehicleView
	var desc sql.NullString
	var mileage sql.NullInt64
	var adPrice, fipePrice sql.NullFloat64

	err := r.Scan(&v.ID, &v.Brand, &v.Model, &v.YearManufacture, &v.FuelType,
		&desc, &mileage, &adPrice, &fipePrice)
	if err != nil {
		return nil, err
	}

	if desc.Valid {
		v.SimpleDescription = &desc.String
	}
	if mileage.Valid {
		n := int(mileage.Int64)
		v.Mileage = &n
	}
	if adPrice.Valid {
		v.AdPrice = &adPrice.Float64
	}
	if fipePrice.Valid {
		v.FipePrice = &fipePrice.Float64
	}

	// JSON arrays, never null
	v.Items = []string{}
	v.Photos = []string{}
	return &v, nil
}

// attachAssociations fills Items and Photos for a page of vehicles. Each
// side is fetched and grouped independently.
func (db *DB) attachAssociations(ctx context.Context, vehicles []models.VehicleView) error {
	if len(vehicles) == 0 {
		return nil
	}

	ids := make([]interface{}, len(vehicles))
	index := make(map[int]*models.VehicleView, len(vehicles))
	for i := range vehicles {
		ids[i] = vehicles[i].ID
		index[vehicles[i].ID] = &vehicles[i]
	}
	in := inPlaceholders(len(ids))

	itemQuery := fmt.Sprintf(`
		SELECT vi.vehicle_id, i.item_name
		FROM vehicle_items vi
		INNER JOIN items i ON vi.item_id = i.item_id
		WHERE vi.vehicle_id IN (%s)
		ORDER BY i.item_name`, in)
	rows, err := db.conn.QueryContext(ctx, db.prepareQuery(itemQuery), ids...)
	if err != nil {
		return fmt.Errorf("loading vehicle items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vehicleID int
		var name string
		if err := rows.Scan(&vehicleID, &name); err != nil {
			return err
		}
		if v := index[vehicleID]; v != nil {
			v.Items = append(v.Items, name)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	photoQuery := fmt.Sprintf(`
		SELECT vehicle_id, photo_url
		FROM vehicle_photos
		WHERE vehicle_id IN (%s)
		ORDER BY photo_id`, in)
	photoRows, err := db.conn.QueryContext(ctx, db.prepareQuery(photoQuery), ids...)
	if err != nil {
		return fmt.Errorf("loading vehicle photos: %w", err)
	}
	defer photoRows.Close()

	for photoRows.Next() {
		var vehicleID int
		var url string
		if err := photoRows.Scan(&vehicleID, &url); err != nil {
			return err
		}
		if v := index[vehicleID]; v != nil {
			v.Photos = append(v.Photos, url)
		}
	}
	return photoRows.Err()
}

func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// --- Lookup Resolvers (tx-scoped get-or-create) ---

// getOrCreate resolves a natural key to its surrogate id, inserting the row
// when missing. The insert is a conditional ON CONFLICT DO NOTHING so a
// concurrent creator of the same key cannot fail the transaction (a plain
// insert losing that race would abort the whole tx on postgres); the id is
// re-read after the insert either way.
func (db *DB) getOrCreate(ctx context.Context, tx *sql.Tx, lookup, insert string, lookupArgs, insertArgs []interface{}) (int, error) {
	var id int
	err := tx.QueryRowContext(ctx, db.prepareQuery(lookup), lookupArgs...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, db.prepareQuery(insert), insertArgs...); err != nil {
		return 0, classifyError(err)
	}
	err = tx.QueryRowContext(ctx, db.prepareQuery(lookup), lookupArgs...).Scan(&id)
	return id, err
}

func (db *DB) getOrCreateBrand(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	id, err := db.getOrCreate(ctx, tx,
		"SELECT brand_id FROM brand WHERE name = ?",
		"INSERT INTO brand (name) VALUES (?) ON CONFLICT(name) DO NOTHING",
		[]interface{}{name}, []interface{}{name})
	if err != nil {
		return 0, fmt.Errorf("resolving brand %q: %w", name, err)
	}
	return id, nil
}

// getOrCreateModel resolves a model name scoped to its brand.
func (db *DB) getOrCreateModel(ctx context.Context, tx *sql.Tx, brandID int, name string) (int, error) {
	id, err := db.getOrCreate(ctx, tx,
		"SELECT model_id FROM model WHERE brand_id = ? AND name = ?",
		"INSERT INTO model (brand_id, name) VALUES (?, ?) ON CONFLICT(brand_id, name) DO NOTHING",
		[]interface{}{brandID, name}, []interface{}{brandID, name})
	if err != nil {
		return 0, fmt.Errorf("resolving model %q: %w", name, err)
	}
	return id, nil
}

func (db *DB) getOrCreateItem(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	id, err := db.getOrCreate(ctx, tx,
		"SELECT item_id FROM items WHERE item_name = ?",
		"INSERT INTO items (item_name) VALUES (?) ON CONFLICT(item_name) DO NOTHING",
		[]interface{}{name}, []interface{}{name})
	if err != nil {
		return 0, fmt.Errorf("resolving item %q: %w", name, err)
	}
	return id, nil
}

// --- Vehicle Writer ---

// CreateVehicle resolves brand and model, inserts the vehicle row and its
// item/photo associations in one transaction, then re-reads the joined view.
func (db *DB) CreateVehicle(ctx context.Context, in models.VehicleInput) (*models.VehicleView, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	brandID, err := db.getOrCreateBrand(ctx, tx, in.Brand)
	if err != nil {
		return nil, err
	}
	modelID, err := db.getOrCreateModel(ctx, tx, brandID, in.Model)
	if err != nil {
		return nil, err
	}

	vehicleID, err := db.insertReturningID(ctx, tx, `
		INSERT INTO vehicles (brand_id, model_id, year_manufacture, fuel_type,
			simple_description, mileage, ad_price, fipe_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, "vehicle_id",
		brandID, modelID, in.YearManufacture, in.FuelType,
		in.SimpleDescription, in.Mileage, in.AdPrice, in.FipePrice)
	if err != nil {
		return nil, fmt.Errorf("inserting vehicle: %w", classifyError(err))
	}

	if len(in.Items) > 0 {
		if err := db.insertVehicleItems(ctx, tx, vehicleID, in.Items); err != nil {
			return nil, err
		}
	}
	if len(in.Photos) > 0 {
		if err := db.insertVehiclePhotos(ctx, tx, vehicleID, in.Photos); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing vehicle create: %w", classifyError(err))
	}

	log.Info().Int("vehicle_id", vehicleID).Str("brand", in.Brand).Str("model", in.Model).Msg("vehicle created")
	return db.GetVehicle(ctx, vehicleID)
}

// UpdateVehicle applies a sparse update. Only supplied fields change; a
// non-nil items or photos slice replaces the whole association set. Model
// resolution runs only when brand and model arrive together: a model name
// without a brand is skipped, since the scoping brand id is not re-derived
// from the stored row.
func (db *DB) UpdateVehicle(ctx context.Context, id int, in models.VehicleUpdate) (*models.VehicleView, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var brandID, modelID int
	if in.Brand != nil {
		brandID, err = db.getOrCreateBrand(ctx, tx, *in.Brand)
		if err != nil {
			return nil, err
		}
	}
	if in.Model != nil && brandID != 0 {
		modelID, err = db.getOrCreateModel(ctx, tx, brandID, *in.Model)
		if err != nil {
			return nil, err
		}
	}

	var fields []string
	var args []interface{}
	addField := func(column string, value interface{}) {
		fields = append(fields, column+" = ?")
		args = append(args, value)
	}

	if brandID != 0 {
		addField("brand_id", brandID)
	}
	if modelID != 0 {
		addField("model_id", modelID)
	}
	if in.YearManufacture != nil {
		addField("year_manufacture", *in.YearManufacture)
	}
	if in.FuelType != nil {
		addField("fuel_type", *in.FuelType)
	}
	if in.SimpleDescription != nil {
		addField("simple_description", *in.SimpleDescription)
	}
	if in.Mileage != nil {
		addField("mileage", *in.Mileage)
	}
	if in.AdPrice != nil {
		addField("ad_price", *in.AdPrice)
	}
	if in.FipePrice != nil {
		addField("fipe_price", *in.FipePrice)
	}

	if len(fields) > 0 {
		query := fmt.Sprintf("UPDATE vehicles SET %s WHERE vehicle_id = ?", strings.Join(fields, ", "))
		args = append(args, id)
		if _, err := tx.ExecContext(ctx, db.prepareQuery(query), args...); err != nil {
			return nil, fmt.Errorf("updating vehicle: %w", classifyError(err))
		}
	}

	if in.Items != nil {
		if _, err := tx.ExecContext(ctx, db.prepareQuery("DELETE FROM vehicle_items WHERE vehicle_id = ?"), id); err != nil {
			return nil, fmt.Errorf("clearing vehicle items: %w", err)
		}
		if err := db.insertVehicleItems(ctx, tx, id, in.Items); err != nil {
			return nil, err
		}
	}
	if in.Photos != nil {
		if _, err := tx.ExecContext(ctx, db.prepareQuery("DELETE FROM vehicle_photos WHERE vehicle_id = ?"), id); err != nil {
			return nil, fmt.Errorf("clearing vehicle photos: %w", err)
		}
		if err := db.insertVehiclePhotos(ctx, tx, id, in.Photos); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing vehicle update: %w", classifyError(err))
	}

	return db.GetVehicle(ctx, id)
}

func (db *DB) insertVehicleItems(ctx context.Context, tx *sql.Tx, vehicleID int, items []string) error {
	query := db.prepareQuery("INSERT INTO vehicle_items (vehicle_id, item_id) VALUES (?, ?) ON CONFLICT DO NOTHING")
	for _, name := range items {
		itemID, err := db.getOrCreateItem(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, vehicleID, itemID); err != nil {
			return fmt.Errorf("linking item %q: %w", name, classifyError(err))
		}
	}
	return nil
}

func (db *DB) insertVehiclePhotos(ctx context.Context, tx *sql.Tx, vehicleID int, photos []string) error {
	query := db.prepareQuery("INSERT INTO vehicle_photos (vehicle_id, photo_url) VALUES (?, ?)")
	for _, url := range photos {
		if _, err := tx.ExecContext(ctx, query, vehicleID, url); err != nil {
			return fmt.Errorf("adding photo: %w", classifyError(err))
		}
	}
	return nil
}

// DeleteVehicle removes a vehicle; its photos and item links cascade.
func (db *DB) DeleteVehicle(ctx context.Context, id int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("DELETE FROM vehicles WHERE vehicle_id = ?"), id)
	if err != nil {
		return false, classifyError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// VehiclePriceRange summarizes advertised prices, optionally for one brand.
func (db *DB) VehiclePriceRange(ctx context.Context, brand string) (*models.PriceRange, error) {
	query := `
		SELECT COUNT(v.vehicle_id), COALESCE(MIN(v.ad_price), 0),
			COALESCE(MAX(v.ad_price), 0), COALESCE(AVG(v.ad_price), 0)
		FROM vehicles v
		INNER JOIN brand b ON v.brand_id = b.brand_id
		WHERE v.ad_price IS NOT NULL`
	var args []interface{}
	if brand != "" {
		query += " AND b.name = ?"
		args = append(args, brand)
	}

	var pr models.PriceRange
	err := db.conn.QueryRowContext(ctx, db.prepareQuery(query), args...).
		Scan(&pr.Count, &pr.MinPrice, &pr.MaxPrice, &pr.AvgPrice)
	if err != nil {
		return nil, fmt.Errorf("computing price range: %w", err)
	}
	return &pr, nil
}

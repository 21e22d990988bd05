package database

import (
	"context"
	"database/sql"

	"github.com/motorlot/catalog-api/internal/models"
)

func (db *DB) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT item_id, item_name FROM items ORDER BY item_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (db *DB) GetItem(ctx context.Context, id int) (*models.Item, error) {
	var i models.Item
	err := db.conn.QueryRowContext(ctx, db.prepareQuery("SELECT item_id, item_name FROM items WHERE item_id = ?"), id).
		Scan(&i.ID, &i.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &i, err
}

func (db *DB) CreateItem(ctx context.Context, name string) (*models.Item, error) {
	id, err := db.insertReturningID(ctx, db.conn, "INSERT INTO items (item_name) VALUES (?)", "item_id", name)
	if err != nil {
		return nil, classifyError(err)
	}
	return &models.Item{ID: id, Name: name}, nil
}

func (db *DB) UpdateItem(ctx context.Context, id int, name string) (*models.Item, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("UPDATE items SET item_name = ? WHERE item_id = ?"), name, id)
	if err != nil {
		return nil, classifyError(err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}
	return &models.Item{ID: id, Name: name}, nil
}

func (db *DB) DeleteItem(ctx context.Context, id int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("DELETE FROM items WHERE item_id = ?"), id)
	if err != nil {
		return false, classifyError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// --- Fuel Types (read-only lookup) ---

func (db *DB) ListFuelTypes(ctx context.Context) ([]models.FuelType, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT fuel_type, description FROM fuel_type ORDER BY fuel_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fuelTypes []models.FuelType
	for rows.Next() {
		var ft models.FuelType
		if err := rows.Scan(&ft.Code, &ft.Description); err != nil {
			return nil, err
		}
		fuelTypes = append(fuelTypes, ft)
	}
	return fuelTypes, rows.Err()
}

func (db *DB) GetFuelType(ctx context.Context, code string) (*models.FuelType, error) {
	var ft models.FuelType
	err := db.conn.QueryRowContext(ctx, db.prepareQuery("SELECT fuel_type, description FROM fuel_type WHERE fuel_type = ?"), code).
		Scan(&ft.Code, &ft.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &ft, err
}

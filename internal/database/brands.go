package database

import (
	"context"
	"database/sql"

	"github.com/motorlot/catalog-api/internal/models"
)

func (db *DB) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT brand_id, name FROM brand ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (db *DB) GetBrand(ctx context.Context, id int) (*models.Brand, error) {
	var b models.Brand
	err := db.conn.QueryRowContext(ctx, db.prepareQuery("SELECT brand_id, name FROM brand WHERE brand_id = ?"), id).
		Scan(&b.ID, &b.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

func (db *DB) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	id, err := db.insertReturningID(ctx, db.conn, "INSERT INTO brand (name) VALUES (?)", "brand_id", name)
	if err != nil {
		return nil, classifyError(err)
	}
	return &models.Brand{ID: id, Name: name}, nil
}

func (db *DB) UpdateBrand(ctx context.Context, id int, name string) (*models.Brand, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("UPDATE brand SET name = ? WHERE brand_id = ?"), name, id)
	if err != nil {
		return nil, classifyError(err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}
	return &models.Brand{ID: id, Name: name}, nil
}

func (db *DB) DeleteBrand(ctx context.Context, id int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("DELETE FROM brand WHERE brand_id = ?"), id)
	if err != nil {
		return false, classifyError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

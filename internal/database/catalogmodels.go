package database

import (
	"context"
	"database/sql"

	"github.com/motorlot/catalog-api/internal/models"
)

const modelSelect = `
	SELECT m.model_id, m.brand_id, m.name, b.name
	FROM model m
	INNER JOIN brand b ON m.brand_id = b.brand_id`

// ListModels returns all models with their brand names, optionally limited
// to one brand.
func (db *DB) ListModels(ctx context.Context, brandID int) ([]models.Model, error) {
	query := modelSelect
	var args []interface{}
	if brandID > 0 {
		query += " WHERE m.brand_id = ?"
		args = append(args, brandID)
	}
	query += " ORDER BY b.name, m.name"

	rows, err := db.conn.QueryContext(ctx, db.prepareQuery(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Model
	for rows.Next() {
		var m models.Model
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.BrandName); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (db *DB) GetModel(ctx context.Context, id int) (*models.Model, error) {
	var m models.Model
	err := db.conn.QueryRowContext(ctx, db.prepareQuery(modelSelect+" WHERE m.model_id = ?"), id).
		Scan(&m.ID, &m.BrandID, &m.Name, &m.BrandName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &m, err
}

func (db *DB) CreateModel(ctx context.Context, brandID int, name string) (*models.Model, error) {
	id, err := db.insertReturningID(ctx, db.conn, "INSERT INTO model (brand_id, name) VALUES (?, ?)", "model_id", brandID, name)
	if err != nil {
		return nil, classifyError(err)
	}
	return db.GetModel(ctx, id)
}

func (db *DB) UpdateModel(ctx context.Context, id, brandID int, name string) (*models.Model, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("UPDATE model SET brand_id = ?, name = ? WHERE model_id = ?"), brandID, name, id)
	if err != nil {
		return nil, classifyError(err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}
	return db.GetModel(ctx, id)
}

func (db *DB) DeleteModel(ctx context.Context, id int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("DELETE FROM model WHERE model_id = ?"), id)
	if err != nil {
		return false, classifyError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

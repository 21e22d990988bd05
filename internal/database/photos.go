package database

import (
	"context"
	"database/sql"

	"github.com/motorlot/catalog-api/internal/models"
)

func (db *DB) ListVehiclePhotos(ctx context.Context, vehicleID int) ([]models.VehiclePhoto, error) {
	rows, err := db.conn.QueryContext(ctx,
		db.prepareQuery("SELECT photo_id, vehicle_id, photo_url FROM vehicle_photos WHERE vehicle_id = ? ORDER BY photo_id"),
		vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.VehiclePhoto
	for rows.Next() {
		var p models.VehiclePhoto
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.PhotoURL); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (db *DB) GetVehiclePhoto(ctx context.Context, photoID int) (*models.VehiclePhoto, error) {
	var p models.VehiclePhoto
	err := db.conn.QueryRowContext(ctx,
		db.prepareQuery("SELECT photo_id, vehicle_id, photo_url FROM vehicle_photos WHERE photo_id = ?"),
		photoID).Scan(&p.ID, &p.VehicleID, &p.PhotoURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &p, err
}

func (db *DB) AddVehiclePhoto(ctx context.Context, vehicleID int, photoURL string) (*models.VehiclePhoto, error) {
	id, err := db.insertReturningID(ctx, db.conn,
		"INSERT INTO vehicle_photos (vehicle_id, photo_url) VALUES (?, ?)", "photo_id", vehicleID, photoURL)
	if err != nil {
		return nil, classifyError(err)
	}
	return &models.VehiclePhoto{ID: id, VehicleID: vehicleID, PhotoURL: photoURL}, nil
}

func (db *DB) DeleteVehiclePhoto(ctx context.Context, photoID int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("DELETE FROM vehicle_photos WHERE photo_id = ?"), photoID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

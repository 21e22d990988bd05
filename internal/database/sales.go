package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/motorlot/catalog-api/internal/models"
)

const saleSelect = `
	SELECT s.sale_id, s.sale_price, s.sale_date,
		v.vehicle_id, b.name, m.name, v.year_manufacture,
		c.customer_id, c.full_name, c.phone, c.email
	FROM sales s
	INNER JOIN vehicles v ON s.vehicle_id = v.vehicle_id
	INNER JOIN brand b ON v.brand_id = b.brand_id
	INNER JOIN model m ON v.model_id = m.model_id
	INNER JOIN customers c ON s.customer_id = c.customer_id`

// ListSales returns sales joined with vehicle and customer details,
// newest sale date first.
func (db *DB) ListSales(ctx context.Context, f models.SaleFilters) ([]models.SaleView, error) {
	var conditions []string
	var args []interface{}

	if f.CustomerID > 0 {
		conditions = append(conditions, "s.customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.VehicleID > 0 {
		conditions = append(conditions, "s.vehicle_id = ?")
		args = append(args, f.VehicleID)
	}
	if f.StartDate != "" {
		conditions = append(conditions, "s.sale_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conditions = append(conditions, "s.sale_date <= ?")
		args = append(args, f.EndDate)
	}

	query := saleSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.sale_date DESC"
	query += db.limitOffsetClause(f.Limit, f.Offset, &args)

	rows, err := db.conn.QueryContext(ctx, db.prepareQuery(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []models.SaleView
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *s)
	}
	return sales, rows.Err()
}

func (db *DB) GetSale(ctx context.Context, id int) (*models.SaleView, error) {
	s, err := scanSale(db.conn.QueryRowContext(ctx, db.prepareQuery(saleSelect+" WHERE s.sale_id = ?"), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func scanSale(r rowScanner) (*models.SaleView, error) {
	var s models.SaleView
	var saleDate time.Time
	err := r.Scan(&s.ID, &s.SalePrice, &saleDate,
		&s.VehicleID, &s.Brand, &s.Model, &s.YearManufacture,
		&s.CustomerID, &s.CustomerName, &s.CustomerPhone, &s.CustomerEmail)
	if err != nil {
		return nil, err
	}
	s.SaleDate = saleDate.Format("2006-01-02")
	return &s, nil
}

func (db *DB) CreateSale(ctx context.Context, in models.SaleInput) (*models.SaleView, error) {
	if in.SaleDate == "" {
		in.SaleDate = time.Now().Format("2006-01-02")
	}

	id, err := db.insertReturningID(ctx, db.conn,
		"INSERT INTO sales (vehicle_id, customer_id, sale_price, sale_date) VALUES (?, ?, ?, ?)",
		"sale_id", in.VehicleID, in.CustomerID, in.SalePrice, in.SaleDate)
	if err != nil {
		return nil, classifyError(err)
	}
	return db.GetSale(ctx, id)
}

func (db *DB) UpdateSale(ctx context.Context, id int, in models.SaleUpdate) (*models.SaleView, error) {
	var fields []string
	var args []interface{}

	if in.VehicleID != nil {
		fields = append(fields, "vehicle_id = ?")
		args = append(args, *in.VehicleID)
	}
	if in.CustomerID != nil {
		fields = append(fields, "customer_id = ?")
		args = append(args, *in.CustomerID)
	}
	if in.SalePrice != nil {
		fields = append(fields, "sale_price = ?")
		args = append(args, *in.SalePrice)
	}
	if in.SaleDate != nil {
		fields = append(fields, "sale_date = ?")
		args = append(args, *in.SaleDate)
	}

	if len(fields) == 0 {
		return db.GetSale(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE sales SET %s WHERE sale_id = ?", strings.Join(fields, ", "))
	if _, err := db.conn.ExecContext(ctx, db.prepareQuery(query), args...); err != nil {
		return nil, classifyError(err)
	}
	return db.GetSale(ctx, id)
}

func (db *DB) DeleteSale(ctx context.Context, id int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("DELETE FROM sales WHERE sale_id = ?"), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

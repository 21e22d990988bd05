package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/motorlot/catalog-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (db *DB) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT customer_id, full_name, phone, email, created_at FROM customers ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (db *DB) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	var c models.Customer
	err := db.conn.QueryRowContext(ctx,
		db.prepareQuery("SELECT customer_id, full_name, phone, email, created_at FROM customers WHERE customer_id = ?"),
		id).Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &c, err
}

func (db *DB) getCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	err := db.conn.QueryRowContext(ctx,
		db.prepareQuery("SELECT customer_id, full_name, phone, email, password, created_at FROM customers WHERE email = ?"),
		email).Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &c, err
}

func (db *DB) CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	var hash *string
	if in.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		s := string(h)
		hash = &s
	}

	id, err := db.insertReturningID(ctx, db.conn,
		"INSERT INTO customers (full_name, phone, email, password) VALUES (?, ?, ?, ?)",
		"customer_id", in.FullName, in.Phone, in.Email, hash)
	if err != nil {
		return nil, classifyError(err)
	}
	return db.GetCustomer(ctx, id)
}

func (db *DB) UpdateCustomer(ctx context.Context, id int, in models.CustomerUpdate) (*models.Customer, error) {
	var fields []string
	var args []interface{}

	if in.FullName != nil {
		fields = append(fields, "full_name = ?")
		args = append(args, *in.FullName)
	}
	if in.Phone != nil {
		fields = append(fields, "phone = ?")
		args = append(args, *in.Phone)
	}
	if in.Email != nil {
		fields = append(fields, "email = ?")
		args = append(args, *in.Email)
	}

	if len(fields) == 0 {
		return db.GetCustomer(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE customers SET %s WHERE customer_id = ?", strings.Join(fields, ", "))
	if _, err := db.conn.ExecContext(ctx, db.prepareQuery(query), args...); err != nil {
		return nil, classifyError(err)
	}
	return db.GetCustomer(ctx, id)
}

func (db *DB) UpdateCustomerPassword(ctx context.Context, id int, newPassword string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	res, err := db.conn.ExecContext(ctx,
		db.prepareQuery("UPDATE customers SET password = ? WHERE customer_id = ?"), string(hash), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Authenticate checks customer credentials and returns the customer without
// its hash, or nil when the email is unknown or the password does not match.
func (db *DB) Authenticate(ctx context.Context, email, password string) (*models.Customer, error) {
	c, err := db.getCustomerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil || c.PasswordHash == nil {
		return nil, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(*c.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	c.PasswordHash = nil
	return c, nil
}

func (db *DB) DeleteCustomer(ctx context.Context, id int) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.prepareQuery("DELETE FROM customers WHERE customer_id = ?"), id)
	if err != nil {
		return false, classifyError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

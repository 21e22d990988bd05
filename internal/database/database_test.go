package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplacePlaceholders(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM brand WHERE name = ?", "SELECT * FROM brand WHERE name = $1"},
		{"INSERT INTO model (brand_id, name) VALUES (?, ?)", "INSERT INTO model (brand_id, name) VALUES ($1, $2)"},
		{"UPDATE vehicles SET ad_price = ? WHERE vehicle_id = ?", "UPDATE vehicles SET ad_price = $1 WHERE vehicle_id = $2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, replacePlaceholders(tt.in))
	}
}

func TestInPlaceholders(t *testing.T) {
	assert.Equal(t, "?", inPlaceholders(1))
	assert.Equal(t, "?, ?, ?", inPlaceholders(3))
}

func TestDriverHelpers(t *testing.T) {
	sqlite := &DB{driver: "sqlite"}
	postgres := &DB{driver: "postgres"}

	assert.Equal(t, "INTEGER PRIMARY KEY AUTOINCREMENT", sqlite.autoIncrement())
	assert.Equal(t, "SERIAL PRIMARY KEY", postgres.autoIncrement())

	q := "SELECT brand_id FROM brand WHERE name = ?"
	assert.Equal(t, q, sqlite.prepareQuery(q))
	assert.Equal(t, "SELECT brand_id FROM brand WHERE name = $1", postgres.prepareQuery(q))
}

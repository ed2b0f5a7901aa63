package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{"no database name", "postgres://u:p@host:5432", "", "postgres://u:p@host:5432"},
		{"plain base", "postgres://u:p@host:5432", "gacha", "postgres://u:p@host:5432/gacha?sslmode=disable"},
		{"trailing slash", "postgres://u:p@host:5432/", "gacha", "postgres://u:p@host:5432/gacha?sslmode=disable"},
		{"existing params", "postgres://u:p@host:5432?connect_timeout=5", "gacha", "postgres://u:p@host:5432/gacha?connect_timeout=5&sslmode=disable"},
		{"existing sslmode", "postgres://u:p@host:5432?sslmode=require", "gacha", "postgres://u:p@host:5432/gacha?sslmode=require"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}

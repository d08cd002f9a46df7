package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
)

func TestCreateConnectionString(t *testing.T) {
	connStr := CreateConnectionString(configuration.SqlServerConfig{
		Host:     "bits-db.example.ca",
		Port:     1433,
		Username: "bits_reader",
		Password: "it's://weird",
		Database: "BITS",
	})
	assert.Contains(t, connStr, "sqlserver://")
	assert.Contains(t, connStr, "bits-db.example.ca:1433")
	assert.Contains(t, connStr, "database=BITS")
	// Credentials must be escaped, not concatenated raw.
	assert.NotContains(t, connStr, "it's://weird")
}

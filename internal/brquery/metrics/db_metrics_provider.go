package metrics

import (
	"database/sql"

	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
)

type DbMetricsProvider interface {
	GetOpenConnections() int
	GetOpenConnectionsUtilization() float64
}

type SqlDbMetricsProvider struct {
	db              *sql.DB
	sqlServerConfig configuration.SqlServerConfig
}

func NewSqlDbMetricsProvider(db *sql.DB, sqlServerConfig configuration.SqlServerConfig) *SqlDbMetricsProvider {
	return &SqlDbMetricsProvider{
		db:              db,
		sqlServerConfig: sqlServerConfig,
	}
}

func (provider *SqlDbMetricsProvider) GetOpenConnections() int {
	return provider.db.Stats().OpenConnections
}

func (provider *SqlDbMetricsProvider) GetOpenConnectionsUtilization() float64 {
	if provider.sqlServerConfig.MaxOpenConns <= 0 {
		return float64(provider.GetOpenConnections())
	}
	return float64(provider.db.Stats().OpenConnections) / float64(provider.sqlServerConfig.MaxOpenConns)
}

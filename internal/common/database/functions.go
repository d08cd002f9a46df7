package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/avast/retry-go"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
)

// CreateConnectionString builds a sqlserver connection URL.
// https://github.com/microsoft/go-mssqldb#the-connection-string-can-be-specified-in-one-of-three-formats
func CreateConnectionString(config configuration.SqlServerConfig) string {
	query := url.Values{}
	query.Set("database", config.Database)
	query.Set("app name", "bitsmcp")
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(config.Username, config.Password),
		Host:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// OpenSqlServerDb opens a connection pool against SQL Server and verifies it
// with a ping, retrying per the configured policy. A pool that cannot be
// established is reported as a connection error.
func OpenSqlServerDb(ctx context.Context, config configuration.SqlServerConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlserver", CreateConnectionString(config))
	if err != nil {
		return nil, &bitserrors.ErrConnection{Message: "opening connection pool", Cause: errors.WithStack(err)}
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	attempts := config.ConnectionAttempts
	if attempts == 0 {
		attempts = 1
	}
	err = retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Attempts(attempts),
		retry.Delay(config.ConnectionRetryDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("Failed to ping database (attempt %d): %v", n+1, err)
		}),
	)
	if err != nil {
		return nil, &bitserrors.ErrConnection{Message: "pinging database", Cause: err}
	}
	return db, nil
}

package repository

import (
	"context"
	"database/sql/driver"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
	"github.com/ssc-spc/bitsmcp/internal/common/util"
)

func removeNewlinesAndTabs(s string) string {
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}

func logQueryDebug(query *Query, description string) {
	log.
		WithField("queryId", util.NewULID()).
		WithField("query", removeNewlinesAndTabs(query.Sql)).
		WithField("argCount", len(query.Args)).
		Debug(description)
}

func logQueryError(query *Query, description string, duration time.Duration) {
	log.
		WithField("query", removeNewlinesAndTabs(query.Sql)).
		WithField("duration", duration).
		Errorf("Error executing %s query", description)
}

// wrapDbError classifies a driver error as a connection failure or a SQL level
// failure. Validation never reaches this point.
func wrapDbError(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return &bitserrors.ErrConnection{Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &bitserrors.ErrQueryExecution{Cause: errors.New("query timed out")}
	}
	return &bitserrors.ErrQueryExecution{Cause: err}
}

// normalizeValue converts driver values into JSON friendly representations.
func normalizeValue(v interface{}) interface{} {
	switch value := v.(type) {
	case []byte:
		return string(value)
	case time.Time:
		return value.Format(dateLayout)
	default:
		return v
	}
}

package repository

import (
	"context"
	"sort"
	"time"

	"github.com/doug-martin/goqu/v9"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
	"github.com/ssc-spc/bitsmcp/internal/brquery/model"
	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
	"github.com/ssc-spc/bitsmcp/internal/common/util"
)

const statusesCacheKey = "statuses"

// statusLoader fetches the status reference rows; split out so the cache can
// be tested without a database.
type statusLoader interface {
	LoadStatuses(ctx context.Context) ([]model.Status, error)
}

type sqlStatusLoader struct {
	goquDb      *goqu.Database
	statusTable string
	timeout     time.Duration
}

func (l *sqlStatusLoader) LoadStatuses(ctx context.Context) ([]model.Status, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	ds := l.goquDb.
		From(goqu.I(l.statusTable)).
		Select(
			goqu.I("STATUS_ID"),
			goqu.I("BITS_STATUS_EN"),
			goqu.I("BITS_STATUS_FR"),
			goqu.I("PHASE_EN"),
			goqu.I("PHASE_FR")).
		Order(goqu.I("STATUS_ID").Asc())

	statuses := make([]model.Status, 0)
	if err := ds.Prepared(true).ScanStructsContext(ctx, &statuses); err != nil {
		return nil, wrapDbError(err)
	}
	return statuses, nil
}

// StatusesCache holds the BITS status reference data. Statuses change rarely,
// so they are fetched on demand and kept until the configured expiry.
type StatusesCache struct {
	loader statusLoader
	cache  *gocache.Cache
}

func NewStatusesCache(goquDb *goqu.Database, config configuration.BRQueryConfiguration) *StatusesCache {
	return &StatusesCache{
		loader: &sqlStatusLoader{
			goquDb:      goquDb,
			statusTable: config.StatusTable,
			timeout:     config.QueryTimeout,
		},
		cache: gocache.New(config.StatusCache.Expiry, config.StatusCache.CleanupInterval),
	}
}

func newStatusesCacheWithLoader(loader statusLoader, config configuration.StatusCacheConfig) *StatusesCache {
	return &StatusesCache{
		loader: loader,
		cache:  gocache.New(config.Expiry, config.CleanupInterval),
	}
}

// All returns every status, loading from the database on a cache miss.
func (c *StatusesCache) All(ctx context.Context) ([]model.Status, error) {
	if cached, ok := c.cache.Get(statusesCacheKey); ok {
		return cached.([]model.Status), nil
	}
	statuses, err := c.loader.LoadStatuses(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(statusesCacheKey, statuses, gocache.DefaultExpiration)
	return statuses, nil
}

// Validate fails with an invalid status error if any of the given status ids
// is unknown. An empty list is always valid.
func (c *StatusesCache) Validate(ctx context.Context, statusIds []string) error {
	if len(statusIds) == 0 {
		return nil
	}
	statuses, err := c.All(ctx)
	if err != nil {
		return err
	}
	return validateAgainst(statuses, statusIds)
}

// ValidateOffline validates against cached data only. With a cold cache it
// accepts the input; full validation happens when the query executes.
func (c *StatusesCache) ValidateOffline(statusIds []string) error {
	if len(statusIds) == 0 {
		return nil
	}
	cached, ok := c.cache.Get(statusesCacheKey)
	if !ok {
		return nil
	}
	return validateAgainst(cached.([]model.Status), statusIds)
}

func validateAgainst(statuses []model.Status, statusIds []string) error {
	validIds := make([]string, len(statuses))
	for i, status := range statuses {
		validIds[i] = status.StatusID
	}
	invalid := util.SubtractStringList(statusIds, validIds)
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(validIds)
	return &bitserrors.ErrInvalidStatus{Invalid: invalid, Valid: validIds}
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlserver"

	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
	"github.com/ssc-spc/bitsmcp/internal/brquery/metrics"
	"github.com/ssc-spc/bitsmcp/internal/brquery/model"
	"github.com/ssc-spc/bitsmcp/internal/common/util"
)

// BRRepository is the read-only view of the BITS business request dataset
// exposed to the MCP tool handlers.
type BRRepository interface {
	SearchBrByFields(ctx context.Context, query *model.BRQuery) (*model.BrResults, error)
	GetBrByNumbers(ctx context.Context, brNumbers []int) (*model.BrResults, error)
	DatasetContext(ctx context.Context) (*model.DatasetContext, error)
	Statuses(ctx context.Context) ([]model.Status, error)
	FieldInfos() []model.FieldInfo
	RenderSearchSql(query *model.BRQuery) (string, error)
}

type SqlBRRepository struct {
	db       *sql.DB
	goquDb   *goqu.Database
	brFields *BRFields
	statuses *StatusesCache
	config   configuration.BRQueryConfiguration
}

func NewSqlBRRepository(db *sql.DB, statuses *StatusesCache, config configuration.BRQueryConfiguration) *SqlBRRepository {
	return &SqlBRRepository{
		db:       db,
		goquDb:   goqu.New("sqlserver", db),
		brFields: NewBRFields(),
		statuses: statuses,
		config:   config,
	}
}

// SearchBrByFields validates the request, builds a parameterized query and
// executes it. The requested limit is clamped to the configured maximum, not
// rejected.
func (r *SqlBRRepository) SearchBrByFields(ctx context.Context, query *model.BRQuery) (*model.BrResults, error) {
	if err := r.statuses.Validate(ctx, query.Statuses); err != nil {
		return nil, err
	}

	q, err := NewQueryBuilder(r.brFields, r.config.BRTable).SearchBrByFields(query, r.effectiveLimit(query.Limit))
	if err != nil {
		return nil, err
	}

	return r.queryRows(ctx, q, "SearchBrByFields")
}

// GetBrByNumbers returns the business requests with the given BR numbers.
func (r *SqlBRRepository) GetBrByNumbers(ctx context.Context, brNumbers []int) (*model.BrResults, error) {
	q, err := NewQueryBuilder(r.brFields, r.config.BRTable).GetBrByNumbers(brNumbers)
	if err != nil {
		return nil, err
	}

	return r.queryRows(ctx, q, "GetBrByNumbers")
}

// DatasetContext summarises the dataset: searchable fields, valid statuses,
// row count and extraction date.
func (r *SqlBRRepository) DatasetContext(ctx context.Context) (*model.DatasetContext, error) {
	statuses, err := r.statuses.All(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.QueryTimeout)
	defer cancel()

	start := time.Now()
	ds := r.goquDb.
		From(goqu.I(r.config.BRTable)).
		Select(
			goqu.COUNT(goqu.Star()).As("total_rows"),
			goqu.MAX(goqu.I(extractionDateCol)).As("extraction_date"))

	var row struct {
		TotalRows      int          `db:"total_rows"`
		ExtractionDate sql.NullTime `db:"extraction_date"`
	}
	if _, err := ds.Prepared(true).ScanStructContext(ctx, &row); err != nil {
		return nil, wrapDbError(err)
	}

	metadata := model.Metadata{
		ExecutionTime: time.Since(start).Seconds(),
		TotalRows:     row.TotalRows,
	}
	if row.ExtractionDate.Valid {
		metadata.ExtractionDate = row.ExtractionDate.Time.Format(dateLayout)
	}

	return &model.DatasetContext{
		Fields:   r.brFields.FieldInfos(),
		Statuses: statuses,
		Metadata: metadata,
	}, nil
}

// Statuses returns the valid statuses and their phases, served from the
// status cache.
func (r *SqlBRRepository) Statuses(ctx context.Context) ([]model.Status, error) {
	return r.statuses.All(ctx)
}

func (r *SqlBRRepository) FieldInfos() []model.FieldInfo {
	return r.brFields.FieldInfos()
}

// RenderSearchSql returns the parameterized statement text the builder would
// produce for the given query. Values are never interpolated; the rendered
// text only carries placeholders.
func (r *SqlBRRepository) RenderSearchSql(query *model.BRQuery) (string, error) {
	if err := r.statuses.ValidateOffline(query.Statuses); err != nil {
		return "", err
	}
	q, err := NewQueryBuilder(r.brFields, r.config.BRTable).SearchBrByFields(query, r.effectiveLimit(query.Limit))
	if err != nil {
		return "", err
	}
	return q.Sql, nil
}

func (r *SqlBRRepository) effectiveLimit(requested int) int {
	if requested == 0 {
		requested = r.config.DefaultRowLimit
	}
	return util.Clamp(requested, 1, r.config.MaxRowLimit)
}

func (r *SqlBRRepository) queryRows(ctx context.Context, q *Query, description string) (*model.BrResults, error) {
	logQueryDebug(q, description)

	ctx, cancel := context.WithTimeout(ctx, r.config.QueryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q.Sql, q.Args...)
	if err != nil {
		logQueryError(q, description, time.Since(start))
		return nil, wrapDbError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, wrapDbError(err)
	}

	results := &model.BrResults{Br: []model.Row{}}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, wrapDbError(err)
		}

		row := model.Row{}
		for i, column := range columns {
			value := normalizeValue(values[i])
			switch column {
			case totalCountCol:
				// Window column; reported once through the metadata.
				if count, ok := value.(int64); ok {
					results.Metadata.TotalRows = int(count)
				}
			case extractionDateCol:
				if s, ok := value.(string); ok && results.Metadata.ExtractionDate == "" {
					results.Metadata.ExtractionDate = s
				}
				row[column] = value
			default:
				row[column] = value
			}
		}
		results.Br = append(results.Br, row)
	}
	if err := rows.Err(); err != nil {
		logQueryError(q, description, time.Since(start))
		return nil, wrapDbError(err)
	}

	metrics.QueryDuration.Observe(time.Since(start).Seconds())

	results.Metadata.ExecutionTime = time.Since(start).Seconds()
	results.Metadata.Results = len(results.Br)
	if results.Metadata.TotalRows == 0 {
		results.Metadata.TotalRows = len(results.Br)
	}
	return results, nil
}

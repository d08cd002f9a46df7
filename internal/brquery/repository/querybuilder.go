package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/ssc-spc/bitsmcp/internal/brquery/model"
	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
	"github.com/ssc-spc/bitsmcp/internal/common/util"
)

const dateLayout = "2006-01-02"

type Query struct {
	Sql  string
	Args []interface{}
}

// QueryBuilder builds a single parameterized SQL Server query from a BRQuery.
// Values are always recorded as @pN arguments; identifiers are only ever drawn
// from the field allow-list. A builder holds per-query state, so construct a
// new one for each query.
type QueryBuilder struct {
	brFields *BRFields
	brTable  string

	args []interface{}
}

func NewQueryBuilder(brFields *BRFields, brTable string) *QueryBuilder {
	return &QueryBuilder{
		brFields: brFields,
		brTable:  brTable,
	}
}

// SearchBrByFields builds the query for a filtered business request search.
// The limit must already be clamped by the caller. Statuses must already be
// validated against the status cache.
func (qb *QueryBuilder) SearchBrByFields(query *model.BRQuery, limit int) (*Query, error) {
	if err := qb.validateFilters(query.QueryFilters); err != nil {
		return nil, err
	}

	// TOP's argument is recorded first so it renders as @p1.
	limitPlaceholder := qb.recordValue(limit)

	where, err := qb.makeWhere(query.QueryFilters, query.Statuses)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(
		"SELECT TOP (%s) %s, COUNT(*) OVER () AS %s\nFROM %s\n%s",
		limitPlaceholder,
		strings.Join(qb.brFields.Columns(), ", "),
		totalCountCol,
		qb.brTable,
		where,
	)

	return &Query{Sql: strings.TrimSpace(sql), Args: qb.args}, nil
}

// GetBrByNumbers builds the query fetching business requests by BR number.
func (qb *QueryBuilder) GetBrByNumbers(brNumbers []int) (*Query, error) {
	if len(brNumbers) == 0 {
		return nil, &bitserrors.ErrInvalidFilter{Field: "BR_NMBR", Message: "at least one BR number is required"}
	}
	placeholders := make([]string, len(brNumbers))
	for i, number := range brNumbers {
		placeholders[i] = qb.recordValue(number)
	}
	sql := fmt.Sprintf(
		"SELECT %s\nFROM %s\nWHERE BR_NMBR IN (%s)",
		strings.Join(qb.brFields.Columns(), ", "),
		qb.brTable,
		strings.Join(placeholders, ", "),
	)
	return &Query{Sql: sql, Args: qb.args}, nil
}

func (qb *QueryBuilder) makeWhere(filters []*model.QueryFilter, statuses []string) (string, error) {
	var clauses []string
	for _, filter := range filters {
		clause, err := qb.makeWhereClause(filter)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	if len(statuses) > 0 {
		clauses = append(clauses, qb.makeStatusClause(statuses))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return fmt.Sprintf("WHERE %s", strings.Join(clauses, " AND ")), nil
}

func (qb *QueryBuilder) makeWhereClause(filter *model.QueryFilter) (string, error) {
	column, err := qb.brFields.ColumnFromField(filter.Name)
	if err != nil {
		return "", err
	}

	value, err := qb.parseValue(filter)
	if err != nil {
		return "", err
	}

	placeholder, err := qb.valueForOperator(filter, value)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s %s", column, filter.Operator, placeholder), nil
}

func isOperator(operator string) bool {
	return util.ContainsString(model.AllOperators(), operator)
}

func (qb *QueryBuilder) makeStatusClause(statuses []string) string {
	placeholders := make([]string, len(statuses))
	for i, status := range statuses {
		placeholders[i] = qb.recordValue(status)
	}
	return fmt.Sprintf("%s IN (%s)", statusIdCol, strings.Join(placeholders, ", "))
}

// parseValue coerces the filter value into something the driver can bind.
// Date fields must be YYYY-MM-DD strings and are bound as time.Time.
func (qb *QueryBuilder) parseValue(filter *model.QueryFilter) (interface{}, error) {
	if !qb.brFields.IsDateField(filter.Name) {
		return filter.Value, nil
	}
	s, ok := filter.Value.(string)
	if !ok {
		return nil, &bitserrors.ErrInvalidFilter{
			Field:    filter.Name,
			Operator: filter.Operator,
			Message:  fmt.Sprintf("date fields take YYYY-MM-DD strings, got %T", filter.Value),
		}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, &bitserrors.ErrInvalidFilter{
			Field:    filter.Name,
			Operator: filter.Operator,
			Message:  fmt.Sprintf("date %q is not in YYYY-MM-DD format", s),
		}
	}
	return t, nil
}

// valueForOperator records the value as one or more query arguments and
// returns the placeholder text to render. Malformed values are validation
// failures, raised before any database interaction.
func (qb *QueryBuilder) valueForOperator(filter *model.QueryFilter, value interface{}) (string, error) {
	switch filter.Operator {
	case model.OperatorLike:
		s := fmt.Sprintf("%v", value)
		if !strings.ContainsAny(s, "%_") {
			s = fmt.Sprintf("%%%s%%", s)
		}
		return qb.recordValue(s), nil
	case model.OperatorIn:
		values, ok := asList(value)
		if !ok {
			return "", &bitserrors.ErrInvalidFilter{
				Field:    filter.Name,
				Operator: filter.Operator,
				Message:  fmt.Sprintf("IN takes a list of values, got %T", value),
			}
		}
		if len(values) == 0 {
			return "", &bitserrors.ErrInvalidFilter{
				Field:    filter.Name,
				Operator: filter.Operator,
				Message:  "IN requires at least one value",
			}
		}
		placeholders := make([]string, len(values))
		for i, val := range values {
			placeholders[i] = qb.recordValue(val)
		}
		return fmt.Sprintf("(%s)", strings.Join(placeholders, ", ")), nil
	default:
		return qb.recordValue(value), nil
	}
}

func asList(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		values := make([]interface{}, len(v))
		for i, val := range v {
			values[i] = val
		}
		return values, true
	default:
		return nil, false
	}
}

// recordValue saves a value to be bound by the driver and returns the
// placeholder to put in its place in the SQL text.
func (qb *QueryBuilder) recordValue(value interface{}) string {
	qb.args = append(qb.args, value)
	return fmt.Sprintf("@p%d", len(qb.args))
}

func (qb *QueryBuilder) validateFilters(filters []*model.QueryFilter) error {
	for _, filter := range filters {
		if err := qb.validateFilter(filter); err != nil {
			return err
		}
	}
	return nil
}

func (qb *QueryBuilder) validateFilter(filter *model.QueryFilter) error {
	if _, err := qb.brFields.ColumnFromField(filter.Name); err != nil {
		return err
	}
	if !isOperator(filter.Operator) {
		return &bitserrors.ErrInvalidFilter{
			Field:    filter.Name,
			Operator: filter.Operator,
			Message:  fmt.Sprintf("operator must be one of %s", strings.Join(model.AllOperators(), ", ")),
		}
	}
	if !qb.brFields.SupportsOperator(filter.Name, filter.Operator) {
		return &bitserrors.ErrInvalidFilter{
			Field:    filter.Name,
			Operator: filter.Operator,
			Message:  "operator is not supported for this field",
		}
	}
	return nil
}

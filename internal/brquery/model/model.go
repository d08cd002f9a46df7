package model

import (
	"strings"
)

// Operators supported in query filters. Anything else is rejected during
// validation, before the query is built.
const (
	OperatorEqual                = "="
	OperatorNotEqual             = "!="
	OperatorLessThan             = "<"
	OperatorGreaterThan          = ">"
	OperatorLessThanOrEqualTo    = "<="
	OperatorGreaterThanOrEqualTo = ">="
	OperatorLike                 = "LIKE"
	OperatorIn                   = "IN"
)

func AllOperators() []string {
	return []string{
		OperatorEqual,
		OperatorNotEqual,
		OperatorLessThan,
		OperatorGreaterThan,
		OperatorLessThanOrEqualTo,
		OperatorGreaterThanOrEqualTo,
		OperatorLike,
		OperatorIn,
	}
}

// QueryFilter is a single predicate contributed to the query's WHERE clause.
type QueryFilter struct {
	Name     string      `json:"name"`
	Value    interface{} `json:"value"`
	Operator string      `json:"operator"`
}

// IsDate reports whether the filter targets a date field. BITS date columns
// all carry the _DATE suffix.
func (f *QueryFilter) IsDate() bool {
	return strings.HasSuffix(f.Name, "_DATE")
}

// BRQuery is the query made on behalf of the user. Filters are conjoined with
// AND; a non-empty status list adds one STATUS_ID IN (...) condition.
type BRQuery struct {
	QueryFilters []*QueryFilter `json:"query_filters"`
	Limit        int            `json:"limit,omitempty"`
	Statuses     []string       `json:"statuses,omitempty"`
}

// Row is a single business request row, column name to value, in database
// column order as far as JSON allows.
type Row map[string]interface{}

// Metadata describes a result set.
type Metadata struct {
	ExecutionTime  float64 `json:"execution_time"`
	Results        int     `json:"results"`
	TotalRows      int     `json:"total_rows"`
	ExtractionDate string  `json:"extraction_date,omitempty"`
}

// BrResults is what the search tools return: matching rows plus metadata.
type BrResults struct {
	Br       []Row    `json:"br"`
	Metadata Metadata `json:"metadata"`
}

// Status is one row of the BITS status reference table.
type Status struct {
	StatusID     string `json:"STATUS_ID" db:"STATUS_ID"`
	StatusNameEN string `json:"BITS_STATUS_EN" db:"BITS_STATUS_EN"`
	StatusNameFR string `json:"BITS_STATUS_FR" db:"BITS_STATUS_FR"`
	PhaseEN      string `json:"PHASE_EN" db:"PHASE_EN"`
	PhaseFR      string `json:"PHASE_FR" db:"PHASE_FR"`
}

// FieldInfo describes one searchable field, as returned by the
// get_valid_search_fields tool.
type FieldInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsUserField bool   `json:"is_user_field"`
	IsDate      bool   `json:"is_date"`
}

// DatasetContext summarises the dataset for the get_business_requests_context
// tool.
type DatasetContext struct {
	Fields   []FieldInfo `json:"fields"`
	Statuses []Status    `json:"statuses"`
	Metadata Metadata    `json:"metadata"`
}

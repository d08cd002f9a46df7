package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFilterIsDate(t *testing.T) {
	assert.True(t, (&QueryFilter{Name: "SUBMIT_DATE"}).IsDate())
	assert.True(t, (&QueryFilter{Name: "EXTRACTION_DATE"}).IsDate())
	assert.False(t, (&QueryFilter{Name: "BR_OWNER"}).IsDate())
	assert.False(t, (&QueryFilter{Name: "DATE_FIELD_NOT"}).IsDate())
}

func TestBRQueryUnmarshal(t *testing.T) {
	payload := `{
		"query_filters": [
			{"name": "BR_OWNER", "operator": "=", "value": "John Smith"}
		],
		"limit": 100,
		"statuses": ["4", "7"]
	}`

	var query BRQuery
	require.NoError(t, json.Unmarshal([]byte(payload), &query))

	require.Len(t, query.QueryFilters, 1)
	assert.Equal(t, "BR_OWNER", query.QueryFilters[0].Name)
	assert.Equal(t, "=", query.QueryFilters[0].Operator)
	assert.Equal(t, "John Smith", query.QueryFilters[0].Value)
	assert.Equal(t, 100, query.Limit)
	assert.Equal(t, []string{"4", "7"}, query.Statuses)
}

func TestAllOperators(t *testing.T) {
	operators := AllOperators()
	assert.Contains(t, operators, OperatorLike)
	assert.Contains(t, operators, OperatorIn)
	assert.Len(t, operators, 8)
}

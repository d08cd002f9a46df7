package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
)

func TestColumnFromField(t *testing.T) {
	fields := NewBRFields()

	column, err := fields.ColumnFromField("BR_OWNER")
	require.NoError(t, err)
	assert.Equal(t, "BR_OWNER", column)

	_, err = fields.ColumnFromField("STATUS_ID")
	var invalid *bitserrors.ErrInvalidFilter
	assert.ErrorAs(t, err, &invalid, "status is filtered through the statuses parameter, not query_filters")

	_, err = fields.ColumnFromField("NOT_A_FIELD")
	assert.ErrorAs(t, err, &invalid)
}

func TestSupportsOperator(t *testing.T) {
	fields := NewBRFields()

	assert.True(t, fields.SupportsOperator("BR_OWNER", "="))
	assert.True(t, fields.SupportsOperator("BR_OWNER", "LIKE"))
	assert.False(t, fields.SupportsOperator("BR_OWNER", ">"))

	assert.True(t, fields.SupportsOperator("BR_NMBR", ">="))
	assert.False(t, fields.SupportsOperator("BR_NMBR", "LIKE"))

	assert.True(t, fields.SupportsOperator("SUBMIT_DATE", "<"))
	assert.False(t, fields.SupportsOperator("SUBMIT_DATE", "IN"))

	assert.False(t, fields.SupportsOperator("NOT_A_FIELD", "="))
}

func TestFieldTypes(t *testing.T) {
	fields := NewBRFields()

	assert.True(t, fields.IsDateField("SUBMIT_DATE"))
	assert.True(t, fields.IsDateField("EXTRACTION_DATE"))
	assert.False(t, fields.IsDateField("BR_OWNER"))

	assert.True(t, fields.IsNumericField("BR_NMBR"))
	assert.False(t, fields.IsNumericField("BR_OWNER"))
}

func TestColumns(t *testing.T) {
	columns := NewBRFields().Columns()

	assert.Equal(t, "BR_NMBR", columns[0], "BR number leads the select list")
	assert.Contains(t, columns, "BITS_STATUS_EN")
	assert.Contains(t, columns, "BITS_STATUS_FR")
	assert.NotContains(t, columns, totalCountCol, "TotalCount is computed, not selected")
}

func TestFieldInfos(t *testing.T) {
	infos := NewBRFields().FieldInfos()
	byName := make(map[string]bool, len(infos))
	for _, info := range infos {
		byName[info.Name] = true
	}

	require.True(t, byName["BR_OWNER"])
	require.True(t, byName["SUBMIT_DATE"])

	for _, info := range infos {
		switch info.Name {
		case "BR_OWNER":
			assert.True(t, info.IsUserField)
			assert.False(t, info.IsDate)
		case "SUBMIT_DATE":
			assert.False(t, info.IsUserField)
			assert.True(t, info.IsDate)
		}
		assert.NotEmpty(t, info.Description, "field %s has no description", info.Name)
	}
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
	"github.com/ssc-spc/bitsmcp/internal/brquery/model"
	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
)

func newTestRepository(loader statusLoader) *SqlBRRepository {
	return &SqlBRRepository{
		brFields: NewBRFields(),
		statuses: newTestCache(loader),
		config: configuration.BRQueryConfiguration{
			DefaultRowLimit: 9000,
			MaxRowLimit:     10000,
			BRTable:         testBrTable,
		},
	}
}

func TestEffectiveLimit(t *testing.T) {
	r := newTestRepository(&fakeStatusLoader{})

	assert.Equal(t, 9000, r.effectiveLimit(0), "zero falls back to the default")
	assert.Equal(t, 500, r.effectiveLimit(500))
	assert.Equal(t, 10000, r.effectiveLimit(50000), "requests above the maximum are clamped, not rejected")
	assert.Equal(t, 1, r.effectiveLimit(-5))
}

// The test repository has no database handle, so any query execution on these
// paths would panic: validation failures must be raised before the driver is
// ever invoked.
func TestSearchBrByFields_RejectsBeforeDatabase(t *testing.T) {
	r := newTestRepository(&fakeStatusLoader{statuses: testStatuses})

	t.Run("invalid filter", func(t *testing.T) {
		_, err := r.SearchBrByFields(context.Background(), &model.BRQuery{
			QueryFilters: []*model.QueryFilter{
				{Name: "NOT_A_FIELD", Operator: "=", Value: "x"},
			},
		})
		var invalid *bitserrors.ErrInvalidFilter
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("unsupported operator", func(t *testing.T) {
		_, err := r.SearchBrByFields(context.Background(), &model.BRQuery{
			QueryFilters: []*model.QueryFilter{
				{Name: "BR_OWNER", Operator: ">", Value: "x"},
			},
		})
		var invalid *bitserrors.ErrInvalidFilter
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := r.SearchBrByFields(context.Background(), &model.BRQuery{
			Statuses: []string{"99"},
		})
		var invalid *bitserrors.ErrInvalidStatus
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestRenderSearchSql(t *testing.T) {
	r := newTestRepository(&fakeStatusLoader{statuses: testStatuses})

	sqlText, err := r.RenderSearchSql(&model.BRQuery{
		QueryFilters: []*model.QueryFilter{
			{Name: "CPLX_EN", Operator: "=", Value: "High"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, sqlText, "SELECT TOP (@p1)")
	assert.Contains(t, sqlText, "CPLX_EN = @p2")
	assert.NotContains(t, sqlText, "High", "rendered SQL carries placeholders only")
}

func TestRenderSearchSql_InvalidFilter(t *testing.T) {
	r := newTestRepository(&fakeStatusLoader{})

	_, err := r.RenderSearchSql(&model.BRQuery{
		QueryFilters: []*model.QueryFilter{
			{Name: "NOT_A_FIELD", Operator: "=", Value: "x"},
		},
	})
	var invalid *bitserrors.ErrInvalidFilter
	assert.ErrorAs(t, err, &invalid)
}

func TestRenderSearchSql_StatusValidation(t *testing.T) {
	r := newTestRepository(&fakeStatusLoader{statuses: testStatuses})

	// Cold cache: statuses are accepted offline, validated at execution time.
	_, err := r.RenderSearchSql(&model.BRQuery{Statuses: []string{"99"}})
	require.NoError(t, err)

	_, err = r.statuses.All(context.Background())
	require.NoError(t, err)

	_, err = r.RenderSearchSql(&model.BRQuery{Statuses: []string{"99"}})
	var invalid *bitserrors.ErrInvalidStatus
	assert.ErrorAs(t, err, &invalid)
}

package server

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssc-spc/bitsmcp/internal/brquery/model"
	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
)

type mockRepository struct {
	searchQuery    *model.BRQuery
	searchResults  *model.BrResults
	searchErr      error
	getNumbers     []int
	getResults     *model.BrResults
	getErr         error
	statuses       []model.Status
	statusesErr    error
	contextResult  *model.DatasetContext
	contextErr     error
	fieldInfos     []model.FieldInfo
	renderedQuery  *model.BRQuery
	renderedSql    string
	renderedSqlErr error
}

func (m *mockRepository) SearchBrByFields(ctx context.Context, query *model.BRQuery) (*model.BrResults, error) {
	m.searchQuery = query
	return m.searchResults, m.searchErr
}

func (m *mockRepository) GetBrByNumbers(ctx context.Context, brNumbers []int) (*model.BrResults, error) {
	m.getNumbers = brNumbers
	return m.getResults, m.getErr
}

func (m *mockRepository) DatasetContext(ctx context.Context) (*model.DatasetContext, error) {
	return m.contextResult, m.contextErr
}

func (m *mockRepository) Statuses(ctx context.Context) ([]model.Status, error) {
	return m.statuses, m.statusesErr
}

func (m *mockRepository) FieldInfos() []model.FieldInfo {
	return m.fieldInfos
}

func (m *mockRepository) RenderSearchSql(query *model.BRQuery) (string, error) {
	m.renderedQuery = query
	return m.renderedSql, m.renderedSqlErr
}

func toolRequest(name string, arguments map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = arguments
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func errorKind(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.True(t, result.IsError)
	var payload errorPayload
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	return payload.Kind
}

func TestHandleSearchBrByFields(t *testing.T) {
	repo := &mockRepository{
		searchResults: &model.BrResults{
			Br:       []model.Row{{"BR_NMBR": int64(12345)}},
			Metadata: model.Metadata{Results: 1, TotalRows: 1},
		},
	}
	s := NewBRQueryServer(repo)

	result, err := s.handleSearchBrByFields(context.Background(), toolRequest("search_br_by_fields", map[string]interface{}{
		"query_filters": []interface{}{
			map[string]interface{}{"name": "BR_OWNER", "operator": "=", "value": "John Smith"},
		},
		"limit": 100,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.NotNil(t, repo.searchQuery)
	require.Len(t, repo.searchQuery.QueryFilters, 1)
	assert.Equal(t, "BR_OWNER", repo.searchQuery.QueryFilters[0].Name)
	assert.Equal(t, "John Smith", repo.searchQuery.QueryFilters[0].Value)
	assert.Equal(t, 100, repo.searchQuery.Limit)

	var results model.BrResults
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &results))
	assert.Equal(t, 1, results.Metadata.Results)
}

func TestHandleSearchBrByFields_ErrorKinds(t *testing.T) {
	tests := map[string]struct {
		err  error
		kind string
	}{
		"invalid filter": {
			err:  &bitserrors.ErrInvalidFilter{Field: "NOPE", Message: "field is not searchable"},
			kind: bitserrors.KindInvalidFilter,
		},
		"invalid status": {
			err:  &bitserrors.ErrInvalidStatus{Invalid: []string{"99"}, Valid: []string{"4"}},
			kind: bitserrors.KindInvalidFilter,
		},
		"connection failure": {
			err:  &bitserrors.ErrConnection{Message: "could not reach database"},
			kind: bitserrors.KindConnection,
		},
		"execution failure": {
			err:  &bitserrors.ErrQueryExecution{},
			kind: bitserrors.KindQueryExecution,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewBRQueryServer(&mockRepository{searchErr: tc.err})

			result, err := s.handleSearchBrByFields(context.Background(), toolRequest("search_br_by_fields", map[string]interface{}{
				"query_filters": []interface{}{},
			}))
			require.NoError(t, err, "tool errors are payloads, not handler errors")
			assert.Equal(t, tc.kind, errorKind(t, result))
		})
	}
}

func TestHandleGetBrByNumber(t *testing.T) {
	repo := &mockRepository{getResults: &model.BrResults{Br: []model.Row{}}}
	s := NewBRQueryServer(repo)

	result, err := s.handleGetBrByNumber(context.Background(), toolRequest("get_br_by_number", map[string]interface{}{
		"br_numbers": []interface{}{12345, 67890},
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, []int{12345, 67890}, repo.getNumbers)
}

func TestHandleGetValidSearchFields(t *testing.T) {
	repo := &mockRepository{
		fieldInfos: []model.FieldInfo{
			{Name: "BR_OWNER", Description: "The OPI responsible for the BR", IsUserField: true},
		},
	}
	s := NewBRQueryServer(repo)

	result, err := s.handleGetValidSearchFields(context.Background(), toolRequest("get_valid_search_fields", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var infos []model.FieldInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &infos))
	require.Len(t, infos, 1)
	assert.True(t, infos[0].IsUserField)
}

func TestHandleGetStatusesAndPhases(t *testing.T) {
	repo := &mockRepository{
		statuses: []model.Status{
			{StatusID: "4", StatusNameEN: "Under Review", PhaseEN: "Intake"},
		},
	}
	s := NewBRQueryServer(repo)

	result, err := s.handleGetStatusesAndPhases(context.Background(), toolRequest("get_br_statuses_and_phases", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var statuses []model.Status
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, "4", statuses[0].StatusID)
}

func TestHandleGetContext(t *testing.T) {
	repo := &mockRepository{
		contextResult: &model.DatasetContext{
			Metadata: model.Metadata{TotalRows: 42, ExtractionDate: "2026-08-25"},
		},
	}
	s := NewBRQueryServer(repo)

	result, err := s.handleGetContext(context.Background(), toolRequest("get_business_requests_context", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var datasetContext model.DatasetContext
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &datasetContext))
	assert.Equal(t, 42, datasetContext.Metadata.TotalRows)
}

func TestHandleDatabaseQueryResource(t *testing.T) {
	repo := &mockRepository{renderedSql: "SELECT TOP (@p1) BR_NMBR FROM dbo.BITS_BR WHERE BR_OWNER = @p2"}
	s := NewBRQueryServer(repo)

	queryJson := `{"query_filters": [{"name": "BR_OWNER", "operator": "=", "value": "John Smith"}]}`
	request := mcp.ReadResourceRequest{}
	request.Params.URI = "database://" + url.QueryEscape(queryJson)

	contents, err := s.handleDatabaseQueryResource(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	textContents, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, repo.renderedSql, textContents.Text)

	require.NotNil(t, repo.renderedQuery)
	require.Len(t, repo.renderedQuery.QueryFilters, 1)
	assert.Equal(t, "BR_OWNER", repo.renderedQuery.QueryFilters[0].Name)
}

func TestHandleDatabaseQueryResource_BadPayload(t *testing.T) {
	s := NewBRQueryServer(&mockRepository{})

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "database://" + url.QueryEscape("not json")

	_, err := s.handleDatabaseQueryResource(context.Background(), request)
	assert.Error(t, err)
}

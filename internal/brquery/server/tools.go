package server

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ssc-spc/bitsmcp/internal/brquery/metrics"
	"github.com/ssc-spc/bitsmcp/internal/brquery/model"
	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
	"github.com/ssc-spc/bitsmcp/internal/common/logging"
)

// errorPayload is the structured error returned to MCP callers.
type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *BRQueryServer) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("search_br_by_fields",
			mcp.WithDescription(
				"Searches business requests by field filters. Filters are combined with AND; "+
					"a non-empty statuses list restricts results to those STATUS_IDs."),
			mcp.WithArray("query_filters",
				mcp.Required(),
				mcp.Description("List of filters to apply to the query."),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":     map[string]any{"type": "string", "description": "Name of the database field"},
						"value":    map[string]any{"description": "Value of the field"},
						"operator": map[string]any{"type": "string", "enum": model.AllOperators()},
					},
					"required": []string{"name", "value", "operator"},
				}),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records to return. Optional. Defaults to 9000."),
			),
			mcp.WithArray("statuses",
				mcp.Description("List of STATUS_ID to filter by."),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleSearchBrByFields,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_br_by_number",
			mcp.WithDescription("Returns BR requests by their numbers."),
			mcp.WithArray("br_numbers",
				mcp.Required(),
				mcp.Description("BR numbers to look up."),
				mcp.Items(map[string]any{"type": "integer"}),
			),
		),
		s.handleGetBrByNumber,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_valid_search_fields",
			mcp.WithDescription(
				"Returns the fields that search_br_by_fields accepts, with their "+
					"descriptions. Fields with is_user_field true filter by a user's full name."),
		),
		s.handleGetValidSearchFields,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_br_statuses_and_phases",
			mcp.WithDescription("Returns the valid STATUS_ID values and their phases."),
		),
		s.handleGetStatusesAndPhases,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_business_requests_context",
			mcp.WithDescription(
				"Returns context about the business request dataset: searchable fields, "+
					"valid statuses, total row count and extraction date."),
		),
		s.handleGetContext,
	)
}

func (s *BRQueryServer) handleSearchBrByFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var query model.BRQuery
	if err := request.BindArguments(&query); err != nil {
		metrics.RecordToolCall("search_br_by_fields", err)
		return toolError(&bitserrors.ErrInvalidFilter{Message: err.Error()}), nil
	}

	results, err := s.repo.SearchBrByFields(ctx, &query)
	metrics.RecordToolCall("search_br_by_fields", err)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(results)
}

func (s *BRQueryServer) handleGetBrByNumber(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		BrNumbers []int `json:"br_numbers"`
	}
	if err := request.BindArguments(&args); err != nil {
		metrics.RecordToolCall("get_br_by_number", err)
		return toolError(&bitserrors.ErrInvalidFilter{Field: "BR_NMBR", Message: err.Error()}), nil
	}

	results, err := s.repo.GetBrByNumbers(ctx, args.BrNumbers)
	metrics.RecordToolCall("get_br_by_number", err)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(results)
}

func (s *BRQueryServer) handleGetValidSearchFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metrics.RecordToolCall("get_valid_search_fields", nil)
	return toolResult(s.repo.FieldInfos())
}

func (s *BRQueryServer) handleGetStatusesAndPhases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statuses, err := s.repo.Statuses(ctx)
	metrics.RecordToolCall("get_br_statuses_and_phases", err)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(statuses)
}

func (s *BRQueryServer) handleGetContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasetContext, err := s.repo.DatasetContext(ctx)
	metrics.RecordToolCall("get_business_requests_context", err)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(datasetContext)
}

// handleDatabaseQueryResource renders the SQL a query would produce. The
// query is carried URL-encoded in the resource URI: database://{query}.
func (s *BRQueryServer) handleDatabaseQueryResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	raw := strings.TrimPrefix(request.Params.URI, "database://")
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decoding query resource uri")
	}

	var query model.BRQuery
	if err := json.Unmarshal([]byte(decoded), &query); err != nil {
		return nil, errors.Wrap(err, "parsing query resource")
	}

	sqlText, err := s.repo.RenderSearchSql(&query)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     sqlText,
		},
	}, nil
}

func toolResult(v interface{}) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func toolError(err error) *mcp.CallToolResult {
	kind := bitserrors.KindOf(err)
	if !bitserrors.IsValidationError(err) {
		logging.WithStacktrace(log.NewEntry(log.StandardLogger()), err).Error("tool call failed")
	}
	payload, marshalErr := json.Marshal(errorPayload{Kind: kind, Message: err.Error()})
	if marshalErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(payload))
}

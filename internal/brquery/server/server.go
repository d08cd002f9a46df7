// Package server exposes the business request dataset over the Model Context
// Protocol: five tools, a bilingual prompt and a query debugging resource.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ssc-spc/bitsmcp/internal/brquery/prompts"
	"github.com/ssc-spc/bitsmcp/internal/brquery/repository"
)

const (
	serverName    = "Business Requests"
	serverVersion = "1.0.0"
)

type BRQueryServer struct {
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	repo       repository.BRRepository
}

func NewBRQueryServer(repo repository.BRRepository) *BRQueryServer {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	s := &BRQueryServer{
		mcpServer: mcpServer,
		repo:      repo,
	}
	s.registerTools()
	s.registerPrompts()
	s.registerResources()
	return s
}

// Serve starts the streamable HTTP transport and blocks until Shutdown is
// called or the listener fails.
func (s *BRQueryServer) Serve(port uint16) error {
	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithEndpointPath("/mcp"),
	)
	return s.httpServer.Start(fmt.Sprintf(":%d", port))
}

func (s *BRQueryServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *BRQueryServer) registerPrompts() {
	s.mcpServer.AddPrompt(
		mcp.NewPrompt("business_request_prompt",
			mcp.WithPromptDescription(
				"Business Request Prompt. Anything that relates to BR (Business Request) "+
					"should be handled by this prompt. Ask for 'en' or 'fr'."),
			mcp.WithArgument("language",
				mcp.ArgumentDescription("Prompt language, 'en' or 'fr'"),
			),
		),
		func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			language := request.Params.Arguments["language"]
			return mcp.NewGetPromptResult(
				"Prompt for business request",
				[]mcp.PromptMessage{
					mcp.NewPromptMessage(
						mcp.RoleAssistant,
						mcp.NewTextContent(prompts.SystemPrompt(language, time.Now())),
					),
				},
			), nil
		},
	)
}

func (s *BRQueryServer) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"database://{query}",
			"BR database query",
			mcp.WithTemplateDescription(
				"Returns the parameterized SQL statement that a business request "+
					"query produces. Values are placeholders, never inlined."),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		s.handleDatabaseQueryResource,
	)
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const clientVersion = "1.0.0"

var serverUrl string

var rootCmd = &cobra.Command{
	Use:   "brclient",
	Short: "Command line client for the Business Requests MCP server",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&serverUrl,
		"server",
		"http://localhost:8080/mcp",
		"URL of the Business Requests MCP server",
	)
	rootCmd.AddCommand(
		searchCmd(),
		getCmd(),
		fieldsCmd(),
		statusesCmd(),
		contextCmd(),
		sqlCmd(),
		promptCmd(),
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// connect establishes an initialized MCP session over streamable HTTP.
// The returned client must be closed by the caller.
func connect(ctx context.Context) (*client.Client, error) {
	c, err := client.NewStreamableHttpClient(serverUrl)
	if err != nil {
		return nil, errors.Wrap(err, "creating MCP client")
	}
	if err := c.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "starting MCP client")
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "brclient",
		Version: clientVersion,
	}
	if _, err := c.Initialize(ctx, initRequest); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "initializing MCP session")
	}
	return c, nil
}

// callTool invokes a tool and prints the returned text content, pretty
// printing JSON payloads.
func callTool(name string, arguments map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c, err := connect(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = arguments

	result, err := c.CallTool(ctx, request)
	if err != nil {
		return errors.Wrapf(err, "calling tool %s", name)
	}

	for _, content := range result.Content {
		textContent, ok := content.(mcp.TextContent)
		if !ok {
			continue
		}
		if result.IsError {
			return errors.Errorf("tool %s failed: %s", name, textContent.Text)
		}
		fmt.Println(prettyJson(textContent.Text))
	}
	return nil
}

func prettyJson(text string) string {
	var decoded interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return text
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return text
	}
	return string(pretty)
}

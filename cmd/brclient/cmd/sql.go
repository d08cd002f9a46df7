package cmd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func sqlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sql <query-json>",
		Short: "Render the SQL that a search query would execute, without running it",
		Long: `Render the SQL that a search query would execute, without running it.

The argument is a JSON search query, e.g.:

  brclient sql '{"query_filters": [{"name": "CPLX_EN", "operator": "=", "value": "High"}]}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			request := mcp.ReadResourceRequest{}
			request.Params.URI = "database://" + url.QueryEscape(args[0])

			result, err := c.ReadResource(ctx, request)
			if err != nil {
				return errors.Wrap(err, "reading database resource")
			}
			for _, contents := range result.Contents {
				textContents, ok := contents.(mcp.TextResourceContents)
				if !ok {
					continue
				}
				fmt.Println(textContents.Text)
			}
			return nil
		},
	}
}

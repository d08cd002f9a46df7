package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func promptCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fetch the business request assistant prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			request := mcp.GetPromptRequest{}
			request.Params.Name = "business_request_prompt"
			request.Params.Arguments = map[string]string{
				"language": language,
			}

			result, err := c.GetPrompt(ctx, request)
			if err != nil {
				return errors.Wrap(err, "fetching prompt")
			}
			for _, message := range result.Messages {
				textContent, ok := message.Content.(mcp.TextContent)
				if !ok {
					continue
				}
				fmt.Println(textContent.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&language, "language", "en", "prompt language, en or fr")
	return cmd
}

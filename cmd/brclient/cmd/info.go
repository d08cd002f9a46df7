package cmd

import (
	"github.com/spf13/cobra"
)

func fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields that can be used in search filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return callTool("get_valid_search_fields", nil)
		},
	}
}

func statusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List the known business request statuses and phases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return callTool("get_br_statuses_and_phases", nil)
		},
	}
}

func contextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Show dataset context: searchable fields, statuses and extraction metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return callTool("get_business_requests_context", nil)
		},
	}
}

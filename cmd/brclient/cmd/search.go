package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var limit int
	var statuses []string

	cmd := &cobra.Command{
		Use:   "search <filters-json>",
		Short: "Search business requests by field filters",
		Long: `Search business requests by field filters.

The argument is a JSON array of filters, each with a field name, an
operator and a value, e.g.:

  brclient search '[{"name": "BR_OWNER", "operator": "=", "value": "John Smith"}]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := searchArguments(args[0], limit, statuses)
			if err != nil {
				return err
			}
			return callTool("search_br_by_fields", arguments)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows to return")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "restrict results to these STATUS_IDs")
	return cmd
}

// searchArguments assembles the search_br_by_fields payload. STATUS_IDs are
// strings on the wire, matching the statuses field of the query model.
func searchArguments(filtersJson string, limit int, statuses []string) (map[string]interface{}, error) {
	var filters []map[string]interface{}
	if err := json.Unmarshal([]byte(filtersJson), &filters); err != nil {
		return nil, errors.Wrap(err, "parsing filters")
	}

	arguments := map[string]interface{}{
		"query_filters": filters,
	}
	if limit > 0 {
		arguments["limit"] = limit
	}
	if len(statuses) > 0 {
		arguments["statuses"] = statuses
	}
	return arguments, nil
}

package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <br-number> [br-number...]",
		Short: "Retrieve business requests by BR number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brNumbers := make([]int, 0, len(args))
			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return errors.Errorf("invalid BR number %q", arg)
				}
				brNumbers = append(brNumbers, n)
			}
			return callTool("get_br_by_number", map[string]interface{}{
				"br_numbers": brNumbers,
			})
		},
	}
}

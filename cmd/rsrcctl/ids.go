package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newIDsCmd())
}

func newIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ids <file> <type>",
		Short: "List resource IDs of a type",
		Long: `The ids command lists the ID of every resource of a type, in map order.

Example:
  rsrcctl ids Finder.rsrc ICN#
  rsrcctl ids Finder.rsrc STR --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIDs(args)
		},
	}
}

func runIDs(args []string) error {
	tc, err := parseType(args[1])
	if err != nil {
		return err
	}
	f, fork, err := openFork(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ids, err := fork.IDs(tc)
	if err != nil {
		return fmt.Errorf("failed to list IDs of %#v: %w", tc, err)
	}
	if jsonOut {
		return printJSON(ids)
	}
	for _, id := range ids {
		printInfo("%d\n", id)
	}
	return nil
}

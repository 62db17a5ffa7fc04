package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var typesCounts bool

func init() {
	cmd := newTypesCmd()
	cmd.Flags().BoolVar(&typesCounts, "count", false, "Show the number of resources of each type")
	rootCmd.AddCommand(cmd)
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types <file>",
		Short: "List the resource types in a fork",
		Long: `The types command lists every type code in the resource map, in the
order the map stores them.

Example:
  rsrcctl types Finder.rsrc
  rsrcctl types Finder.rsrc --count --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(args)
		},
	}
}

type typeSummary struct {
	Type  string `json:"type"`
	Count *int   `json:"count,omitempty"`
}

func runTypes(args []string) error {
	f, fork, err := openFork(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	types, err := fork.Types()
	if err != nil {
		return fmt.Errorf("failed to list types: %w", err)
	}

	summaries := make([]typeSummary, 0, len(types))
	for _, tc := range types {
		s := typeSummary{Type: tc.String()}
		if typesCounts {
			n, err := fork.Count(tc)
			if err != nil {
				return fmt.Errorf("failed to count %#v: %w", tc, err)
			}
			s.Count = &n
		}
		summaries = append(summaries, s)
	}

	if jsonOut {
		return printJSON(summaries)
	}
	for _, s := range summaries {
		if s.Count != nil {
			printInfo("'%s'\t%d\n", s.Type, *s.Count)
		} else {
			printInfo("'%s'\n", s.Type)
		}
	}
	return nil
}

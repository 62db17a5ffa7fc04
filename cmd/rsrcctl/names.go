package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newNamesCmd())
}

func newNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names <file> <type>",
		Short: "List resources of a type with their names",
		Long: `The names command lists every resource of a type as "ID name", in map
order. Unnamed resources show only their ID.

Example:
  rsrcctl names Finder.rsrc "STR "`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(args)
		},
	}
}

type namedResource struct {
	ID   int16  `json:"id"`
	Name string `json:"name,omitempty"`
}

func runNames(args []string) error {
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
	names, err := fork.Names(tc)
	if err != nil {
		return fmt.Errorf("failed to list names of %#v: %w", tc, err)
	}

	out := make([]namedResource, len(ids))
	for i := range ids {
		out[i] = namedResource{ID: ids[i], Name: names[i]}
	}
	if jsonOut {
		return printJSON(out)
	}
	for _, r := range out {
		if r.Name == "" {
			printInfo("%d\n", r.ID)
			continue
		}
		printInfo("%d\t%s\n", r.ID, r.Name)
	}
	return nil
}

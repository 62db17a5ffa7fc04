package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/DataDog/zstd"
	"github.com/joshuapare/rsrckit/cmd/rsrcctl/logger"
	"github.com/spf13/cobra"
)

var (
	getByName   bool
	getOutput   string
	getCompress bool
	getLevel    int
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getByName, "name", false, "Treat the key as a resource name instead of an ID")
	cmd.Flags().StringVarP(&getOutput, "output", "o", "", "Write the payload to a file instead of a hex dump")
	cmd.Flags().BoolVar(&getCompress, "compress", false, "zstd-compress the payload written with --output")
	cmd.Flags().IntVar(&getLevel, "level", zstd.BestSpeed, "zstd compression level")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <type> <id|name>",
		Short: "Extract a single resource",
		Long: `The get command extracts the payload of one resource. Without --output
the payload is printed as a hex dump.

Example:
  rsrcctl get Finder.rsrc ICN# -16455
  rsrcctl get Finder.rsrc "STR " "About" --name
  rsrcctl get disk.img snd 128 --start-block 42 --block-size 512 -o beep.snd
  rsrcctl get ._Icon ICN# 128 --appledouble -o icon.zst --compress`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path := args[0]

	tc, err := parseType(args[1])
	if err != nil {
		return err
	}
	key, err := parseKey(args[2], getByName)
	if err != nil {
		return err
	}
	if getCompress && getOutput == "" {
		return fmt.Errorf("--compress requires --output")
	}

	f, fork, err := openFork(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := fork.Data(tc, key)
	if err != nil {
		return fmt.Errorf("failed to get resource %#v %s: %w", tc, key, err)
	}
	reportDiagnostics(fork)
	logger.Debug("resource read", "type", tc.String(), "key", key.String(), "size", len(data))

	if getOutput != "" {
		return writeResource(getOutput, data)
	}

	if jsonOut {
		return printJSON(struct {
			Type string `json:"type"`
			Key  string `json:"key"`
			Size int    `json:"size"`
			Data string `json:"data"`
		}{tc.String(), key.String(), len(data), hex.EncodeToString(data)})
	}

	if quiet {
		return nil
	}
	return writeHexDump(os.Stdout, data)
}

func writeResource(path string, data []byte) error {
	out := data
	if getCompress {
		compressed, err := zstd.CompressLevel(nil, data, getLevel)
		if err != nil {
			return fmt.Errorf("failed to compress resource: %w", err)
		}
		printVerbose("Compressed %d bytes to %d\n", len(data), len(compressed))
		out = compressed
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	printInfo("Wrote %d bytes to %s\n", len(out), path)
	return nil
}

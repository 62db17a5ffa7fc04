package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joshuapare/rsrckit/cmd/rsrcctl/logger"
	"github.com/joshuapare/rsrckit/rsrc"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	blockSize   int64
	startBlock  int64
	appleDouble bool
	noMmap      bool
	useIndex    bool
	logLevel    string
	logJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "rsrcctl",
	Short: "Inspect and extract resources from Macintosh resource forks",
	Long: `rsrcctl reads classic Mac OS resource forks (.rsrc files, raw HFS
volume images, AppleDouble "._" files) and extracts resources by type and ID
or name. Forks inside a larger image are located by block index.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		Int64Var(&blockSize, "block-size", rsrc.DefaultBlockSize, "Block size in bytes used to locate the fork")
	rootCmd.PersistentFlags().
		Int64Var(&startBlock, "start-block", 0, "First block of the resource fork")
	rootCmd.PersistentFlags().
		BoolVar(&appleDouble, "appledouble", false, "Input is an AppleDouble/AppleSingle file")
	rootCmd.PersistentFlags().BoolVar(&noMmap, "no-mmap", false, "Read the input with plain file I/O")
	rootCmd.PersistentFlags().
		BoolVar(&useIndex, "index", false, "Build a lookup index instead of scanning per query")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "", "Log level on stderr: debug, info, warn, error (default off)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// initLogging wires --log-level/--log-json into the logger package. Verbose
// mode without an explicit level logs at debug.
func initLogging() error {
	level := logLevel
	if level == "" && verbose {
		level = "debug"
	}
	if level == "" {
		return logger.Init(logger.Options{})
	}
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	return logger.Init(logger.Options{Enabled: true, Level: lvl, JSON: logJSON})
}

// openFork opens path and loads the fork at --start-block. The caller closes
// the returned File; the Fork is unusable afterwards.
func openFork(path string) (*rsrc.File, *rsrc.Fork, error) {
	printVerbose("Opening file: %s\n", path)

	fileOpts := []rsrc.FileOption{
		rsrc.WithMmap(!noMmap),
		rsrc.WithFileLogger(logger.L),
	}
	if appleDouble {
		fileOpts = append(fileOpts, rsrc.WithAppleDouble())
	}
	f, err := rsrc.OpenFile(path, blockSize, fileOpts...)
	if err != nil {
		return nil, nil, err
	}

	forkOpts := []rsrc.Option{rsrc.WithDiagnostics()}
	if useIndex {
		forkOpts = append(forkOpts, rsrc.WithIndex())
	}
	fork, err := f.LoadFork(startBlock, forkOpts...)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to load resource fork at block %d: %w", startBlock, err)
	}
	printVerbose("Fork at offset %d, map at %d\n", fork.Start(), fork.Header().MapAddr)
	return f, fork, nil
}

// parseType accepts a type code of up to four characters. Shorter codes are
// padded with spaces, so "STR" selects 'STR '.
func parseType(s string) (rsrc.TypeCode, error) {
	if n := len([]rune(s)); n > 0 && n < 4 {
		s += strings.Repeat(" ", 4-n)
	}
	return rsrc.ParseTypeCode(s)
}

// parseKey reads s as a resource ID, or as a name when byName is set.
func parseKey(s string, byName bool) (rsrc.Key, error) {
	if byName {
		return rsrc.ByName(s), nil
	}
	id, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return rsrc.Key{}, fmt.Errorf("invalid resource ID %q: want an integer in [-32768, 32767] (use --name to select by name)", s)
	}
	return rsrc.ByID(int16(id)), nil
}

// reportDiagnostics logs what the fork noticed and echoes it in verbose mode.
func reportDiagnostics(fork *rsrc.Fork) {
	for _, d := range fork.Diagnostics() {
		logger.Warn("diagnostic", "severity", d.Severity.String(), "op", d.Op, "offset", d.Offset, "msg", d.Message)
		printVerbose("%s\n", d)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

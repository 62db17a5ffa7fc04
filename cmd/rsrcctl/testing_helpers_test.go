package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/rsrckit/internal/testutil"
	"github.com/joshuapare/rsrckit/rsrc"
)

// testForkPath writes a small fork to a temporary file and returns its path.
// The fork starts at startBlock blocks of blockSize bytes.
func testForkPath(t *testing.T, blockSize, startBlock int) string {
	t.Helper()
	img := testutil.NewForkBuilder().
		Add("ABCD", 1, []byte{0xDE, 0xAD, 0xBE, 0xEF}).
		AddNamed("STR ", 128, "Greeting", []byte("Hello, world")).
		Add("STR ", 129, []byte("unnamed")).
		AddNamed("STR ", 130, "Farewell", []byte("Goodbye")).
		AddEmptyType("NONE").
		Add("ICN#", -4064, bytes.Repeat([]byte{0xA5}, 40)).
		Build()
	return testutil.WriteForkFile(t, testutil.PadToBlock(img, blockSize, startBlock), "test.rsrc")
}

// resetFlags restores every flag to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	blockSize = rsrc.DefaultBlockSize
	startBlock = 0
	appleDouble = false
	noMmap = false
	useIndex = false
	logLevel = ""
	logJSON = false

	getByName = false
	getOutput = ""
	getCompress = false
	getLevel = 1
	typesCounts = false
	infoDump = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	return string(<-done), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}

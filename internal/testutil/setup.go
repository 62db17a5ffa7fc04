package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteForkFile writes img to a file in a per-test temporary directory and
// returns its path.
//
// Example:
//
//	img := testutil.NewForkBuilder().Add("ABCD", 1, payload).Build()
//	path := testutil.WriteForkFile(t, img, "test.rsrc")
func WriteForkFile(t *testing.T, img []byte, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// PadToBlock returns img preceded by enough zero bytes that the fork starts
// at firstBlock * blockSize.
func PadToBlock(img []byte, blockSize, firstBlock int) []byte {
	out := make([]byte, blockSize*firstBlock, blockSize*firstBlock+len(img))
	return append(out, img...)
}

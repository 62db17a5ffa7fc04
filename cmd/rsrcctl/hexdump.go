package main

import (
	"bufio"
	"io"
)

const (
	hexBytesPerLine  = 16
	hexBytesPerGroup = 8
)

const hexDigits = "0123456789abcdef"

// writeHexDump prints data as lowercase hex pairs, sixteen per line, with a
// wider gap after every eighth byte. The output always ends in a newline.
func writeHexDump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for i, b := range data {
		bw.WriteByte(hexDigits[b>>4])
		bw.WriteByte(hexDigits[b&0x0F])
		if (i+1)%hexBytesPerGroup == 0 {
			bw.WriteString("  ")
		} else {
			bw.WriteByte(' ')
		}
		if (i+1)%hexBytesPerLine == 0 {
			bw.WriteByte('\n')
		}
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

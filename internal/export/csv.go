package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const bom = "\uFEFF"

// WriteCSV writes t as UTF-8 with a byte order mark. Every field is quoted and every
// row, the last one included, ends in "\n".
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(bom); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	writeRow(bw, header)
	for _, row := range t.Rows {
		writeRow(bw, row)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}

// writeRow ignores write errors; bufio keeps the first one and Flush reports it.
func writeRow(bw *bufio.Writer, row []interface{}) {
	for i, cell := range row {
		if i > 0 {
			_ = bw.WriteByte(',')
		}
		_ = bw.WriteByte('"')
		_, _ = bw.WriteString(strings.ReplaceAll(cellString(cell), `"`, `""`))
		_ = bw.WriteByte('"')
	}
	_ = bw.WriteByte('\n')
}

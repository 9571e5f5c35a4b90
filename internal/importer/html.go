package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"io"
	"strings"
)

const sniffLen = 512

// grid is the cell text of one sheet. text marks the cells stored as strings; it is
// nil for HTML tables, where every cell is text.
type grid struct {
	rows [][]string
	text [][]bool
}

func (g grid) isText(row, col int) bool {
	if g.text == nil {
		return true
	}
	return row < len(g.text) && col < len(g.text[row]) && g.text[row][col]
}

// readRows returns the cells of the first sheet. Procurement portals export some
// ".xls" downloads as an HTML table; those are read with goquery.
func readRows(r io.Reader) (grid, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return grid{}, err
	}

	head = bytes.TrimLeft(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")), " \t\r\n")
	if bytes.HasPrefix(head, []byte("<")) {
		return htmlRows(br)
	}
	return activeRows(br)
}

func htmlRows(r io.Reader) (grid, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return grid{}, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return grid{}, fmt.Errorf("html workbook: no table")
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, row)
	})
	return grid{rows: rows}, nil
}

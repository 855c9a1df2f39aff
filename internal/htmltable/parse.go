package htmltable

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"stationcat/internal/textutil"
)

type rowBuilder struct {
	rows   [][]string
	row    []string
	cell   strings.Builder
	inRow  bool
	inCell bool
}

func (b *rowBuilder) startRow() {
	b.endRow()
	b.inRow = true
	b.row = nil
}

func (b *rowBuilder) startCell() {
	b.endCell()
	b.inCell = true
	b.cell.Reset()
}

func (b *rowBuilder) endCell() {
	if !b.inCell {
		return
	}
	b.inCell = false
	b.row = append(b.row, textutil.CollapseWhitespace(b.cell.String()))
	b.cell.Reset()
}

func (b *rowBuilder) endRow() {
	b.endCell()
	if !b.inRow {
		return
	}
	b.inRow = false
	for _, cell := range b.row {
		if cell != "" {
			b.rows = append(b.rows, b.row)
			break
		}
	}
	b.row = nil
}

func (b *rowBuilder) write(s string) {
	if b.inRow && b.inCell {
		b.cell.WriteString(s)
	}
}

// Parse flattens a raw table into rows of trimmed cell text. Both td and th
// are cells; img contributes its alt (or title) text and br a single space.
// Rows made only of blank cells are dropped. Row 0, when present, is the
// header.
func Parse(raw string) [][]string {
	z := html.NewTokenizer(strings.NewReader(raw))
	b := &rowBuilder{}
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			b.endRow()
			return b.rows
		case html.TextToken:
			b.write(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case atom.Tr:
				b.startRow()
			case atom.Td, atom.Th:
				if b.inRow {
					b.startCell()
				}
			case atom.Br:
				b.write(" ")
			case atom.Img:
				if hasAttr {
					if text := imageText(z); text != "" {
						b.write(" " + text + " ")
					}
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Tr, atom.Table:
				b.endRow()
			case atom.Td, atom.Th:
				b.endCell()
			}
		}
	}
}

func imageText(z *html.Tokenizer) string {
	var alt, title string
	for {
		key, val, more := z.TagAttr()
		switch strings.ToLower(string(key)) {
		case "alt":
			alt = strings.TrimSpace(string(val))
		case "title":
			title = strings.TrimSpace(string(val))
		}
		if !more {
			break
		}
	}
	if alt != "" {
		return alt
	}
	return title
}

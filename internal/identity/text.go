package identity

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"stationcat/internal/textutil"
)

// VisibleText returns the whitespace-collapsed text content of page[start:end].
// Offsets are clamped to the page and moved back to a rune boundary; script
// and style contents are skipped.
func VisibleText(page string, start, end int) string {
	start = clampOffset(page, start)
	end = clampOffset(page, end)
	if end <= start {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(page[start:end]))
	var parts []string
	skipping := atom.Atom(0)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return textutil.CollapseWhitespace(strings.Join(parts, " "))
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skipping = a
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skipping != 0 && atom.Lookup(name) == skipping {
				skipping = 0
			}
		case html.TextToken:
			if skipping == 0 {
				parts = append(parts, string(z.Text()))
			}
		}
	}
}

func clampOffset(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(s) {
		return len(s)
	}
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}

// runesBack returns the offset n runes before pos, or 0.
func runesBack(s string, pos, n int) int {
	for ; n > 0 && pos > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:pos])
		pos -= size
	}
	return pos
}

package htmltable

import (
	"regexp"
	"strings"
)

const (
	tableOpen  = "<table"
	tableClose = "</table>"
)

func anchorPattern(id string, allowSuffix bool) *regexp.Regexp {
	suffix := ""
	if allowSuffix {
		suffix = `(?:_[0-9]+)?`
	}
	return regexp.MustCompile(`id=["']` + regexp.QuoteMeta(id) + suffix + `["']`)
}

func findFrom(page string, re *regexp.Regexp, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	if from > len(page) {
		return 0, false
	}
	loc := re.FindStringIndex(page[from:])
	if loc == nil {
		return 0, false
	}
	return from + loc[0], true
}

// FindAnchor returns the byte offset of the first id="<id>" (either quote
// style) at or after from.
func FindAnchor(page, id string, from int) (int, bool) {
	if id == "" {
		return 0, false
	}
	return findFrom(page, anchorPattern(id, false), from)
}

// TableAt returns the first complete <table>...</table> slice starting at or
// after pos.
func TableAt(page string, pos int) (string, bool) {
	if pos < 0 || pos > len(page) {
		return "", false
	}
	start := strings.Index(page[pos:], tableOpen)
	if start < 0 {
		return "", false
	}
	start += pos
	end := strings.Index(page[start:], tableClose)
	if end < 0 {
		return "", false
	}
	return page[start : start+end+len(tableClose)], true
}

// AfterExactAnchor returns the first table after the anchor whose id is
// exactly id.
func AfterExactAnchor(page, id string) (string, bool) {
	pos, ok := FindAnchor(page, id, 0)
	if !ok {
		return "", false
	}
	return TableAt(page, pos)
}

// AfterAnchor returns the first table after the first anchor at or after
// from whose id is prefix, optionally followed by a MediaWiki "_N"
// disambiguation suffix.
func AfterAnchor(page, prefix string, from int) (string, bool) {
	if prefix == "" {
		return "", false
	}
	pos, ok := findFrom(page, anchorPattern(prefix, true), from)
	if !ok {
		return "", false
	}
	return TableAt(page, pos)
}

// AfterAnyAnchor tries each prefix in order and returns the first table found.
func AfterAnyAnchor(page string, prefixes []string, from int) (string, bool) {
	for _, prefix := range prefixes {
		if table, ok := AfterAnchor(page, prefix, from); ok {
			return table, true
		}
	}
	return "", false
}

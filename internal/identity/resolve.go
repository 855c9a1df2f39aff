package identity

import (
	"regexp"
	"strconv"
)

// Identity is the catalog's name/hash pair. Either half may be nil.
type Identity struct {
	ItemName *string `json:"itemName"`
	ItemHash *int64  `json:"itemHash"`
}

// IsZero reports whether neither half was found.
func (id Identity) IsZero() bool {
	return id.ItemName == nil && id.ItemHash == nil
}

const (
	labelPrefab = "Prefab"
	labelItem   = "Item"

	// LookbackRunes bounds how far before a name label its hash may sit.
	LookbackRunes = 1500
	// SectionWindow is the byte radius scanned around a section anchor when
	// the whole page yields nothing.
	SectionWindow = 250_000
)

var (
	hashPatterns = map[string]*regexp.Regexp{
		labelPrefab: hashPattern(labelPrefab),
		labelItem:   hashPattern(labelItem),
	}
	namePatterns = map[string]*regexp.Regexp{
		labelPrefab: regexp.MustCompile(`(?i)\b` + labelPrefab + `\s+Name\b\s+([A-Za-z0-9_]+)\b`),
		labelItem:   regexp.MustCompile(`(?i)\b` + labelItem + `\s+Name\b\s+([A-Za-z0-9_]+)\b`),
	}
)

func hashPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + label + `\s+Hash\b\s+([0-9-]+)\b`)
}

func expectedNamePattern(label, expected string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + label + `\s+Name\b\s+` + regexp.QuoteMeta(expected) + `\b`)
}

func parseHash(c Candidate) *int64 {
	v, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Resolve extracts identity from visible text. With an expected name it
// binds each "<Label> Name <expected>" to the closest preceding
// "<Label> Hash <n>" within LookbackRunes, trying Prefab labels then Item
// labels. Otherwise, or when that finds nothing, the last Item Name and Item
// Hash win, falling back to the last Prefab pair.
func Resolve(text, expected string) Identity {
	if expected != "" {
		for _, label := range []string{labelPrefab, labelItem} {
			if pair, ok := bindExpected(text, label, expected); ok {
				name := expected
				return Identity{ItemName: &name, ItemHash: parseHash(pair.Hash)}
			}
		}
	}

	id := lastIdentity(text, labelItem)
	if id.IsZero() {
		id = lastIdentity(text, labelPrefab)
	}
	return id
}

func bindExpected(text, label, expected string) (Pair, bool) {
	var pairs []Pair
	for _, name := range Collect(expectedNamePattern(label, expected), text, 0, len(text)) {
		lo := runesBack(text, name.Offset, LookbackRunes)
		hash, ok := Last(Collect(hashPatterns[label], text, lo, name.Offset))
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Name: name, Hash: hash})
	}
	return Nearest(pairs)
}

func lastIdentity(text, label string) Identity {
	var id Identity
	if c, ok := Last(Collect(hashPatterns[label], text, 0, len(text))); ok {
		id.ItemHash = parseHash(c)
	}
	if c, ok := Last(Collect(namePatterns[label], text, 0, len(text))); ok {
		name := c.Value
		id.ItemName = &name
	}
	return id
}

// FromPage resolves identity for a single-device page.
func FromPage(page string) Identity {
	return Resolve(VisibleText(page, 0, len(page)), "")
}

// FromSection resolves identity for one section of a multi-device page. The
// whole page is searched first so infobox blocks are seen; a window of
// SectionWindow bytes around the section anchor is the fallback.
func FromSection(page string, anchor int, expected string) Identity {
	if id := Resolve(VisibleText(page, 0, len(page)), expected); !id.IsZero() {
		return id
	}
	return Resolve(VisibleText(page, anchor-SectionWindow, anchor+SectionWindow), expected)
}

package identity

import "regexp"

// Candidate is one label match in the visible text.
type Candidate struct {
	Offset int
	Value  string
}

// Pair binds a name label to the hash label chosen for it.
type Pair struct {
	Name Candidate
	Hash Candidate
}

// Distance is how far the hash label sits before the name label.
func (p Pair) Distance() int {
	return p.Name.Offset - p.Hash.Offset
}

// Collect returns every match of re in text[lo:hi] with absolute offsets.
// Value is the first capture group, or the whole match when re has none.
func Collect(re *regexp.Regexp, text string, lo, hi int) []Candidate {
	if lo < 0 {
		lo = 0
	}
	if hi > len(text) {
		hi = len(text)
	}
	if hi <= lo {
		return nil
	}
	var out []Candidate
	for _, m := range re.FindAllStringSubmatchIndex(text[lo:hi], -1) {
		c := Candidate{Offset: lo + m[0], Value: text[lo+m[0] : lo+m[1]]}
		if len(m) >= 4 && m[2] >= 0 {
			c.Value = text[lo+m[2] : lo+m[3]]
		}
		out = append(out, c)
	}
	return out
}

// Last returns the candidate with the greatest offset.
func Last(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Offset > best.Offset {
			best = c
		}
	}
	return best, true
}

// Nearest returns the pair with the smallest distance; the earliest pair
// wins ties.
func Nearest(pairs []Pair) (Pair, bool) {
	if len(pairs) == 0 {
		return Pair{}, false
	}
	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.Distance() < best.Distance() {
			best = p
		}
	}
	return best, true
}

package catalog

import (
	"sort"
)

// Index is the in-memory form of index.json. It is loaded, mutated and
// written back in full.
type Index struct {
	Version int          `json:"version"`
	Devices []IndexEntry `json:"devices"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Version: IndexVersion, Devices: []IndexEntry{}}
}

// Upsert replaces any entry with the same title, then re-sorts by title.
func (idx *Index) Upsert(entry IndexEntry) {
	kept := make([]IndexEntry, 0, len(idx.Devices)+1)
	for _, existing := range idx.Devices {
		if existing.WikiTitle != entry.WikiTitle {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, entry)
	idx.Devices = kept
	idx.sort()
}

// Find returns the entry for title.
func (idx *Index) Find(title string) (IndexEntry, bool) {
	for _, entry := range idx.Devices {
		if entry.WikiTitle == title {
			return entry, true
		}
	}
	return IndexEntry{}, false
}

func (idx *Index) sort() {
	sort.SliceStable(idx.Devices, func(i, j int) bool {
		return idx.Devices[i].WikiTitle < idx.Devices[j].WikiTitle
	})
}

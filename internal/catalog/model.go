package catalog

import (
	"encoding/json"

	"stationcat/internal/identity"
	"stationcat/internal/iofields"
)

// Source kinds accepted in device records.
const (
	KindWikiImport = "wiki_import"
	KindBestGuess  = "best_guess"
)

// IndexVersion is the only index format version.
const IndexVersion = 1

const (
	indexFileName = "index.json"
	devicesDir    = "devices"
)

// Source records where a device record came from.
type Source struct {
	Kind        string `json:"kind"`
	WikiURL     string `json:"wikiUrl"`
	WikiTitle   string `json:"wikiTitle"`
	RetrievedAt string `json:"retrievedAt"`
	Notes       string `json:"notes,omitempty"`
}

// IO holds a device's writable parameters and readable outputs.
type IO struct {
	Parameters []iofields.Field  `json:"parameters"`
	Outputs    []iofields.Field  `json:"outputs"`
	ModeValues []json.RawMessage `json:"modeValues,omitempty"`
}

// Device is one devices/<title>.json record.
type Device struct {
	Source   Source            `json:"source"`
	Identity identity.Identity `json:"identity"`
	IO       IO                `json:"io"`
}

// Title returns the record's wiki title.
func (d *Device) Title() string {
	return d.Source.WikiTitle
}

func (d *Device) normalize() {
	if d.Source.Kind == "" {
		d.Source.Kind = KindWikiImport
	}
	if d.IO.Parameters == nil {
		d.IO.Parameters = []iofields.Field{}
	}
	if d.IO.Outputs == nil {
		d.IO.Outputs = []iofields.Field{}
	}
}

// IndexEntry is one row of index.json. The identity fields mirror the
// device record and are a cache only.
type IndexEntry struct {
	WikiTitle string  `json:"wikiTitle"`
	File      string  `json:"file"`
	ItemName  *string `json:"itemName"`
	ItemHash  *int64  `json:"itemHash"`
}

// DeviceFile returns the index-relative path for a title.
func DeviceFile(title string) string {
	return devicesDir + "/" + title + ".json"
}

// NewIndexEntry derives the index row for a device record.
func NewIndexEntry(d *Device) IndexEntry {
	return IndexEntry{
		WikiTitle: d.Title(),
		File:      DeviceFile(d.Title()),
		ItemName:  d.Identity.ItemName,
		ItemHash:  d.Identity.ItemHash,
	}
}

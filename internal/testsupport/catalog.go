package testsupport

import (
	"path/filepath"
	"testing"
)

// NewCatalog creates an empty catalog (index.json plus devices/) in a temp
// directory and returns its root.
func NewCatalog(t testing.TB) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "catalog")
	WriteJSON(t, filepath.Join(root, "index.json"), map[string]any{
		"version": 1,
		"devices": []any{},
	})
	WriteFile(t, filepath.Join(root, "devices", ".keep"), "")
	return root
}

// DeviceDoc returns a valid device record for title as a generic document
// that tests can mutate before writing.
func DeviceDoc(title string) map[string]any {
	return map[string]any{
		"source": map[string]any{
			"kind":        "wiki_import",
			"wikiUrl":     "https://stationeers-wiki.com/" + title,
			"wikiTitle":   title,
			"retrievedAt": "2026-01-02T03:04:05+00:00",
		},
		"identity": map[string]any{
			"itemName": nil,
			"itemHash": 123,
		},
		"io": map[string]any{
			"parameters": []any{
				map[string]any{"name": "On", "type": "boolean", "description": ""},
			},
			"outputs": []any{},
		},
	}
}

// IndexEntryDoc returns an index row pointing at devices/<title>.json.
func IndexEntryDoc(title string) map[string]any {
	return map[string]any{
		"wikiTitle": title,
		"file":      "devices/" + title + ".json",
		"itemName":  nil,
		"itemHash":  123,
	}
}

// WriteCatalog writes an index with the given entries and one device file
// per doc, keyed by file name under devices/.
func WriteCatalog(t testing.TB, root string, entries []map[string]any, devices map[string]map[string]any) {
	t.Helper()

	list := make([]any, 0, len(entries))
	for _, e := range entries {
		list = append(list, e)
	}
	WriteJSON(t, filepath.Join(root, "index.json"), map[string]any{
		"version": 1,
		"devices": list,
	})
	for name, doc := range devices {
		WriteJSON(t, filepath.Join(root, "devices", name), doc)
	}
}

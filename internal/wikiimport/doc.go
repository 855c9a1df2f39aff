// Package wikiimport runs the wiki-to-catalog import pipeline.
//
// One Import call resolves a wiki URL, fetches the page, locates the IO
// tables through a chain of anchor strategies, extracts and dedupes fields,
// resolves identity, and replaces the device's catalog record. Only network
// failures abort an import; every extraction miss degrades the record and is
// logged as a warning so the operator can review sparse results.
package wikiimport

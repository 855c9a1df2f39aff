// Package catalog owns the on-disk device catalog.
//
// The catalog is a directory holding index.json and a devices/ directory
// with one JSON record per wiki title. Store is the write side used by the
// importer: each import wholly replaces a device record and rewrites the
// index, sorted by wikiTitle, through a temp file and rename. There is no
// locking; concurrent writers race and the last one wins.
//
// Validator is the read side. It never writes and reports problems as
// Findings split into errors, which fail a run, and warnings, which do not.
package catalog

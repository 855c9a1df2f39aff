// Package history records wiki import runs in a small SQLite database.
//
// Each import, successful or not, appends one row with the run id, the
// resolved title, how many fields were extracted, and the identity found.
// The catalog itself stays the source of truth; history is an operator aid
// for spotting sparse or failed imports after the fact.
package history

// Package wikifetch downloads wiki pages for the import pipeline.
//
// A Client performs exactly one blocking GET per call, bounded by the
// configured timeout and body size. There are no retries: any transport
// error, non-200 status, or oversized body is returned wrapped in ErrFetch
// and aborts the import before anything is written to the catalog.
package wikifetch

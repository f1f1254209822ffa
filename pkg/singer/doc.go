// Package singer implements the subset of the Singer protocol a
// full-table tap needs: the catalog document, the opaque state document, and
// the line-delimited SCHEMA, RECORD and STATE messages written to stdout.
package singer

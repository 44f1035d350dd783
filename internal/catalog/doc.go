// Package catalog implements the shared, append-only registry of shows.
//
// Each kind (anime, manga) is persisted as one pipe-delimited flat file in
// the data directory. Records are immutable once appended; there is no
// update or delete path by design. Reads always go back to disk so external
// edits to the catalog files are picked up without a restart.
package catalog

// Package daemon wires the catalog store, the per-user list store, and
// the image cache into a single long-running process. The daemon
// enforces single-instance execution with a file lock, which is what
// makes the append and rewrite operations on the flat data files safe:
// exactly one process writes them at a time.
package daemon

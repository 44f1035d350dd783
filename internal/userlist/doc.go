// Package userlist implements per-user membership records: which catalog
// shows a user tracks, with status, progress, and rating.
//
// Each user is one pipe-delimited flat file named after the username. Adds
// are duplicate-checked, updates and removes rewrite the file atomically,
// and status-bucketed listing self-heals entries whose stored reference is
// a title left over from an older schema rather than a catalog ID.
package userlist

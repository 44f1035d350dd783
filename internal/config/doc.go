// Package config loads and validates bingelog's TOML configuration. It owns
// all filesystem layout decisions: where the shared catalogs live, where
// per-user list files go, and where the daemon writes its logs, lock, and
// control socket.
package config

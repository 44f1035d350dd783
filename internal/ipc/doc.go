// Package ipc exposes the daemon's tracking operations over JSON-RPC on
// a Unix domain socket. Front ends (the CLI, a GUI) connect as clients;
// the daemon hosts the server and remains the only process touching the
// data files.
package ipc

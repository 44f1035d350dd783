// Package api defines the transport-friendly representations of catalog
// shows and user list entries, plus converters from the store types.
// Front ends consume these payloads over the daemon socket.
package api

// Package imagecache fetches cover art over HTTP and keeps decoded
// images in memory keyed by URL. Lookups never block: a miss returns a
// placeholder immediately and schedules the download on a small worker
// pool, delivering the real image through a caller-supplied dispatcher
// once it arrives. Failed downloads fall back to the placeholder and
// are never cached, so a later lookup retries.
package imagecache

// Package pipeline owns the canonical translation input. It merges text
// from typing, dictation and photographed documents, runs recognition on
// captured pictures and sequences translation requests. All state lives in
// a single event loop; asynchronous results carry a generation number and
// are dropped when a newer operation or a clear has superseded them.
package pipeline

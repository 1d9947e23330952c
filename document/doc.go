// Package document implements the plain-text document model the suggestion
// engine operates on.
//
// Coordinates are 0-based (Row, Col) in grapheme clusters. The engine itself
// addresses the document by byte offset into Text(); CursorOffset and
// SetCursorOffset convert between the two. Every mutation, including cursor
// moves, bumps Version, which the engine uses to fence stale completion
// results.
package document

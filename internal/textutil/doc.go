// Package textutil provides text processing utilities shared by the content
// pipeline: URL slug generation, HTML stripping, sentence-budgeted truncation,
// reading-time estimation, and title casing.
//
// The helpers are deliberately dumb string transforms. Anything requiring the
// document structure (placeholder injection, link insertion) lives with the
// assembler and works on a parsed tree instead.
package textutil

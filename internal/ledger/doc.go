// Package ledger persists the publishing record backed by SQLite.
//
// Three tables carry the pipeline state: articles (append-only publishing
// history), backlink_posts (one row per external draft created), and
// image_sets (a lookup-or-compute cache keyed by article slug). All writes
// are transactional, so a crash mid-cycle never leaves a half-written
// record, and readers always see the previous consistent state.
package ledger

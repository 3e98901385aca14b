// Package store keeps a history of makemkvcon info runs in SQLite.
//
// Each Scan records the source that was scanned, a few headline values pulled
// from the aggregated disc (name, volume label, title count) and the raw robot
// output. The raw output is the source of truth: Scan.Result re-parses it, so
// improvements to the decoder apply to old scans too.
package store

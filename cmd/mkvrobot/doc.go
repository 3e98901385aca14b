// Command mkvrobot inspects optical discs through makemkvcon's robot output.
//
// It parses saved transcripts, runs live scans against a drive, keeps a
// history of scans in SQLite, watches a drive for inserted discs and wraps
// the rip and backup commands with progress reporting.
package main

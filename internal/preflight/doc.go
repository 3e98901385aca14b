// Package preflight provides readiness checks for the makemkvcon binary, the
// optical drive and the filesystem paths mkvrobot writes to.
//
// The CLI "mkvrobot preflight" command prints RunAll's results; "scan" and
// "watch" run the binary and device checks before touching the drive so a
// missing tool fails fast with a clear message.
package preflight

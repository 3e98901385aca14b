// Package watch scans discs as they are inserted.
//
// A Watcher holds a flock-based single-instance lock and runs a udev netlink
// monitor that reacts to media change events on the configured optical drive.
// Each matching event is handed to a Handler, normally one that runs
// makemkvcon info and stores the result.
package watch

// Package makemkv mediates access to the makemkvcon command line tool.
//
// It builds robot-mode command lines from configuration, runs them through an
// injectable Executor, and decodes every output line with the robot package.
// Info runs are aggregated into a disc summary; mkv and backup runs report
// progress and classify MSG codes so fatal conditions (expired licence,
// missing output directory) stop the run early.
//
// Prefer this package over ad-hoc exec.Command usage when interacting with
// MakeMKV so argument ordering, timeouts and message handling stay consistent.
package makemkv

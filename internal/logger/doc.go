// Package logger provides the shared zap logger for the launcher CLI.
//
// A single console logger writes to stderr so that log lines never
// interleave with the operator summary printed on stdout. The level is
// settable from the --log-level flag.
package logger

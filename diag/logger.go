package diag

import "log"

// Logf is the package-level warning logger. It defaults to log.Printf and may be
// replaced with SetLogger.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the package logger. Passing nil mutes it.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = Discard
		return
	}
	Logf = f
}

// Discard is a logger that drops every message.
func Discard(string, ...any) {}

// Warn logs d through logf, or through Logf when logf is nil.
func Warn(logf func(format string, v ...any), d Diagnostic) {
	if logf == nil {
		logf = Logf
	}
	logf("[WARN] palmrec: %s", d)
}

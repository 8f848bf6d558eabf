// Package taskcfg resolves loosely-typed task-runner configuration
// documents into a fully resolved, immutable task model.
//
// A document describes named tasks (commands, arguments, working
// directory, environment, problem matchers) and may carry
// platform-specific overrides (windows/osx/linux) and document-level
// defaults applied to every task. Resolution combines those layers into
// one coherent configuration per task, resolves $name problem-matcher
// references, fills defaults, and derives which tasks are the designated
// build and test tasks.
//
// Resolution never fails with a Go error. Every validation problem is
// recorded against a run-scoped ValidationStatus with four monotonically
// escalating severities (OK, Warning, Error, Fatal) and mirrored to the
// Logger as a human-readable message. Bad input degrades gracefully:
// a structurally wrong field drops just that field, a fatally malformed
// task entry drops just that entry, and only a fatal problem in the
// document-level defaults aborts the whole run.
//
// The entry point is Parser.Parse (or the package-level Parse, which
// uses the current platform):
//
//	p := taskcfg.Parser{Platform: taskcfg.PlatformLinux, Logger: logger}
//	cfg, status := p.Parse(document)
//	if status.IsFatal() {
//	    // cfg is nil; diagnostics went to logger
//	}
package taskcfg

// Package executor runs a plan against a package-management backend.
//
// Included entries run one at a time in plan order. A missing backend tool
// stops the run immediately. Any other failure is soft: the caller decides
// through Hooks.Decide whether the remaining entries should still run.
// Nothing is retried and nothing already done is rolled back. Cancelling the
// context stops the run before the next entry; a backend call in progress is
// never interrupted.
package executor

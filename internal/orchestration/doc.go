// Package orchestration runs several Fibonacci calculators concurrently,
// aggregates their progress and compares their results. Presentation is
// reached only through the ProgressReporter and ResultPresenter interfaces.
package orchestration

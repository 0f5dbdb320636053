// Package cli is the terminal front end: progress spinner, result
// presentation, output files, shell completion and the interactive bignum
// REPL.
package cli

// Package logging configures zerolog for the fibnum binaries and provides a
// small Logger interface with zerolog and standard-library backends.
package logging

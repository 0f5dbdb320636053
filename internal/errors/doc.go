// Package apperrors holds the error types shared by the command-line layers
// and the exit codes they map to.
//
// Core arithmetic signals misuse (underflow, division by zero) by panicking
// with a sentinel error. RecoverArithmetic turns such a panic into an
// ArithmeticError at the boundary of an interactive or batch operation.
// Every wrapper type implements Unwrap so errors.Is and errors.As see through
// it.
package apperrors

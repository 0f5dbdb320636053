package bignum

import "errors"

var (
	// ErrDivisionByZero is the panic value of QuotRem when the divisor is zero.
	ErrDivisionByZero = errors.New("bignum: division by zero")
	// ErrUnderflow is the panic value of SubAssign when the subtrahend exceeds
	// the minuend.
	ErrUnderflow = errors.New("bignum: unsigned subtraction underflow")
	// ErrInvalidDigit is returned by ParseNatStrict for malformed input.
	ErrInvalidDigit = errors.New("bignum: invalid decimal digit")
)

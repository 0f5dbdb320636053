// Package bignum implements arbitrary-precision unsigned integers stored as
// little-endian sequences of fixed-width limbs.
//
// The limb width is a type parameter: Nat[uint8], Nat[uint16], Nat[uint32] and
// Nat[uint64] share one implementation. Every value is kept in canonical form,
// meaning the most significant limb is never zero and zero is the empty
// sequence.
//
// Arithmetic comes in two flavours:
//
//   - Mutating methods on *Nat (AddAssign, SubAssign, MulAssign, LshAssign)
//     write into the receiver and return it.
//   - Value methods (Add, Sub, Mul, Lsh) clone the receiver first and return a
//     fresh, independently owned result.
//
// Shallow copies of a Nat share limb storage and are not supported. Use Clone
// to copy a value that will later be mutated.
//
// Precondition violations (subtracting a larger value, dividing by zero) panic
// with ErrUnderflow or ErrDivisionByZero. Callers handling untrusted input use
// the checked variants or recover and test the panic value with errors.Is.
package bignum

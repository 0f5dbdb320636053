// Package fibonacci computes Fibonacci numbers on top of the multi-limb
// integers of package bignum.
//
// Two generic algorithms are provided, both written against the Number
// capability interface so that they run unchanged over bignum.Nat of any limb
// width, machine integers (Native), math/big (BigInt) or GMP:
//
//   - FastDoubling, O(log n) multiplications using the doubling identities.
//   - ZPhi.Pow, binary exponentiation in the ring Z[φ], reading F(n) off φⁿ.
//
// On top of these the package exposes the Calculator interface used by the
// orchestration layer, a registry of named calculators, and progress
// reporting through internal/progress.
package fibonacci

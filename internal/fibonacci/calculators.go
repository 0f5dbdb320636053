package fibonacci

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/agbru/fibnum/internal/bignum"
)

// ErrNativeOverflow is returned by the native calculator when F(n) does not
// fit in a uint64.
var ErrNativeOverflow = errors.New("fibonacci: result does not fit in 64 bits")

// limbBits returns the width of L for display names.
func limbBits[L bignum.Limb]() int {
	var x L
	x--
	n := 0
	for ; x != 0; x >>= 1 {
		n++
	}
	return n
}

// DoublingCalculator runs fast doubling over bignum.Nat[L].
type DoublingCalculator[L bignum.Limb] struct{}

// Name returns the algorithm name, including the limb width.
func (c *DoublingCalculator[L]) Name() string {
	return fmt.Sprintf("Fast Doubling (%d-bit limbs)", limbBits[L]())
}

// CalculateCore computes F(n).
func (c *DoublingCalculator[L]) CalculateCore(ctx context.Context, report ProgressCallback, n uint64) (*big.Int, error) {
	r, err := FastDoublingContext[bignum.Nat[L]](ctx, n, report)
	if err != nil {
		return nil, err
	}
	return r.Big(), nil
}

// RingCalculator raises φ to the n-th power in Z[φ] over bignum.Nat[L].
type RingCalculator[L bignum.Limb] struct{}

// Name returns the algorithm name, including the limb width.
func (c *RingCalculator[L]) Name() string {
	return fmt.Sprintf("Golden Ratio Ring (%d-bit limbs)", limbBits[L]())
}

// CalculateCore computes F(n).
func (c *RingCalculator[L]) CalculateCore(ctx context.Context, report ProgressCallback, n uint64) (*big.Int, error) {
	r, err := Golden[bignum.Nat[L]]().PowContext(ctx, n, report)
	if err != nil {
		return nil, err
	}
	return r.B.Big(), nil
}

// ReferenceCalculator runs fast doubling over math/big. It is the oracle
// for cross-checking the multi-limb engine.
type ReferenceCalculator struct{}

// Name returns the algorithm name.
func (c *ReferenceCalculator) Name() string { return "Fast Doubling (math/big reference)" }

// CalculateCore computes F(n).
func (c *ReferenceCalculator) CalculateCore(ctx context.Context, report ProgressCallback, n uint64) (*big.Int, error) {
	r, err := FastDoublingContext[BigInt](ctx, n, report)
	if err != nil {
		return nil, err
	}
	return r.Int(), nil
}

// NativeCalculator runs fast doubling over uint64 and only accepts
// n <= MaxFibUint64.
type NativeCalculator struct{}

// Name returns the algorithm name.
func (c *NativeCalculator) Name() string { return "Fast Doubling (native uint64)" }

// CalculateCore computes F(n).
func (c *NativeCalculator) CalculateCore(ctx context.Context, report ProgressCallback, n uint64) (*big.Int, error) {
	if n > MaxFibUint64 {
		return nil, fmt.Errorf("%w: F(%d), maximum index is %d", ErrNativeOverflow, n, MaxFibUint64)
	}
	r, err := FastDoublingContext[Native[uint64]](ctx, n, report)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(r.V), nil
}

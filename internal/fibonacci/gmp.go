//go:build gmp

// GMP support is opt-in: build with -tags=gmp on a system with libgmp
// (libgmp-dev on Debian/Ubuntu, brew install gmp on macOS).

package fibonacci

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	RegisterCalculator("doubling-gmp", func() coreCalculator { return &GMPCalculator{} })
}

// GMPInt adapts *gmp.Int to Number. The zero value is 0.
type GMPInt struct {
	v *gmp.Int
}

var _ Number[GMPInt] = GMPInt{}

var gmpZero = gmp.NewInt(0)

func (x GMPInt) val() *gmp.Int {
	if x.v == nil {
		return gmpZero
	}
	return x.v
}

func (x GMPInt) Add(y GMPInt) GMPInt { return GMPInt{new(gmp.Int).Add(x.val(), y.val())} }
func (x GMPInt) Sub(y GMPInt) GMPInt { return GMPInt{new(gmp.Int).Sub(x.val(), y.val())} }
func (x GMPInt) Mul(y GMPInt) GMPInt { return GMPInt{new(gmp.Int).Mul(x.val(), y.val())} }
func (x GMPInt) Lsh(k uint) GMPInt   { return GMPInt{new(gmp.Int).Lsh(x.val(), k)} }
func (x GMPInt) Cmp(y GMPInt) int    { return x.val().Cmp(y.val()) }

func (x GMPInt) AddUint64(v uint64) GMPInt {
	return GMPInt{new(gmp.Int).Add(x.val(), new(gmp.Int).SetUint64(v))}
}

// Big converts the value to math/big.
func (x GMPInt) Big() *big.Int {
	return new(big.Int).SetBytes(x.val().Bytes())
}

// GMPCalculator runs the generic fast doubling over GMP integers.
type GMPCalculator struct{}

// Name returns the algorithm name.
func (c *GMPCalculator) Name() string { return "Fast Doubling (GMP)" }

// CalculateCore computes F(n).
func (c *GMPCalculator) CalculateCore(ctx context.Context, report ProgressCallback, n uint64) (*big.Int, error) {
	r, err := FastDoublingContext[GMPInt](ctx, n, report)
	if err != nil {
		return nil, err
	}
	return r.Big(), nil
}

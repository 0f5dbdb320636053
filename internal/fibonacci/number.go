package fibonacci

import (
	"math/big"

	"github.com/agbru/fibnum/internal/bignum"
)

// Number is the arithmetic capability set the generic algorithms need. It is
// self-referential: T's methods take and return T, so bignum.Nat[L], the
// Native wrapper over machine integers, BigInt over math/big and the GMP
// adapter all satisfy Number[T] with their own type.
//
// The zero value of T must represent 0. AddUint64 on the zero value is the
// canonical way to build small constants.
type Number[T any] interface {
	Add(y T) T
	Sub(y T) T
	Mul(y T) T
	Lsh(k uint) T
	Cmp(y T) int
	AddUint64(v uint64) T
}

var (
	_ Number[bignum.Nat[uint8]]  = bignum.Nat[uint8]{}
	_ Number[bignum.Nat[uint64]] = bignum.Nat[uint64]{}
	_ Number[Native[uint64]]     = Native[uint64]{}
	_ Number[BigInt]             = BigInt{}
)

// Native wraps a machine unsigned integer. Arithmetic wraps modulo 2^w, so
// results are exact only while they fit in U.
type Native[U bignum.Limb] struct {
	V U
}

func (x Native[U]) Add(y Native[U]) Native[U] { return Native[U]{x.V + y.V} }
func (x Native[U]) Sub(y Native[U]) Native[U] { return Native[U]{x.V - y.V} }
func (x Native[U]) Mul(y Native[U]) Native[U] { return Native[U]{x.V * y.V} }
func (x Native[U]) Lsh(k uint) Native[U]      { return Native[U]{x.V << k} }

func (x Native[U]) Cmp(y Native[U]) int {
	switch {
	case x.V < y.V:
		return -1
	case x.V > y.V:
		return 1
	}
	return 0
}

func (x Native[U]) AddUint64(v uint64) Native[U] { return Native[U]{x.V + U(v)} }

// BigInt adapts *big.Int to Number. Every operation allocates a new
// big.Int, so values are never shared. The zero value is 0.
type BigInt struct {
	v *big.Int
}

// NewBigInt wraps a copy of v.
func NewBigInt(v *big.Int) BigInt {
	return BigInt{v: new(big.Int).Set(v)}
}

var bigZero = new(big.Int)

func (x BigInt) val() *big.Int {
	if x.v == nil {
		return bigZero
	}
	return x.v
}

// Int returns a copy of the wrapped value.
func (x BigInt) Int() *big.Int { return new(big.Int).Set(x.val()) }

func (x BigInt) Add(y BigInt) BigInt { return BigInt{new(big.Int).Add(x.val(), y.val())} }
func (x BigInt) Sub(y BigInt) BigInt { return BigInt{new(big.Int).Sub(x.val(), y.val())} }
func (x BigInt) Mul(y BigInt) BigInt { return BigInt{new(big.Int).Mul(x.val(), y.val())} }
func (x BigInt) Lsh(k uint) BigInt   { return BigInt{new(big.Int).Lsh(x.val(), k)} }
func (x BigInt) Cmp(y BigInt) int    { return x.val().Cmp(y.val()) }

func (x BigInt) AddUint64(v uint64) BigInt {
	return BigInt{new(big.Int).Add(x.val(), new(big.Int).SetUint64(v))}
}

// String renders the value in decimal.
func (x BigInt) String() string { return x.val().String() }

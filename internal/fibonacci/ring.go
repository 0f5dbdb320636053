package fibonacci

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/agbru/fibnum/internal/progress"
)

// ZPhi is an element A + Bφ of the ring Z[φ], where φ² = φ + 1.
//
// Powers of φ carry the Fibonacci numbers: φⁿ = F(n-1) + F(n)φ. The constant
// term comes first, unlike layouts that store the φ coefficient first.
type ZPhi[T Number[T]] struct {
	A, B T
}

// Identity returns the multiplicative identity 1 + 0φ.
func Identity[T Number[T]]() ZPhi[T] {
	var zero T
	return ZPhi[T]{A: zero.AddUint64(1), B: zero}
}

// Golden returns φ itself, 0 + 1φ.
func Golden[T Number[T]]() ZPhi[T] {
	var zero T
	return ZPhi[T]{A: zero, B: zero.AddUint64(1)}
}

// Mul returns x·y, reducing φ² to φ + 1:
//
//	(a₁ + b₁φ)(a₂ + b₂φ) = (a₁a₂ + b₁b₂) + (a₁b₂ + a₂b₁ + b₁b₂)φ
//
// When x and y are the same element the squaring formula is used instead.
func (x *ZPhi[T]) Mul(y *ZPhi[T]) ZPhi[T] {
	if x == y {
		return x.Square()
	}
	bb := x.B.Mul(y.B)
	return ZPhi[T]{
		A: x.A.Mul(y.A).Add(bb),
		B: x.A.Mul(y.B).Add(y.A.Mul(x.B)).Add(bb),
	}
}

// Square returns x² = (a² + b²) + (2ab + b²)φ.
func (x *ZPhi[T]) Square() ZPhi[T] {
	aa, bb, ab := x.A.Mul(x.A), x.B.Mul(x.B), x.A.Mul(x.B)
	return ZPhi[T]{
		A: aa.Add(bb),
		B: ab.Lsh(1).Add(bb),
	}
}

// Equal reports whether both coefficients compare equal.
func (x ZPhi[T]) Equal(y ZPhi[T]) bool {
	return x.A.Cmp(y.A) == 0 && x.B.Cmp(y.B) == 0
}

// String renders the element as "A + Bφ".
func (x ZPhi[T]) String() string {
	return fmt.Sprintf("%v + %vφ", x.A, x.B)
}

// Pow returns xⁿ by binary exponentiation, scanning n from its least
// significant bit. x⁰ is the identity.
func (x ZPhi[T]) Pow(n uint64) ZPhi[T] {
	r, _ := x.PowContext(context.Background(), n, nil)
	return r
}

// PowContext is Pow with cancellation between squarings and progress
// reporting.
func (x ZPhi[T]) PowContext(ctx context.Context, n uint64, report progress.ProgressCallback) (ZPhi[T], error) {
	acc := Identity[T]()
	base := x

	steps := bits.Len64(n)
	powers := progress.PrecomputePowers4(steps)
	total := progress.CalcTotalWork(steps)
	var last, done float64

	for step := 0; n > 0; step++ {
		if err := ctx.Err(); err != nil {
			return ZPhi[T]{}, err
		}
		if n&1 == 1 {
			acc = acc.Mul(&base)
		}
		n >>= 1
		if n > 0 {
			base = base.Square()
		}
		done = progress.ReportStepProgress(report, &last, total, done, step, steps, powers)
	}
	return acc, nil
}

// FibonacciByRing returns F(n) as the φ coefficient of φⁿ.
func FibonacciByRing[T Number[T]](n uint64) T {
	return Golden[T]().Pow(n).B
}

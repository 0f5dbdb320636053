package bignum

import (
	"testing"
)

func TestBit(t *testing.T) {
	t.Parallel()
	x := ParseNat[uint8]("1025") // 0b100_0000_0001
	for i, want := range map[uint]bool{0: true, 1: false, 9: false, 10: true, 11: false, 500: false} {
		if got := x.Bit(i); got != want {
			t.Errorf("Bit(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestSetBitGrowsAndShrink(t *testing.T) {
	t.Parallel()
	var x Nat[uint16]
	x.SetBit(40, true)
	if x.Len() != 3 || x.String() != "1099511627776" {
		t.Fatalf("SetBit(40) = %s (%s)", x, x.Dump())
	}
	x.SetBit(40, false)
	if x.Len() != 3 {
		t.Fatalf("clearing a bit changed the length: %s", x.Dump())
	}
	x.Shrink()
	if !x.IsZero() {
		t.Errorf("Shrink left %s", x.Dump())
	}
}

func TestBitLen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"1", 1},
		{"255", 8},
		{"256", 9},
		{"18446744073709551616", 65},
	}
	for _, tt := range tests {
		if got := ParseNat[uint32](tt.in).BitLen(); got != tt.want {
			t.Errorf("BitLen(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLshAssign(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		k    uint
		want string
	}{
		{"zero value", "0", 100, "0"},
		{"by zero", "12345", 0, "12345"},
		{"within limb", "1", 3, "8"},
		{"across limb", "255", 4, "4080"},
		{"whole limbs", "3", 16, "196608"},
		{"limbs and bits", "5", 19, "2621440"},
		{"large", "340282366920938463463374607431768211455", 1, "680564733841876926926749214863536422910"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, got := range []string{
				ParseNat[uint8](tt.in).Lsh(tt.k).String(),
				ParseNat[uint16](tt.in).Lsh(tt.k).String(),
				ParseNat[uint32](tt.in).Lsh(tt.k).String(),
				ParseNat[uint64](tt.in).Lsh(tt.k).String(),
			} {
				if got != tt.want {
					t.Errorf("%s << %d = %s, want %s", tt.in, tt.k, got, tt.want)
				}
			}
		})
	}
}

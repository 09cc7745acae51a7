package eval

import (
	"math/bits"

	"fortio.org/safecast"

	"dogwood/internal/ast"
)

// Rule is a checked binary operation; ok is false when the mathematical result
// is not representable (overflow, underflow, zero divisor, exponent too wide).
type Rule func(a, b uint64) (res uint64, ok bool)

var rules = [...]Rule{
	ast.OpAdd: AddUint64Checked,
	ast.OpSub: SubUint64Checked,
	ast.OpMul: MulUint64Checked,
	ast.OpDiv: DivUint64Checked,
	ast.OpMod: RemEuclidUint64Checked,
	ast.OpPow: PowUint64Checked,
}

// RuleFor returns the checked rule for op.
func RuleFor(op ast.Op) (Rule, bool) {
	if int(op) >= len(rules) || rules[op] == nil {
		return nil, false
	}
	return rules[op], true
}

// AddUint64Checked returns (a+b, ok). ok is false on overflow.
func AddUint64Checked(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, false
	}
	return sum, true
}

// SubUint64Checked returns (a-b, ok). ok is false when a < b.
func SubUint64Checked(a, b uint64) (uint64, bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}

// MulUint64Checked returns (a*b, ok). ok is false on overflow.
func MulUint64Checked(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, false
	}
	return lo, true
}

// DivUint64Checked returns (a/b, ok). ok is false when b == 0.
func DivUint64Checked(a, b uint64) (uint64, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

// RemEuclidUint64Checked returns the Euclidean remainder of a by b.
// Для беззнаковых совпадает с обычным %.
func RemEuclidUint64Checked(a, b uint64) (uint64, bool) {
	if b == 0 {
		return 0, false
	}
	return a % b, true
}

// PowUint64Checked returns (a**b, ok). The exponent must fit in 32 bits and
// the result in 64 bits.
func PowUint64Checked(a, b uint64) (uint64, bool) {
	exp, err := safecast.Conv[uint32](b)
	if err != nil {
		return 0, false
	}
	if exp == 0 {
		return 1, true
	}

	// square-and-multiply, каждая ступень проверяется отдельно
	base, acc := a, uint64(1)
	var ok bool
	for exp > 1 {
		if exp&1 == 1 {
			if acc, ok = MulUint64Checked(acc, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if base, ok = MulUint64Checked(base, base); !ok {
			return 0, false
		}
	}
	return MulUint64Checked(acc, base)
}

package lex

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// pow10Table holds the exact float64 values of 10^0..10^22: every one of
// these integer powers of ten is exactly representable in a float64
// mantissa, which is what makes the fast path below produce an exactly
// rounded result rather than an approximation.
var pow10Table = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12, 1e13,
	1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// maxMantissaFastPath is 2^53, the largest integer every float64 mantissa
// can hold exactly.
const maxMantissaFastPath = 1 << 53

// parseFloat converts a decimal float literal (already validated by Number's
// tokenizer loop: digits, optional '.', optional exponent) to a float64. It
// mirrors the two-tier strategy this module's design is grounded on: a fast
// path that multiplies/divides an exact integer mantissa by an exact power
// of ten whenever both fit within a float64's exact range, falling back when
// they don't to an exact decimal-to-binary conversion via arbitrary-precision
// rational arithmetic rather than trusting any built-in string-to-float
// routine's rounding near the boundary.
func parseFloat(lit string) (float64, error) {
	if lit == "" {
		return 0, errors.New("empty float literal")
	}
	if strings.HasPrefix(lit, "+") || strings.HasPrefix(lit, "-") {
		return 0, errors.New("float literal must not carry a sign")
	}

	digits, exp, err := splitDecimalLiteral(lit)
	if err != nil {
		return 0, err
	}

	if mantissa, mantExp, ok := trimmedMantissa(digits, exp); ok {
		if f, ok := tryFastPath(mantissa, mantExp); ok {
			return f, nil
		}
	}

	return exactDecimalToFloat(digits, exp)
}

// splitDecimalLiteral splits lit into its concatenated integer+fraction
// digits and the power of ten by which that digit string, read as an
// integer, must be scaled: lit's value equals digits (as an integer) *
// 10^exp.
func splitDecimalLiteral(lit string) (digits string, exp int, err error) {
	mantissaPart := lit
	explicitExp := 0

	if i := strings.IndexAny(lit, "eE"); i >= 0 {
		mantissaPart = lit[:i]
		expPart := lit[i+1:]
		explicitExp, err = strconv.Atoi(expPart)
		if err != nil {
			return "", 0, errors.New("invalid exponent")
		}
	}

	intPart, fracPart := mantissaPart, ""
	if i := strings.IndexByte(mantissaPart, '.'); i >= 0 {
		intPart, fracPart = mantissaPart[:i], mantissaPart[i+1:]
	}

	return intPart + fracPart, explicitExp - len(fracPart), nil
}

// trimmedMantissa strips insignificant leading and trailing zeros from
// digits (folding trailing zeros into exp), returning the remaining digits
// parsed as a uint64 along with the adjusted exponent. ok is false when the
// literal is exactly zero or when more than 19 significant digits remain,
// in which case the caller must use the exact slow path instead.
func trimmedMantissa(digits string, exp int) (mantissa uint64, adjExp int, ok bool) {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return 0, 0, false
	}
	withoutTrailing := strings.TrimRight(trimmed, "0")
	adjExp = exp + (len(trimmed) - len(withoutTrailing))
	if withoutTrailing == "" {
		return 0, 0, false
	}
	if len(withoutTrailing) > 19 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(withoutTrailing, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return v, adjExp, true
}

// tryFastPath reports whether mantissa * 10^exp can be computed exactly with
// float64 arithmetic alone: the mantissa must fit the exact-integer range,
// and exp must land in the table of exactly representable powers of ten.
func tryFastPath(mantissa uint64, exp int) (float64, bool) {
	if mantissa > maxMantissaFastPath {
		return 0, false
	}
	if exp < -(len(pow10Table)-1) || exp > len(pow10Table)-1 {
		return 0, false
	}
	f := float64(mantissa)
	if exp >= 0 {
		return f * pow10Table[exp], true
	}
	return f / pow10Table[-exp], true
}

// exactDecimalToFloat converts digits * 10^exp to the nearest float64 using
// arbitrary-precision rational arithmetic, giving a correctly (round to
// nearest, ties to even) rounded result regardless of how many significant
// digits or how extreme the exponent is.
func exactDecimalToFloat(digits string, exp int) (float64, error) {
	d := new(big.Int)
	if _, ok := d.SetString(digits, 10); !ok {
		return 0, errors.New("invalid float literal")
	}
	if d.Sign() == 0 {
		return 0, nil
	}

	absExp := exp
	if absExp < 0 {
		absExp = -absExp
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(absExp)), nil)

	var rat *big.Rat
	if exp >= 0 {
		rat = new(big.Rat).SetInt(new(big.Int).Mul(d, pow))
	} else {
		rat = new(big.Rat).SetFrac(d, pow)
	}

	f, _ := rat.Float64()
	return f, nil
}

// Package money provides whole-dollar cost ranges backed by decimal arithmetic.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Range is an inclusive cost band in whole US dollars.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// NewRange builds a range, swapping the bounds if they arrive inverted.
func NewRange(min, max int64) Range {
	if min > max {
		min, max = max, min
	}
	return Range{Min: min, Max: max}
}

// Add returns the element-wise sum of two ranges.
func (r Range) Add(o Range) Range {
	return Range{Min: r.Min + o.Min, Max: r.Max + o.Max}
}

// Sub returns the element-wise difference, floored at zero.
func (r Range) Sub(o Range) Range {
	return Range{Min: nonNegative(r.Min - o.Min), Max: nonNegative(r.Max - o.Max)}
}

// IsZero reports whether both bounds are zero.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Scale multiplies both bounds by factor and rounds to the given number of
// decimal places (negative places round to tens, hundreds, ...).
func (r Range) Scale(factor decimal.Decimal, places int32) Range {
	return NewRange(
		scaleAmount(r.Min, factor, places),
		scaleAmount(r.Max, factor, places),
	)
}

// Span returns the smallest range covering every input range.
// An empty input yields the zero range.
func Span(ranges ...Range) Range {
	if len(ranges) == 0 {
		return Range{}
	}
	out := ranges[0]
	for _, r := range ranges[1:] {
		if r.Min < out.Min {
			out.Min = r.Min
		}
		if r.Max > out.Max {
			out.Max = r.Max
		}
	}
	return out
}

// String renders the range as "$12,000 - $24,000".
func (r Range) String() string {
	if r.Min == r.Max {
		return FormatUSD(r.Min)
	}
	return FormatUSD(r.Min) + " - " + FormatUSD(r.Max)
}

// FormatUSD renders a whole-dollar amount with thousands separators.
func FormatUSD(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var sb strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	return fmt.Sprintf("%s$%s", sign, sb.String())
}

// Mul multiplies a whole-dollar amount by factor, rounding to places.
func Mul(amount int64, factor decimal.Decimal, places int32) int64 {
	return scaleAmount(amount, factor, places)
}

func scaleAmount(amount int64, factor decimal.Decimal, places int32) int64 {
	return decimal.NewFromInt(amount).Mul(factor).Round(places).IntPart()
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

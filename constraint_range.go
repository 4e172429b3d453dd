package tribles

import "math"

// RangeConstraint restricts a variable to the values between lower and upper,
// both inclusive, compared as big endian byte strings.
//
// While the pushed prefix equals the prefix of a bound the next byte is
// limited by that bound, once it diverged the bound no longer applies.
type RangeConstraint struct {
	variable     Variable
	lower, upper Value
	depth        int
	onLower      [VALUE_LEN + 1]bool // onLower[d] is set if the first d bytes equal lower's
	onUpper      [VALUE_LEN + 1]bool
}

// NewRangeConstraint restricts v to the values from lower to upper.
func NewRangeConstraint(v Variable, lower, upper Value) *RangeConstraint {
	return &RangeConstraint{variable: v, lower: lower, upper: upper}
}

func (c *RangeConstraint) Variables() (vs VariableSet) {
	vs.Set(c.variable)
	return
}

func (c *RangeConstraint) Blocked() VariableSet { return VariableSet{} }

// VariableCosts is maximal, a range says nothing about how many of its values
// actually occur and should never drive the search.
func (c *RangeConstraint) VariableCosts(v Variable) uint64 { return math.MaxUint64 }

// PushVariable starts on the fringe of both bounds.
func (c *RangeConstraint) PushVariable(v Variable) {
	c.depth = 0
	c.onLower[0], c.onUpper[0] = true, true
}

func (c *RangeConstraint) PopVariable() {}

func (c *RangeConstraint) bounds() (lo, hi int) {
	lo, hi = 0, 255
	if c.onLower[c.depth] {
		lo = int(c.lower[c.depth])
	}
	if c.onUpper[c.depth] {
		hi = int(c.upper[c.depth])
	}
	return
}

// PeekByte forces a byte while both bounds agree on it.
func (c *RangeConstraint) PeekByte() (byte, bool) {
	if lo, hi := c.bounds(); lo == hi {
		return byte(lo), true
	}
	return 0, false
}

// ProposeByte keeps the bytes between the bounds that still apply.
func (c *RangeConstraint) ProposeByte(bs *ByteSet) {
	var allowed ByteSet
	if lo, hi := c.bounds(); lo <= hi {
		allowed.SetRange(byte(lo), byte(hi))
	}
	bs.Intersect(&allowed)
}

// PushByte records whether the prefix still follows each bound.
func (c *RangeConstraint) PushByte(b byte) {
	d := c.depth
	c.onLower[d+1] = c.onLower[d] && b == c.lower[d]
	c.onUpper[d+1] = c.onUpper[d] && b == c.upper[d]
	c.depth++
}

func (c *RangeConstraint) PopByte() { c.depth-- }

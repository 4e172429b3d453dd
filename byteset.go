package tribles

import "math/bits"

// ByteSet is a set over the byte values 0-255.
// It is used for the child tables of branches, for byte proposals during
// query resolution and, since variables are bytes too, for variable sets.
type ByteSet [4]uint64

// VariableSet is a set of query variables.
type VariableSet = ByteSet

func (s *ByteSet) Set(b byte)     { s[b>>6] |= 1 << (b & 63) }
func (s *ByteSet) Unset(b byte)   { s[b>>6] &^= 1 << (b & 63) }
func (s ByteSet) Has(b byte) bool { return s[b>>6]&(1<<(b&63)) != 0 }

func (s *ByteSet) Clear() { *s = ByteSet{} }

func (s *ByteSet) SetAll() {
	for i := range s {
		s[i] = ^uint64(0)
	}
}

// SetRange sets all bytes in [lo, hi]. An empty range sets nothing.
func (s *ByteSet) SetRange(lo, hi byte) {
	for b := int(lo); b <= int(hi); b++ {
		s.Set(byte(b))
	}
}

func (s ByteSet) IsEmpty() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

func (s ByteSet) Count() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) + bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

func (s *ByteSet) Union(o *ByteSet) {
	for i := range s {
		s[i] |= o[i]
	}
}

func (s *ByteSet) Intersect(o *ByteSet) {
	for i := range s {
		s[i] &= o[i]
	}
}

func (s *ByteSet) Subtract(o *ByteSet) {
	for i := range s {
		s[i] &^= o[i]
	}
}

func (s *ByteSet) Complement() {
	for i := range s {
		s[i] = ^s[i]
	}
}

// IntersectByte narrows the set to at most the single byte b.
func (s *ByteSet) IntersectByte(b byte) {
	has := s.Has(b)
	s.Clear()
	if has {
		s.Set(b)
	}
}

// Next returns the smallest member >= from.
func (s ByteSet) Next(from int) (byte, bool) {
	for i := from >> 6; from < 256 && i < 4; i++ {
		w := s[i]
		if i == from>>6 {
			w &= ^uint64(0) << (uint(from) & 63)
		}
		if w != 0 {
			return byte(i<<6 | bits.TrailingZeros64(w)), true
		}
	}
	return 0, false
}

// Prev returns the largest member <= from.
func (s ByteSet) Prev(from int) (byte, bool) {
	if from > 255 {
		from = 255
	}
	for i := from >> 6; from >= 0 && i >= 0; i-- {
		w := s[i]
		if i == from>>6 {
			w &= ^uint64(0) >> (63 - uint(from)&63)
		}
		if w != 0 {
			return byte(i<<6 | (63 - bits.LeadingZeros64(w))), true
		}
	}
	return 0, false
}

// Drain removes and returns the smallest member.
func (s *ByteSet) Drain() (byte, bool) {
	b, ok := s.Next(0)
	if ok {
		s.Unset(b)
	}
	return b, ok
}

// Members lists the set in ascending order.
func (s ByteSet) Members() []byte {
	out := make([]byte, 0, s.Count())
	for b, ok := s.Next(0); ok; b, ok = s.Next(int(b) + 1) {
		out = append(out, b)
	}
	return out
}

package tribles

import "math"
import "golang.org/x/xerrors"

// TripleConstraint restricts three variables to the entity, attribute and
// value of the tribles in a set.
//
// Variables are bound one after another, and for any sequence of bound fields
// there is an ordering whose keys start with exactly these fields followed by
// the field being explored. Bytes are pushed into the cursors of those
// orderings only: two of them while nothing is bound, a single one after.
//
// Entity and attribute variables are explored as values, their first half is
// always zero and never reaches a cursor.
type TripleConstraint struct {
	vars      [3]Variable
	variables VariableSet
	cursors   [6]*Cursor
	bound     []int // fields of the pushed variables, in push order
	frames    []tripleFrame
}

type tripleFrame struct {
	field  int
	active []*Cursor
	depth  int // value bytes pushed
	dead   int // depth of the first non zero padding byte, -1 if none
}

// TripleConstraint returns a constraint over the tribles of s. The three
// variables must be distinct.
func (s *TribleSet) TripleConstraint(e, a, v Variable) (*TripleConstraint, error) {
	if e == a || e == v || a == v {
		return nil, xerrors.Errorf("%w: e %d a %d v %d", ErrDuplicateVariable, e, a, v)
	}
	c := &TripleConstraint{vars: [3]Variable{fieldE: e, fieldA: a, fieldV: v}}
	for _, x := range c.vars {
		c.variables.Set(x)
	}
	for o := range c.cursors {
		c.cursors[o] = s.indices[o].Cursor()
	}
	return c, nil
}

func (c *TripleConstraint) fieldOf(v Variable) int {
	for f, x := range c.vars {
		if x == v {
			return f
		}
	}
	return -1
}

// continuing returns the cursors of the orderings that start with the bound
// fields followed by field.
func (c *TripleConstraint) continuing(field int) (out []*Cursor) {
	k := len(c.bound)
next:
	for o, fields := range orderingFields {
		for i, f := range c.bound {
			if fields[i] != f {
				continue next
			}
		}
		if fields[k] == field {
			out = append(out, c.cursors[o])
		}
	}
	return
}

func (c *TripleConstraint) Variables() VariableSet { return c.variables }

func (c *TripleConstraint) Blocked() VariableSet { return VariableSet{} }

// VariableCosts is the number of distinct values the field takes among the
// tribles matching the bound fields.
func (c *TripleConstraint) VariableCosts(v Variable) uint64 {
	f := c.fieldOf(v)
	if f < 0 {
		return math.MaxUint64
	}
	cursors := c.continuing(f)
	if len(cursors) == 0 { // already bound
		return math.MaxUint64
	}
	return cursors[0].SegmentCount()
}

func (c *TripleConstraint) PushVariable(v Variable) {
	f := c.fieldOf(v)
	c.frames = append(c.frames, tripleFrame{field: f, active: c.continuing(f), dead: -1})
	c.bound = append(c.bound, f)
}

func (c *TripleConstraint) PopVariable() {
	c.frames = c.frames[:len(c.frames)-1]
	c.bound = c.bound[:len(c.bound)-1]
}

func (c *TripleConstraint) top() *tripleFrame { return &c.frames[len(c.frames)-1] }

// padding reports whether the next byte is part of the zero half of an id
func (fr *tripleFrame) padding() bool {
	return fr.field != fieldV && fr.depth < VALUE_LEN-ID_LEN
}

func (c *TripleConstraint) PeekByte() (byte, bool) {
	fr := c.top()
	switch {
	case fr.dead >= 0:
		return 0, false
	case fr.padding():
		return 0, true
	default:
		return fr.active[0].Peek()
	}
}

func (c *TripleConstraint) ProposeByte(bs *ByteSet) {
	fr := c.top()
	switch {
	case fr.dead >= 0:
		bs.Clear()
	case fr.padding():
		bs.IntersectByte(0)
	default:
		fr.active[0].Propose(bs)
	}
}

func (c *TripleConstraint) PushByte(b byte) {
	fr := c.top()
	if fr.padding() {
		if b != 0 && fr.dead < 0 {
			fr.dead = fr.depth
		}
	} else {
		for _, cur := range fr.active {
			cur.Push(b)
		}
	}
	fr.depth++
}

func (c *TripleConstraint) PopByte() {
	fr := c.top()
	fr.depth--
	if fr.padding() {
		if fr.dead == fr.depth {
			fr.dead = -1
		}
	} else {
		for _, cur := range fr.active {
			cur.Pop()
		}
	}
}

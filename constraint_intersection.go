package tribles

import "math"

// IntersectionConstraint holds when all of its members hold. Every variable
// operation is forwarded to the members which range over the variable, so a
// member never sees variables it does not know.
type IntersectionConstraint struct {
	members   []Constraint
	variables VariableSet
	active    [][]Constraint // members ranging over each pushed variable
}

// NewIntersectionConstraint holds when every member holds.
func NewIntersectionConstraint(members ...Constraint) *IntersectionConstraint {
	c := &IntersectionConstraint{members: members}
	for _, m := range members {
		vs := m.Variables()
		c.variables.Union(&vs)
	}
	return c
}

func (c *IntersectionConstraint) Variables() VariableSet { return c.variables }

func (c *IntersectionConstraint) Blocked() (vs VariableSet) {
	for _, m := range c.members {
		b := m.Blocked()
		vs.Union(&b)
	}
	return
}

// VariableCosts is the cost of the most selective member.
func (c *IntersectionConstraint) VariableCosts(v Variable) uint64 {
	cost := uint64(math.MaxUint64)
	for _, m := range c.members {
		if vs := m.Variables(); vs.Has(v) {
			cost = min(cost, m.VariableCosts(v))
		}
	}
	return cost
}

func (c *IntersectionConstraint) top() []Constraint { return c.active[len(c.active)-1] }

func (c *IntersectionConstraint) PushVariable(v Variable) {
	var active []Constraint
	for _, m := range c.members {
		if vs := m.Variables(); vs.Has(v) {
			m.PushVariable(v)
			active = append(active, m)
		}
	}
	c.active = append(c.active, active)
}

func (c *IntersectionConstraint) PopVariable() {
	for _, m := range c.top() {
		m.PopVariable()
	}
	c.active = c.active[:len(c.active)-1]
}

// PeekByte only reports a byte if every active member forces the same one.
func (c *IntersectionConstraint) PeekByte() (byte, bool) {
	active := c.top()
	if len(active) == 0 {
		return 0, false
	}
	b, ok := active[0].PeekByte()
	if !ok {
		return 0, false
	}
	for _, m := range active[1:] {
		if o, ok := m.PeekByte(); !ok || o != b {
			return 0, false
		}
	}
	return b, true
}

func (c *IntersectionConstraint) ProposeByte(bs *ByteSet) {
	for _, m := range c.top() {
		if bs.IsEmpty() {
			return
		}
		m.ProposeByte(bs)
	}
}

func (c *IntersectionConstraint) PushByte(b byte) {
	for _, m := range c.top() {
		m.PushByte(b)
	}
}

func (c *IntersectionConstraint) PopByte() {
	for _, m := range c.top() {
		m.PopByte()
	}
}

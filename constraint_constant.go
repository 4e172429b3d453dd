package tribles

// ConstantConstraint binds a variable to one value.
type ConstantConstraint struct {
	variable Variable
	value    Value
	depth    int
}

// NewConstantConstraint restricts v to value.
func NewConstantConstraint(v Variable, value Value) *ConstantConstraint {
	return &ConstantConstraint{variable: v, value: value}
}

// Variables holds the single constrained variable.
func (c *ConstantConstraint) Variables() (vs VariableSet) {
	vs.Set(c.variable)
	return
}

func (c *ConstantConstraint) Blocked() VariableSet { return VariableSet{} }

// VariableCosts is 1, a constant never has more than one value.
func (c *ConstantConstraint) VariableCosts(v Variable) uint64 { return 1 }

// PushVariable starts over at the first byte of the value.
func (c *ConstantConstraint) PushVariable(v Variable) { c.depth = 0 }
func (c *ConstantConstraint) PopVariable()            {}

// PeekByte always forces the next byte of the value.
func (c *ConstantConstraint) PeekByte() (byte, bool) { return c.value[c.depth], true }

func (c *ConstantConstraint) ProposeByte(bs *ByteSet) { bs.IntersectByte(c.value[c.depth]) }

func (c *ConstantConstraint) PushByte(b byte) { c.depth++ }
func (c *ConstantConstraint) PopByte()        { c.depth-- }

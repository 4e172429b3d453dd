package tribles

import "golang.org/x/xerrors"

// IndexConstraint restricts a variable to the keys of a tree of values.
type IndexConstraint struct {
	variable Variable
	cursor   *Cursor
}

// NewIndexConstraint requires a tree of 32 byte keys visited in natural
// order, such as built by ValueTree.
func NewIndexConstraint(v Variable, tree *Tree) (*IndexConstraint, error) {
	l := tree.Layout()
	if l.KeyLen() != VALUE_LEN {
		return nil, xerrors.Errorf("%w: key length %d, values need %d", ErrLayoutMismatch, l.KeyLen(), VALUE_LEN)
	}
	for d := 0; d < VALUE_LEN; d++ {
		if l.KeyOffset(d) != d {
			return nil, xerrors.Errorf("%w: depth %d visits byte %d", ErrLayoutMismatch, d, l.KeyOffset(d))
		}
	}
	return &IndexConstraint{variable: v, cursor: tree.Cursor()}, nil
}

// ValueTree collects values into a tree usable with NewIndexConstraint.
func ValueTree(values ...Value) *Tree {
	b := NewTree(ValueLayout).Batch()
	for i := range values {
		if err := b.Put(values[i][:], nil); err != nil {
			panic(err) // keys always have the layout's length
		}
	}
	t, err := b.Complete()
	if err != nil {
		panic(err)
	}
	return t
}

func (c *IndexConstraint) Variables() (vs VariableSet) {
	vs.Set(c.variable)
	return
}

func (c *IndexConstraint) Blocked() VariableSet { return VariableSet{} }

// VariableCosts is the number of values in the tree below the pushed prefix.
func (c *IndexConstraint) VariableCosts(v Variable) uint64 { return c.cursor.Count() }

// The cursor carries all state, a variable adds none.
func (c *IndexConstraint) PushVariable(v Variable) {}
func (c *IndexConstraint) PopVariable()            {}

// Byte level operations move the cursor over the tree.
func (c *IndexConstraint) PeekByte() (byte, bool)  { return c.cursor.Peek() }
func (c *IndexConstraint) ProposeByte(bs *ByteSet) { c.cursor.Propose(bs) }
func (c *IndexConstraint) PushByte(b byte)         { c.cursor.Push(b) }
func (c *IndexConstraint) PopByte()                { c.cursor.Pop() }

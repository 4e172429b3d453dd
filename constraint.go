package tribles

// Variable names a query variable. Variables are small so that sets of them
// fit a ByteSet.
type Variable = byte

// Constraint restricts the values of a number of variables. The query engine
// talks to a constraint one byte at a time: it pushes the variable it wants to
// explore, asks which bytes may come next, and pushes and pops bytes as it
// walks the possible values.
//
// Constraints are stateful, a constraint takes part in one query at a time.
// All pushes are balanced by pops before a query finishes or is closed.
type Constraint interface {
	// Variables returns the variables the constraint ranges over.
	Variables() VariableSet

	// Blocked returns the variables which must not be explored yet.
	Blocked() VariableSet

	// VariableCosts estimates the number of values v can take given the
	// variables already bound. Lower is better, 1 or less stops the search for
	// a cheaper variable.
	VariableCosts(v Variable) uint64

	PushVariable(v Variable)
	PopVariable()

	// PeekByte returns the next byte of the explored variable when the
	// constraint allows exactly one.
	PeekByte() (byte, bool)

	// ProposeByte removes from bs every byte the constraint does not allow next.
	ProposeByte(bs *ByteSet)

	PushByte(b byte)
	PopByte()
}

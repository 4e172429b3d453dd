package tribles

// Binding assigns values to the variables of a query.
type Binding struct {
	bound  VariableSet
	values []Value // indexed by variable
}

func newBinding(vars VariableSet) Binding {
	n := 0
	if last, ok := vars.Prev(MAX_VARIABLES - 1); ok {
		n = int(last) + 1
	}
	return Binding{values: make([]Value, n)}
}

// Get returns the value of v, if bound.
func (b Binding) Get(v Variable) (Value, bool) {
	if !b.bound.Has(v) {
		return Value{}, false
	}
	return b.values[v], true
}

// Bound is the set of variables with a value.
func (b Binding) Bound() VariableSet { return b.bound }

func (b *Binding) set(v Variable, value Value) {
	b.bound.Set(v)
	b.values[v] = value
}

func (b *Binding) unset(v Variable) {
	b.bound.Unset(v)
	b.values[v] = Value{}
}

func (b Binding) clone() Binding {
	b.values = append([]Value(nil), b.values...)
	return b
}

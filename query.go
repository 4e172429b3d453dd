package tribles

import "log/slog"
import "math"
import "golang.org/x/xerrors"

// Query enumerates the bindings satisfying a constraint, depth first and one
// variable at a time. Bindings are produced lazily:
//
//	q := tribles.Find(c)
//	defer q.Close()
//	for q.Next() {
//		b := q.Binding()
//		...
//	}
//	if err := q.Err(); err != nil {
//		...
//	}
//
// At every level the cheapest unexplored variable is chosen according to the
// constraint's cost estimates, so the join adapts to the data instead of
// following a fixed plan.
type Query struct {
	c          Constraint
	unexplored VariableSet
	frames     []queryFrame
	binding    Binding
	started    bool
	done       bool
	err        error
}

type queryFrame struct {
	variable Variable
	walker   *walker
}

// Find prepares a query over c. Nothing is evaluated before the first Next.
func Find(c Constraint) *Query {
	vars := c.Variables()
	return &Query{c: c, unexplored: vars, binding: newBinding(vars)}
}

// Next advances to the next binding, it returns false once all bindings have
// been produced or an error occurred.
func (q *Query) Next() bool {
	if q.done {
		return false
	}
	if !q.started {
		q.started = true
		if q.unexplored.IsEmpty() {
			return true // the single empty binding
		}
		if !q.explore() {
			return false
		}
	}

	for len(q.frames) > 0 {
		f := &q.frames[len(q.frames)-1]
		value, ok := f.walker.next()
		if !ok {
			q.c.PopVariable()
			q.unexplored.Set(f.variable)
			q.binding.unset(f.variable)
			q.frames = q.frames[:len(q.frames)-1]
			continue
		}
		q.binding.set(f.variable, value)
		if q.unexplored.IsEmpty() {
			return true
		}
		if !q.explore() {
			return false
		}
	}
	q.done = true
	return false
}

// explore pushes the cheapest unexplored variable that is not blocked.
func (q *Query) explore() bool {
	candidates := q.unexplored
	blocked := q.c.Blocked()
	candidates.Subtract(&blocked)
	if candidates.IsEmpty() {
		q.fail(xerrors.Errorf("%w: variables %v", ErrBlockedDeadEnd, q.unexplored.Members()))
		return false
	}

	var next Variable
	cost := uint64(math.MaxUint64)
	first := true
	for v, ok := candidates.Drain(); ok; v, ok = candidates.Drain() {
		c := q.c.VariableCosts(v)
		if first || c < cost {
			next, cost, first = v, c, false
		}
		if cost <= 1 {
			break
		}
	}
	slog.Debug("exploring variable", "variable", next, "cost", cost, "level", len(q.frames))

	q.unexplored.Unset(next)
	q.c.PushVariable(next)
	q.frames = append(q.frames, queryFrame{variable: next, walker: newWalker(q.c)})
	return true
}

func (q *Query) fail(err error) {
	q.err = err
	q.Close()
}

// Binding returns the current binding, it stays valid after Next.
func (q *Query) Binding() Binding { return q.binding.clone() }

// Err returns the error that stopped the query, if any.
func (q *Query) Err() error { return q.err }

// Close stops the query early, returning every constraint to the state it
// had before the query started. Closing a finished query does nothing.
func (q *Query) Close() {
	for i := len(q.frames) - 1; i >= 0; i-- {
		q.frames[i].walker.cancel()
		q.c.PopVariable()
		q.unexplored.Set(q.frames[i].variable)
		q.binding.unset(q.frames[i].variable)
	}
	q.frames = nil
	q.started = true
	q.done = true
}

// All drains the query.
func (q *Query) All() ([]Binding, error) {
	defer q.Close()
	var out []Binding
	for q.Next() {
		out = append(out, q.Binding())
	}
	return out, q.Err()
}

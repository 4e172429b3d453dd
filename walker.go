package tribles

type walkerState byte

const (
	walkPath      walkerState = iota // descend while the constraint forces the next byte
	walkBranch                       // take the next candidate at the current depth
	walkBacktrack                    // pop back to the deepest depth with candidates left
	walkDone
)

// walker enumerates the values a constraint allows for the explored variable
// in ascending order, pushing and popping one byte at a time. At any time the
// constraint has exactly depth bytes pushed by the walker.
type walker struct {
	c          Constraint
	state      walkerState
	depth      int
	value      Value
	candidates [VALUE_LEN]ByteSet
	branches   ByteSet // depths whose candidates are not exhausted
}

func newWalker(c Constraint) *walker {
	return &walker{c: c, state: walkPath}
}

func (w *walker) push(b byte) {
	w.value[w.depth] = b
	w.c.PushByte(b)
	w.depth++
}

func (w *walker) pop() {
	w.depth--
	w.c.PopByte()
}

// next returns the next value, the constraint keeps all its bytes pushed until
// the following call.
func (w *walker) next() (Value, bool) {
	for {
		switch w.state {
		case walkPath:
			if w.depth == VALUE_LEN {
				w.state = walkBacktrack
				return w.value, true
			}
			if b, ok := w.c.PeekByte(); ok {
				w.push(b)
				continue
			}
			w.candidates[w.depth].SetAll()
			w.c.ProposeByte(&w.candidates[w.depth])
			w.state = walkBranch

		case walkBranch:
			b, ok := w.candidates[w.depth].Drain()
			if !ok {
				w.state = walkBacktrack
				continue
			}
			if w.candidates[w.depth].IsEmpty() {
				w.branches.Unset(byte(w.depth))
			} else {
				w.branches.Set(byte(w.depth))
			}
			w.push(b)
			w.state = walkPath

		case walkBacktrack:
			to, ok := w.branches.Prev(w.depth - 1)
			if !ok {
				w.cancel()
				return Value{}, false
			}
			for w.depth > int(to) {
				w.pop()
			}
			w.state = walkBranch

		case walkDone:
			return Value{}, false
		}
	}
}

// cancel pops every byte the walker pushed.
func (w *walker) cancel() {
	for w.depth > 0 {
		w.pop()
	}
	w.branches.Clear()
	w.state = walkDone
}

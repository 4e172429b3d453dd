package tribles

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	romeo, juliet = testId(1), testId(2)
	nameAttr      = testId(10)
	lovesAttr     = testId(11)
	knowsAttr     = testId(12)
	romeoName     = testValue(1)
	julietName    = testValue(2)
	loverTribles  = []Trible{NewTrible(romeo, nameAttr, romeoName), NewTrible(juliet, nameAttr, julietName), NewTrible(romeo, lovesAttr, IdValue(juliet)), NewTrible(juliet, lovesAttr, IdValue(romeo))}
)

// loversQuery joins lover and beloved by name: x loves y, x is called nx, y is called ny
func loversQuery(t *testing.T, set *TribleSet) (*IntersectionConstraint, []*TripleConstraint) {
	const x, y, nx, ny, loves, name = 0, 1, 2, 3, 4, 5
	var triples []*TripleConstraint
	for _, vars := range [][3]Variable{{x, loves, y}, {x, name, nx}, {y, name, ny}} {
		c, err := set.TripleConstraint(vars[0], vars[1], vars[2])
		require.NoError(t, err)
		triples = append(triples, c)
	}
	return NewIntersectionConstraint(
		triples[0], triples[1], triples[2],
		NewConstantConstraint(loves, IdValue(lovesAttr)),
		NewConstantConstraint(name, IdValue(nameAttr)),
	), triples
}

func TestQueryLovers(t *testing.T) {
	set, err := NewTribleSet().With(loverTribles...)
	require.NoError(t, err)
	c, triples := loversQuery(t, set)

	bindings, err := Find(c).All()
	require.NoError(t, err)
	require.Len(t, bindings, 2)

	pairs := map[[2]Value]bool{}
	for _, b := range bindings {
		nx, ok := b.Get(2)
		require.True(t, ok)
		ny, ok := b.Get(3)
		require.True(t, ok)
		pairs[[2]Value{nx, ny}] = true

		bound := b.Bound()
		require.Equal(t, 6, bound.Count())
		_, ok = b.Get(9)
		require.False(t, ok)
	}
	require.Equal(t, map[[2]Value]bool{{romeoName, julietName}: true, {julietName, romeoName}: true}, pairs)

	for _, tc := range triples {
		requireTripleReset(t, tc)
	}
	require.Empty(t, c.active)
}

func TestQueryClose(t *testing.T) {
	set, err := NewTribleSet().With(loverTribles...)
	require.NoError(t, err)
	c, triples := loversQuery(t, set)

	q := Find(c)
	require.True(t, q.Next())
	first := q.Binding()
	q.Close()
	require.False(t, q.Next())
	require.NoError(t, q.Err())

	// the binding handed out survives the query
	_, ok := first.Get(0)
	require.True(t, ok)

	for _, tc := range triples {
		requireTripleReset(t, tc)
	}
	require.Empty(t, c.active)

	bindings, err := Find(c).All()
	require.NoError(t, err)
	require.Len(t, bindings, 2, "a closed query leaves the constraint reusable")
	q.Close()
}

func TestQueryNoVariables(t *testing.T) {
	bindings, err := Find(NewIntersectionConstraint()).All()
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	bound := bindings[0].Bound()
	require.True(t, bound.IsEmpty())
}

func TestQueryEmpty(t *testing.T) {
	set, err := NewTribleSet().With(loverTribles...)
	require.NoError(t, err)
	c, err := set.TripleConstraint(0, 1, 2)
	require.NoError(t, err)
	bindings, err := Find(NewIntersectionConstraint(c, NewConstantConstraint(1, IdValue(knowsAttr)))).All()
	require.NoError(t, err)
	require.Empty(t, bindings)
	requireTripleReset(t, c)
}

// blockingConstraint never lets the query explore the variables in blocked
type blockingConstraint struct {
	Constraint
	blocked VariableSet
}

func (c blockingConstraint) Blocked() VariableSet { return c.blocked }

func TestQueryBlockedDeadEnd(t *testing.T) {
	set, err := NewTribleSet().With(loverTribles...)
	require.NoError(t, err)
	tc, err := set.TripleConstraint(0, 1, 2)
	require.NoError(t, err)

	var blocked VariableSet
	blocked.Set(2)
	q := Find(blockingConstraint{Constraint: tc, blocked: blocked})
	require.False(t, q.Next())
	require.ErrorIs(t, q.Err(), ErrBlockedDeadEnd)
	require.False(t, q.Next())
	requireTripleReset(t, tc)

	_, err = Find(blockingConstraint{Constraint: tc, blocked: tc.Variables()}).All()
	require.ErrorIs(t, err, ErrBlockedDeadEnd)
	requireTripleReset(t, tc)
}

// orderedConstraint makes the query explore variables by ascending rank
type orderedConstraint struct {
	Constraint
	rank map[Variable]uint64
}

func (c orderedConstraint) VariableCosts(v Variable) uint64 { return c.rank[v] }

func permutations(items []Variable, yield func([]Variable)) {
	if len(items) <= 1 {
		yield(items)
		return
	}
	for i := range items {
		items[0], items[i] = items[i], items[0]
		rest := append([]Variable(nil), items[1:]...)
		permutations(rest, func(p []Variable) {
			yield(append([]Variable{items[0]}, p...))
		})
		items[0], items[i] = items[i], items[0]
	}
}

func TestQueryTrianglesAnyOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	const people = 8
	knows := map[[2]int]bool{}
	var tribles []Trible
	for i := 0; i < 30; i++ {
		a, b := rng.Intn(people), rng.Intn(people)
		knows[[2]int{a, b}] = true
		tribles = append(tribles, NewTrible(testId(a+1), knowsAttr, IdValue(testId(b+1))))
	}
	for _, edge := range [][2]int{{0, 1}, {1, 2}, {0, 2}} { // at least one triangle
		knows[edge] = true
		tribles = append(tribles, NewTrible(testId(edge[0]+1), knowsAttr, IdValue(testId(edge[1]+1))))
	}
	set, err := NewTribleSet().With(tribles...)
	require.NoError(t, err)

	expected := map[[3]Id]bool{}
	for a := 0; a < people; a++ {
		for b := 0; b < people; b++ {
			for c := 0; c < people; c++ {
				if knows[[2]int{a, b}] && knows[[2]int{b, c}] && knows[[2]int{a, c}] {
					expected[[3]Id{testId(a + 1), testId(b + 1), testId(c + 1)}] = true
				}
			}
		}
	}
	require.NotEmpty(t, expected)

	const x, y, z = 0, 1, 2
	var members []Constraint
	var triples []*TripleConstraint
	for i, edge := range [][2]Variable{{x, y}, {y, z}, {x, z}} {
		attr := Variable(3 + i)
		tc, err := set.TripleConstraint(edge[0], attr, edge[1])
		require.NoError(t, err)
		triples = append(triples, tc)
		members = append(members, tc, NewConstantConstraint(attr, IdValue(knowsAttr)))
	}
	c := NewIntersectionConstraint(members...)

	orders := 0
	permutations([]Variable{0, 1, 2, 3, 4, 5}, func(order []Variable) {
		orders++
		rank := map[Variable]uint64{}
		for i, v := range order {
			rank[v] = uint64(2 + i)
		}
		bindings, err := Find(orderedConstraint{Constraint: c, rank: rank}).All()
		require.NoError(t, err)

		found := map[[3]Id]bool{}
		for _, b := range bindings {
			var triangle [3]Id
			for i, v := range []Variable{x, y, z} {
				value, ok := b.Get(v)
				require.True(t, ok)
				triangle[i], ok = value.Id()
				require.True(t, ok)
			}
			require.False(t, found[triangle], "%v yields duplicates", order)
			found[triangle] = true
		}
		require.Equal(t, expected, found, "order %v", order)
	})
	require.Equal(t, 720, orders)

	for _, tc := range triples {
		requireTripleReset(t, tc)
	}
	require.Empty(t, c.active)
}

func textValue(s string) (v Value) {
	copy(v[:], s)
	return
}

func TestQueryNamesAndTitles(t *testing.T) {
	titlesAttr := testId(13)
	set, err := NewTribleSet().With(
		NewTrible(romeo, nameAttr, textValue("Romeo")),
		NewTrible(romeo, titlesAttr, textValue("fool")),
		NewTrible(romeo, titlesAttr, textValue("prince")),
		NewTrible(romeo, lovesAttr, IdValue(juliet)),
		NewTrible(juliet, nameAttr, textValue("Juliet")),
		NewTrible(juliet, titlesAttr, textValue("the lady")),
		NewTrible(juliet, titlesAttr, textValue("princess")),
		NewTrible(juliet, lovesAttr, IdValue(romeo)),
	)
	require.NoError(t, err)
	require.Equal(t, uint64(8), set.Count())

	const e, nameA, name, titlesA, title = 0, 1, 2, 3, 4
	named, err := set.TripleConstraint(e, nameA, name)
	require.NoError(t, err)
	titled, err := set.TripleConstraint(e, titlesA, title)
	require.NoError(t, err)
	bindings, err := Find(NewIntersectionConstraint(
		named, titled,
		NewConstantConstraint(nameA, IdValue(nameAttr)),
		NewConstantConstraint(titlesA, IdValue(titlesAttr)),
	)).All()
	require.NoError(t, err)

	found := map[[2]Value]bool{}
	for _, b := range bindings {
		n, _ := b.Get(name)
		tt, _ := b.Get(title)
		found[[2]Value{n, tt}] = true
	}
	require.Len(t, bindings, 4)
	require.Equal(t, map[[2]Value]bool{
		{textValue("Romeo"), textValue("fool")}:      true,
		{textValue("Romeo"), textValue("prince")}:    true,
		{textValue("Juliet"), textValue("the lady")}: true,
		{textValue("Juliet"), textValue("princess")}: true,
	}, found)
}

// people draws n random facts about name, eye colour, age and last name, plus
// one blue eyed Ivan
func people(rng *rand.Rand, n int) (tribles []Trible, attrs [4]Id) {
	names := []string{"Ivan", "Olga", "Maria", "Pyotr"}
	eyes := []string{"blue", "brown", "green"}
	lastNames := []string{"Petrov", "Ivanova", "Smirnov", "Popov", "Sokolov"}
	attrs = [4]Id{testId(20), testId(21), testId(22), testId(23)}
	for i := 0; i < n; i++ {
		e := testId(100 + rng.Intn(60))
		var v Value
		a := rng.Intn(4)
		switch a {
		case 0:
			v = textValue(names[rng.Intn(len(names))])
		case 1:
			v = textValue(eyes[rng.Intn(len(eyes))])
		case 2:
			v = testValue(rng.Intn(6))
		case 3:
			v = textValue(lastNames[rng.Intn(len(lastNames))])
		}
		tribles = append(tribles, NewTrible(e, attrs[a], v))
	}
	ivan := testId(99)
	tribles = append(tribles,
		NewTrible(ivan, attrs[0], textValue("Ivan")),
		NewTrible(ivan, attrs[1], textValue("blue")),
		NewTrible(ivan, attrs[2], testValue(2)),
		NewTrible(ivan, attrs[3], textValue("Petrov")),
	)
	return
}

// blueEyedIvans evaluates the pattern with nested loops over the facts
func blueEyedIvans(tribles []Trible, attrs [4]Id, keep func(age, last Value) bool) map[[3]Value]bool {
	facts := map[Id]map[Id][]Value{}
	seen := map[Trible]bool{}
	for _, tr := range tribles {
		if seen[tr] {
			continue
		}
		seen[tr] = true
		if facts[tr.E()] == nil {
			facts[tr.E()] = map[Id][]Value{}
		}
		facts[tr.E()][tr.A()] = append(facts[tr.E()][tr.A()], tr.V())
	}
	has := func(vs []Value, want Value) bool {
		for _, v := range vs {
			if v == want {
				return true
			}
		}
		return false
	}
	out := map[[3]Value]bool{}
	for e, byAttr := range facts {
		if !has(byAttr[attrs[0]], textValue("Ivan")) || !has(byAttr[attrs[1]], textValue("blue")) {
			continue
		}
		for _, age := range byAttr[attrs[2]] {
			for _, last := range byAttr[attrs[3]] {
				if keep(age, last) {
					out[[3]Value{IdValue(e), age, last}] = true
				}
			}
		}
	}
	return out
}

// variables of the blue eyed Ivan pattern
const pe, pName, pEye, pAge, pLast Variable = 0, 1, 2, 3, 4
const pNameAttr, pEyeAttr, pAgeAttr, pLastAttr Variable = 5, 6, 7, 8

func blueEyedIvanQuery(t *testing.T, set *TribleSet, attrs [4]Id, extra ...Constraint) (*IntersectionConstraint, []*TripleConstraint) {
	var members []Constraint
	var triples []*TripleConstraint
	for i, vars := range [][2]Variable{{pNameAttr, pName}, {pEyeAttr, pEye}, {pAgeAttr, pAge}, {pLastAttr, pLast}} {
		tc, err := set.TripleConstraint(pe, vars[0], vars[1])
		require.NoError(t, err)
		triples = append(triples, tc)
		members = append(members, tc, NewConstantConstraint(vars[0], IdValue(attrs[i])))
	}
	members = append(members,
		NewConstantConstraint(pName, textValue("Ivan")),
		NewConstantConstraint(pEye, textValue("blue")),
	)
	return NewIntersectionConstraint(append(members, extra...)...), triples
}

func collectIvans(t *testing.T, c Constraint) map[[3]Value]bool {
	bindings, err := Find(c).All()
	require.NoError(t, err)
	found := map[[3]Value]bool{}
	for _, b := range bindings {
		var row [3]Value
		for i, v := range []Variable{pe, pAge, pLast} {
			value, ok := b.Get(v)
			require.True(t, ok)
			row[i] = value
		}
		require.False(t, found[row], "duplicate binding %v", row)
		found[row] = true
	}
	return found
}

func TestQueryJoinMatchesNestedLoops(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	tribles, attrs := people(rng, 1500)
	set, err := NewTribleSet().With(tribles...)
	require.NoError(t, err)

	expected := blueEyedIvans(tribles, attrs, func(_, _ Value) bool { return true })
	require.Contains(t, expected, [3]Value{IdValue(testId(99)), testValue(2), textValue("Petrov")})

	c, triples := blueEyedIvanQuery(t, set, attrs)
	require.Equal(t, expected, collectIvans(t, c), "cost driven order")

	// every order of the five pattern variables, after the attributes
	permutations([]Variable{pe, pName, pEye, pAge, pLast}, func(order []Variable) {
		rank := map[Variable]uint64{pNameAttr: 2, pEyeAttr: 3, pAgeAttr: 4, pLastAttr: 5}
		for i, v := range order {
			rank[v] = uint64(6 + i)
		}
		require.Equal(t, expected, collectIvans(t, orderedConstraint{Constraint: c, rank: rank}), "order %v", order)
	})

	// and a sample of orders over all nine variables
	all := []Variable{pe, pName, pEye, pAge, pLast, pNameAttr, pEyeAttr, pAgeAttr, pLastAttr}
	for i := 0; i < 100; i++ {
		rank := map[Variable]uint64{}
		for r, j := range rng.Perm(len(all)) {
			rank[all[j]] = uint64(2 + r)
		}
		require.Equal(t, expected, collectIvans(t, orderedConstraint{Constraint: c, rank: rank}))
	}

	for _, tc := range triples {
		requireTripleReset(t, tc)
	}
	require.Empty(t, c.active)
}

func TestQueryJoinWithRangeAndIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	tribles, attrs := people(rng, 1500)
	set, err := NewTribleSet().With(tribles...)
	require.NoError(t, err)

	lower, upper := testValue(1), testValue(3)
	lastNames := ValueTree(textValue("Petrov"), textValue("Popov"))
	expected := blueEyedIvans(tribles, attrs, func(age, last Value) bool {
		inRange := string(age[:]) >= string(lower[:]) && string(age[:]) <= string(upper[:])
		return inRange && lastNames.Has(last[:])
	})
	require.NotEmpty(t, expected)

	index, err := NewIndexConstraint(pLast, lastNames)
	require.NoError(t, err)
	c, triples := blueEyedIvanQuery(t, set, attrs, NewRangeConstraint(pAge, lower, upper), index)
	require.Equal(t, expected, collectIvans(t, c))

	permutations([]Variable{pe, pAge, pLast}, func(order []Variable) {
		rank := map[Variable]uint64{pNameAttr: 2, pEyeAttr: 3, pAgeAttr: 4, pLastAttr: 5, pName: 6, pEye: 7}
		for i, v := range order {
			rank[v] = uint64(8 + i)
		}
		require.Equal(t, expected, collectIvans(t, orderedConstraint{Constraint: c, rank: rank}), "order %v", order)
	})

	for _, tc := range triples {
		requireTripleReset(t, tc)
	}
	require.Empty(t, c.active)
}

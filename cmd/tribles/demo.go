package main

import "fmt"
import "io"
import "sort"

import "github.com/spf13/cobra"

import "github.com/deroproject/tribles"

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Store a few facts about Romeo and Juliet and query them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

type demoIds struct {
	name, loves, title tribles.Id
	romeo, juliet      tribles.Id
	nurse              tribles.Id
}

func demoSet() (*tribles.TribleSet, demoIds, error) {
	ids := demoIds{
		name: tribles.GenId(), loves: tribles.GenId(), title: tribles.GenId(),
		romeo: tribles.GenId(), juliet: tribles.GenId(), nurse: tribles.GenId(),
	}
	set, err := tribles.NewTribleSet().With(
		tribles.NewTrible(ids.romeo, ids.name, mustShortString("Romeo")),
		tribles.NewTrible(ids.romeo, ids.title, mustShortString("Montague")),
		tribles.NewTrible(ids.juliet, ids.name, mustShortString("Juliet")),
		tribles.NewTrible(ids.juliet, ids.title, mustShortString("Capulet")),
		tribles.NewTrible(ids.nurse, ids.name, mustShortString("Angélique")),
		tribles.NewTrible(ids.romeo, ids.loves, tribles.IdValue(ids.juliet)),
		tribles.NewTrible(ids.juliet, ids.loves, tribles.IdValue(ids.romeo)),
	)
	return set, ids, err
}

// query variables of the demo
const (
	lover tribles.Variable = iota
	beloved
	loverName
	belovedName
	lovesAttr
	loverNameAttr
	belovedNameAttr
)

// loveQuery finds the names of everybody who loves somebody, and whom.
func loveQuery(set *tribles.TribleSet, ids demoIds) (tribles.Constraint, error) {
	loves, err := set.TripleConstraint(lover, lovesAttr, beloved)
	if err != nil {
		return nil, err
	}
	loverNames, err := set.TripleConstraint(lover, loverNameAttr, loverName)
	if err != nil {
		return nil, err
	}
	belovedNames, err := set.TripleConstraint(beloved, belovedNameAttr, belovedName)
	if err != nil {
		return nil, err
	}
	return tribles.NewIntersectionConstraint(
		loves, loverNames, belovedNames,
		tribles.NewConstantConstraint(lovesAttr, tribles.IdValue(ids.loves)),
		tribles.NewConstantConstraint(loverNameAttr, tribles.IdValue(ids.name)),
		tribles.NewConstantConstraint(belovedNameAttr, tribles.IdValue(ids.name)),
	), nil
}

func runDemo(out io.Writer) error {
	set, ids, err := demoSet()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "tribles: %d\n", set.Count())

	c, err := loveQuery(set, ids)
	if err != nil {
		return err
	}
	bindings, err := tribles.Find(c).All()
	if err != nil {
		return err
	}
	var lines []string
	for _, b := range bindings {
		a, _ := b.Get(loverName)
		z, _ := b.Get(belovedName)
		lines = append(lines, fmt.Sprintf("%s loves %s", fromShortString(a), fromShortString(z)))
	}
	sort.Strings(lines) // ids are random, the query order is not stable between runs
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}

	names := tribles.ValueTree(mustShortString("Angélique"), mustShortString("Juliet"))
	who, err := tribles.NewIndexConstraint(loverName, names)
	if err != nil {
		return err
	}
	byName, err := set.TripleConstraint(lover, loverNameAttr, loverName)
	if err != nil {
		return err
	}
	bindings, err = tribles.Find(tribles.NewIntersectionConstraint(
		byName, who,
		tribles.NewConstantConstraint(loverNameAttr, tribles.IdValue(ids.name)),
	)).All()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "known by name: %d\n", len(bindings))
	return nil
}

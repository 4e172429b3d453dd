// Copyright dero developers

/*
Tribles in short is "a knowledge graph that fits in a value".

A trible is a 64 byte fact: a 16 byte entity id, a 16 byte attribute id and a 32 byte value. Sets of tribles are
immutable values which can be combined with set algebra and queried with conjunctive graph patterns.

	Tribles is built from
		1) PATCH, a persistent 256-way path compressed trie over fixed length keys
		2) a content hash on every node, so equal subtrees are recognised without visiting them
		3) count and segment count aggregates on every node, so cardinalities are free
		4) a six way permutation index over tribles (eav, eva, aev, ave, vea, vae)
		5) a byte level constraint protocol
		6) a depth first worst case optimal join driven by constraint cost estimates


	Features

		* Persistent trees, every Put returns a new version and all old versions stay valid
		* Batches mutate their own nodes in place for fast bulk inserts
		* Union, intersection, subtraction and symmetric difference skipping equal subtrees by hash
		* Diff between 2 trees in time proportional to the change
		* Iteration in both directions, uniform random sampling
		* Queries pull bindings lazily and can be closed at any point
		* No goroutines, no disk, no network. Trees are safe for concurrent readers


Eg. Minimal code to store facts and read them back (error checking is skipped)
	name, loves := tribles.GenId(), tribles.GenId()
	romeo, juliet := tribles.GenId(), tribles.GenId()

	set, _ := tribles.NewTribleSet().With(
		tribles.NewTrible(romeo, loves, tribles.IdValue(juliet)),
		tribles.NewTrible(juliet, loves, tribles.IdValue(romeo)),
	)

	const e, a, v = 0, 1, 2
	triple, _ := set.TripleConstraint(e, a, v)
	bindings, _ := tribles.Find(tribles.NewIntersectionConstraint(
		triple,
		tribles.NewConstantConstraint(a, tribles.IdValue(loves)),
	)).All()


Values are opaque to the core. Ids are stored in values with IdValue, everything else is encoded by the caller into
the 32 bytes, see cmd/tribles for a short string encoding.

*/
package tribles

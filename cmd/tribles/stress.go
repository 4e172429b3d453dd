package main

import "context"
import "encoding/binary"
import "log/slog"
import "math/rand/v2"
import "os"
import "runtime/pprof"
import "time"

import "github.com/spf13/cobra"
import "golang.org/x/xerrors"
import "gopkg.in/yaml.v3"

import "github.com/deroproject/tribles"

// workload describes a stress run, it can be loaded from a yaml file and
// overridden by flags.
type workload struct {
	Steps      int    `yaml:"steps"`            // 0 runs until interrupted
	Tribles    int    `yaml:"tribles_per_step"` // inserted by every step
	Entities   int    `yaml:"entities"`         // size of the entity pool
	Attributes int    `yaml:"attributes"`       // size of the attribute pool
	Seed       uint64 `yaml:"seed"`
	Query      bool   `yaml:"query"` // verify attribute counts with a query every step
}

func defaultWorkload() workload {
	return workload{Steps: 10, Tribles: 100000, Entities: 10000, Attributes: 16, Seed: 1, Query: true}
}

func loadWorkload(path string) (workload, error) {
	w := defaultWorkload()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, xerrors.Errorf("workload %s: %w", path, err)
	}
	return w, nil
}

func (w workload) validate() error {
	if w.Steps < 0 || w.Tribles < 1 || w.Entities < 1 || w.Attributes < 1 {
		return xerrors.Errorf("invalid workload %+v", w)
	}
	return nil
}

func newStressCommand() *cobra.Command {
	var config, cpuprofile string
	var steps, perStep int
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Insert pseudorandom tribles in steps and verify every step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWorkload(config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("steps") {
				w.Steps = steps
			}
			if cmd.Flags().Changed("tribles") {
				w.Tribles = perStep
			}
			if err := w.validate(); err != nil {
				return err
			}

			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return xerrors.Errorf("could not create CPU profile: %w", err)
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return xerrors.Errorf("could not start CPU profile: %w", err)
				}
				defer pprof.StopCPUProfile()
			}
			return runStress(cmd.Context(), w)
		},
	}
	cmd.Flags().StringVar(&config, "config", "", "yaml workload file")
	cmd.Flags().StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps, 0 runs until interrupted")
	cmd.Flags().IntVar(&perStep, "tribles", 0, "tribles inserted by every step")
	return cmd
}

type stress struct {
	w          workload
	rng        *rand.Rand
	entities   []tribles.Id
	attributes []tribles.Id
	set        *tribles.TribleSet
	written    uint64
}

func runStress(ctx context.Context, w workload) error {
	s := &stress{w: w, rng: rand.New(rand.NewPCG(w.Seed, w.Seed^0x5eed)), set: tribles.NewTribleSet()}
	s.entities = s.ids(w.Entities)
	s.attributes = s.ids(w.Attributes)
	slog.Info("stress test", "steps", w.Steps, "tribles_per_step", w.Tribles, "entities", w.Entities, "attributes", w.Attributes)

	for step := 0; w.Steps == 0 || step < w.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := s.step(); err != nil {
			return xerrors.Errorf("step %d: %w", step, err)
		}
		slog.Info("step", "step", step, "written", s.written, "stored", s.set.Count(), "took", time.Since(start))
	}
	slog.Info("completed", "written", s.written, "stored", s.set.Count())
	return nil
}

// ids are drawn from the seeded generator so that runs are reproducible
func (s *stress) ids(n int) []tribles.Id {
	out := make([]tribles.Id, n)
	for i := range out {
		binary.BigEndian.PutUint64(out[i][:8], s.rng.Uint64()|1)
		binary.BigEndian.PutUint64(out[i][8:], s.rng.Uint64())
	}
	return out
}

// each step inserts pseudorandom tribles, then verifies the new set against
// the previous one
func (s *stress) step() error {
	batch := make([]tribles.Trible, s.w.Tribles)
	for i := range batch {
		var v tribles.Value
		for j := 0; j < tribles.VALUE_LEN; j += 8 {
			binary.BigEndian.PutUint64(v[j:], s.rng.Uint64())
		}
		batch[i] = tribles.NewTrible(s.entities[s.rng.IntN(len(s.entities))], s.attributes[s.rng.IntN(len(s.attributes))], v)
	}

	next, err := s.set.With(batch...)
	if err != nil {
		return err
	}
	s.written += uint64(len(batch))

	for i := range batch {
		if !next.Has(batch[i]) {
			return xerrors.Errorf("trible %x missing after insert", batch[i][:])
		}
	}
	if !s.set.IsSubsetOf(next) {
		return xerrors.New("previous version is not contained in the new one")
	}

	// the new tribles on their own must account for the difference
	delta, err := tribles.NewTribleSet().With(batch...)
	if err != nil {
		return err
	}
	if !next.IsEqual(s.set.Union(delta)) {
		return xerrors.New("union of previous version and batch differs")
	}
	if got := next.Subtract(s.set); !got.IsSubsetOf(delta) {
		return xerrors.New("subtraction returned tribles outside of the batch")
	}

	k, _, err := next.Index(tribles.AEV).Random()
	if err != nil {
		return err
	}
	if !next.Has(tribles.Trible(k)) {
		return xerrors.New("random sample is not a member")
	}

	if s.w.Query {
		if err := s.verifyQuery(next, tribles.Trible(k).A()); err != nil {
			return err
		}
	}
	s.set = next
	return nil
}

// verifyQuery counts the tribles of one attribute with a query and with a
// plain scan.
func (s *stress) verifyQuery(set *tribles.TribleSet, attr tribles.Id) error {
	const e, a, v = 0, 1, 2
	triple, err := set.TripleConstraint(e, a, v)
	if err != nil {
		return err
	}
	q := tribles.Find(tribles.NewIntersectionConstraint(triple, tribles.NewConstantConstraint(a, tribles.IdValue(attr))))
	defer q.Close()
	var found uint64
	for q.Next() {
		found++
	}
	if err := q.Err(); err != nil {
		return err
	}

	var scanned uint64
	set.Index(tribles.EAV).Entries(func(k, _ []byte) bool {
		if tribles.Trible(k).A() == attr {
			scanned++
		}
		return true
	})
	if found != scanned {
		return xerrors.Errorf("query found %d tribles of attribute %s, scan %d", found, attr, scanned)
	}
	return nil
}

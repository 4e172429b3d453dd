package main

import "strings"

import "github.com/spf13/cobra"
import "golang.org/x/xerrors"

import "github.com/deroproject/tribles"

func newDotCommand() *cobra.Command {
	var ordering string
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Write one index of the demo facts as a graphviz dot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := parseOrdering(ordering)
			if err != nil {
				return err
			}
			set, _, err := demoSet()
			if err != nil {
				return err
			}
			return set.Index(o).Graph(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&ordering, "ordering", "eav", "index to export (eav, eva, aev, ave, vea, vae)")
	return cmd
}

func parseOrdering(s string) (tribles.Ordering, error) {
	for o := tribles.EAV; o <= tribles.VAE; o++ {
		if o.String() == strings.ToLower(s) {
			return o, nil
		}
	}
	return 0, xerrors.Errorf("unknown ordering %q", s)
}

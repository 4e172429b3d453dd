// tribles is a small operator tool around the tribles package: a stress
// tester, a demo and a dot exporter.
package main

import "context"
import "errors"
import "fmt"
import "log/slog"
import "os"
import "os/signal"
import "syscall"

import "github.com/lmittmann/tint"
import "github.com/mattn/go-colorable"
import "github.com/mattn/go-isatty"
import "github.com/spf13/cobra"

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "tribles: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	return newRootCommand(ll).ExecuteContext(ctx)
}

func newRootCommand(ll *slog.LevelVar) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "tribles",
		Short:         "Tools around the tribles triple store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				ll.Set(slog.LevelDebug)
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging, including query planning")

	cmd.AddCommand(newStressCommand())
	cmd.AddCommand(newDemoCommand())
	cmd.AddCommand(newDotCommand())
	return cmd
}

package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/bigcalc"
	"github.com/zephyrtronium/bigcalc/prefs"
)

func main() {
	log.SetFlags(0)
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// evalFlags are the flags that configure evaluation in every command.
type evalFlags struct {
	digits  int
	prec    uint
	radians bool
}

func (f *evalFlags) evaluator() *bigcalc.Evaluator {
	opts := []bigcalc.EvaluatorOption{bigcalc.Digits(f.digits), bigcalc.WorkingPrec(f.prec)}
	if f.radians {
		opts = append(opts, bigcalc.Radians())
	}
	return bigcalc.NewEvaluator(opts...)
}

func rootCmd() *cobra.Command {
	var ef evalFlags
	cmd := &cobra.Command{
		Use:   "bigcalc",
		Short: "Calculator with high precision decimal results",
		Long: "bigcalc is a calculator with high precision decimal results.\n" +
			"With no command, it runs in the terminal if standard input is a\n" +
			"terminal and reads keys from standard input otherwise.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return runTUI(cmd.Context(), ef.evaluator(), tuiFlags{})
			}
			return runKeys(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), ef.evaluator(), false)
		},
	}
	pf := cmd.PersistentFlags()
	pf.IntVar(&ef.digits, "digits", bigcalc.DefaultDigits, "significant digits in results")
	pf.UintVar(&ef.prec, "prec", bigcalc.DefaultPrec, "precision of calculations in bits")
	pf.BoolVar(&ef.radians, "radians", false, "trigonometric functions take radians instead of degrees")
	cmd.AddCommand(evalCmd(&ef), keysCmd(&ef), tuiCmd(&ef), serveCmd(&ef))
	return cmd
}

// nopCloser closes nothing.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the preference database at path, or an in-memory store if
// path is empty.
func openStore(ctx context.Context, path string) (prefs.Store, io.Closer, error) {
	if path == "" {
		return prefs.NewMemory(), nopCloser{}, nil
	}
	db, err := prefs.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return db, db, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/bigcalc"
	"github.com/zephyrtronium/bigcalc/panel"
	"github.com/zephyrtronium/bigcalc/tui"
)

type tuiFlags struct {
	themeFile string
	db        string
}

func tuiCmd(ef *evalFlags) *cobra.Command {
	var tf tuiFlags
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the calculator in the terminal",
		Long: "Run the calculator in the terminal. Click keys or type; Enter\n" +
			"evaluates, s toggles scientific keys, h toggles history, t toggles\n" +
			"the theme, and Esc or q quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), ef.evaluator(), tf)
		},
	}
	cmd.Flags().StringVar(&tf.themeFile, "theme-file", "", "TOML file of color palettes")
	cmd.Flags().StringVar(&tf.db, "db", "", "SQLite database for preferences (default none)")
	return cmd
}

func runTUI(ctx context.Context, ev *bigcalc.Evaluator, tf tuiFlags) error {
	palettes := tui.DefaultPalettes()
	if tf.themeFile != "" {
		var err error
		palettes, err = tui.LoadPalettes(tf.themeFile)
		if err != nil {
			return err
		}
	}
	store, closer, err := openStore(ctx, tf.db)
	if err != nil {
		return err
	}
	defer closer.Close()
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("couldn't open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("couldn't initialize terminal: %w", err)
	}
	defer s.Fini()
	// Log output would draw over the screen.
	p := panel.New(ctx, ev, store, log.New(io.Discard, "", 0))
	return tui.New(s, p, palettes).Run(ctx)
}

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/bigcalc/editor"
	"github.com/zephyrtronium/bigcalc/panel"
	"github.com/zephyrtronium/bigcalc/prefs"
)

func keysCmd(ef *evalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Feed keys from standard input to the calculator",
		Long: "Read lines of whitespace separated inputs from standard input and\n" +
			"print the display after each line. Inputs are key names like 7, +,\n" +
			"Enter, and Backspace; function names like sin; and actions like\n" +
			"mplus, mr, clear, and sci.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), ef.evaluator(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print whole frames as JSON")
	return cmd
}

// actions are the panel actions the keys command accepts by name.
var actions = []string{"clear", "back", "equals", "mc", "mr", "mplus", "mminus", "theme", "sci", "history"}

func runKeys(ctx context.Context, in io.Reader, out io.Writer, ev editor.Evaluator, asJSON bool) error {
	p := panel.New(ctx, ev, prefs.NewMemory(), log.Default())
	enc := json.NewEncoder(out)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		words := strings.Fields(sc.Text())
		if len(words) == 0 {
			continue
		}
		var f panel.Frame
		for _, word := range words {
			f = input(ctx, p, word)
		}
		if asJSON {
			if err := enc.Encode(f); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, f.Display)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}

// input applies one named input to p.
func input(ctx context.Context, p *panel.Panel, word string) panel.Frame {
	switch {
	case editor.IsFunction(word):
		return p.Press(ctx, panel.Control{Action: "func", Fn: word})
	case editor.Value(word).Kind != editor.None:
		return p.Press(ctx, panel.Control{Value: word})
	}
	for _, a := range actions {
		if word == a {
			return p.Press(ctx, panel.Control{Action: a})
		}
	}
	return p.Key(word)
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/bigcalc"
)

func evalCmd(ef *evalFlags) *cobra.Command {
	var (
		inname string
		echo   bool
	)
	cmd := &cobra.Command{
		Use:   "eval [expr...]",
		Short: "Evaluate expressions",
		Long: "Evaluate each argument as an expression. With no arguments, or with\n" +
			"--in, evaluate each line of the input as an expression.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := ef.evaluator()
			w := cmd.OutOrStdout()
			if inname != "" || len(args) == 0 {
				in, closer, err := infile(cmd, inname)
				if err != nil {
					return err
				}
				defer closer.Close()
				sc := bufio.NewScanner(in)
				for sc.Scan() {
					src := strings.TrimSpace(sc.Text())
					if src == "" {
						continue
					}
					evalOne(w, ev, src, echo)
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}
			for _, src := range args {
				evalOne(w, ev, src, echo)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", "input file, - for stdin (default stdin if no args given)")
	cmd.Flags().BoolVar(&echo, "echo", false, "print parse trees")
	return cmd
}

// evalOne prints the value of src, or the error evaluating it.
func evalOne(w io.Writer, ev *bigcalc.Evaluator, src string, echo bool) {
	e, err := ev.Parse(src)
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	if echo {
		fmt.Fprintf(w, "%v : ", e)
	}
	r, err := ev.EvalExpr(e)
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, ev.Format(r))
}

func infile(cmd *cobra.Command, inname string) (io.Reader, io.Closer, error) {
	if inname == "" || inname == "-" {
		return cmd.InOrStdin(), nopCloser{}, nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

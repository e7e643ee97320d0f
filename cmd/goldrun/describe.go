package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/cgtkit/goldrun"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <cgt file path>",
		Short:   "Print a summary of a compiled grammar's tables",
		Example: `  goldrun describe grammar.cgt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cgtBytes, err := ioutil.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read CGT file %s: %w", args[0], err)
	}
	tables, err := goldrun.LoadGrammar(cgtBytes)
	if err != nil {
		return fmt.Errorf("cannot load grammar: %w", err)
	}

	fmt.Fprintln(os.Stdout, tables.Describe())
	if name, ok := tables.Params["Name"]; ok {
		fmt.Fprintf(os.Stdout, "name=%v\n", name)
	}
	for _, w := range tables.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	return nil
}

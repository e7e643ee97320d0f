package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goldrun",
	Short: "Run a GOLD Parsing System grammar against a text stream",
	Long: `goldrun loads a precompiled GOLD grammar table (CGT) and uses it to
tokenize and parse a text stream into a concrete parse tree. It is a
runtime engine only: grammars are authored and compiled elsewhere.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"runtime/debug"

	"github.com/cgtkit/goldrun"
	"github.com/cgtkit/goldrun/lexer"
	"github.com/cgtkit/goldrun/parser"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
	quiet  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <cgt file path>",
		Short:   "Parse a text stream against a compiled grammar",
		Example: `  cat src | goldrun parse grammar.cgt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.quiet = cmd.Flags().Bool("quiet", false, "suppress the parse tree, report only errors")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			retErr = fmt.Errorf("an unexpected error occurred: %v", v)
		} else {
			retErr = err
		}
		fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
	}()

	cgtBytes, err := ioutil.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read CGT file %s: %w", args[0], err)
	}
	tables, err := goldrun.LoadGrammar(cgtBytes)
	if err != nil {
		return fmt.Errorf("cannot load grammar: %w", err)
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	input, err := ioutil.ReadAll(src)
	if err != nil {
		return fmt.Errorf("cannot read source: %w", err)
	}

	tree, err := goldrun.ParseString(string(input), tables)
	if err != nil {
		printParseError(err)
		return fmt.Errorf("parse failed")
	}

	if !*parseFlags.quiet {
		parser.PrintTree(os.Stdout, tree)
	}
	return nil
}

// printParseError renders a lexer, group, or parser error per the result
// discriminators in the engine's external interface: a lexer error carries
// only a position, a group error additionally names the unterminated
// group, and a parser error carries the offending token and the stack.
func printParseError(err error) {
	switch e := err.(type) {
	case *lexer.LexError:
		fmt.Fprintf(os.Stderr, "lexical error at line %d, column %d\n", e.Row+1, e.Col+1)
	case *lexer.GroupError:
		fmt.Fprintf(os.Stderr, "unterminated group %q at line %d, column %d\n", e.Group.Name, e.Row+1, e.Col+1)
	case *parser.SyntaxError:
		fmt.Fprintf(os.Stderr, "syntax error: unexpected %s at byte offset %d\n", e.LastToken.Symbol.Mangled(), e.LastToken.Position)
	default:
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}

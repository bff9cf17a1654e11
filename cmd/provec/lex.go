package main

import (
	"fmt"
	"os"

	"github.com/proveland/prove/internal/lexer"
	"github.com/proveland/prove/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexOnlyDiag bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a prove file and print the resulting tokens",
	Long: `lex tokenizes a prove source file and prints the resulting token
stream. Useful for debugging the lexer and understanding how indentation
and string interpolation are scanned.

Examples:
  provec lex hello.prv
  provec lex --show-pos hello.prv`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyDiag, "only-errors", false, "show only lexer diagnostics, no tokens")
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	src, err := readSource(filename)
	if err != nil {
		return err
	}

	tokens, diags := lexer.New(src, filename).Lex()

	if !lexOnlyDiag {
		for _, tok := range tokens {
			printToken(tok)
		}
	}

	if len(diags.All()) > 0 {
		fmt.Fprint(os.Stderr, renderDiagnostics(diags, src, true))
		fmt.Fprintln(os.Stderr)
	}
	if diags.HasErrors() {
		return fmt.Errorf("lexing failed")
	}
	return nil
}

func printToken(tok token.Token) {
	output := fmt.Sprintf("[%-14s]", tok.Kind)
	if tok.Lexeme == "" {
		output += fmt.Sprintf(" %s", tok.Kind)
	} else {
		output += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%d:%d", tok.Span.StartLine, tok.Span.StartCol)
	}
	fmt.Println(output)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkVerbose bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run lex, parse, check, and proof verification without emitting C",
	Long: `check runs the front end of the pipeline (lex, parse, check, verify
proof obligations) and reports every diagnostic, without emitting C. This
is useful for editor integration and CI gates that only care whether a
source file is well-formed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "verbose output")
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	result, err := runFrontend(src, filename, checkVerbose)
	if err != nil {
		return err
	}

	if len(result.diags.All()) > 0 {
		fmt.Fprint(os.Stderr, renderDiagnostics(result.diags, src, true))
		fmt.Fprintln(os.Stderr)
	}
	if result.diags.HasErrors() {
		return fmt.Errorf("check failed with %d error(s)", countErrors(result))
	}

	fmt.Printf("%s: OK\n", filename)
	return nil
}

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/proveland/prove/internal/config"
	"github.com/proveland/prove/internal/source"
	"github.com/spf13/cobra"
)

var (
	buildOutput  string
	buildRun     bool
	buildCC      string
	buildNoOpt   bool
	buildVerbose bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a prove source file to C",
	Long: `build runs the full pipeline (lex, parse, check, verify proof
obligations, optimize, emit) over a prove source file and writes the
generated C translation unit next to it.

Examples:
  # Emit hello.c next to hello.prv
  provec build hello.prv

  # Emit to a specific path
  provec build hello.prv -o out/hello.c

  # Emit, then compile and run the result with cc
  provec build hello.prv --run`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (default: <input>.c)")
	buildCmd.Flags().BoolVar(&buildRun, "run", false, "compile the emitted C with cc and run the binary")
	buildCmd.Flags().StringVar(&buildCC, "cc", "", "C compiler to invoke with --run (default: cc, or prove.toml's build.target)")
	buildCmd.Flags().BoolVar(&buildNoOpt, "no-optimize", false, "skip the optimizer pass")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "verbose output")
}

func runBuild(_ *cobra.Command, args []string) error {
	filename := args[0]

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	if buildVerbose {
		fmt.Fprintf(os.Stderr, "Building %s...\n", filename)
	}

	result, err := runFrontend(src, filename, buildVerbose)
	if err != nil {
		return err
	}

	if len(result.diags.All()) > 0 {
		fmt.Fprint(os.Stderr, renderDiagnostics(result.diags, src, true))
		fmt.Fprintln(os.Stderr)
	}
	if result.diags.HasErrors() {
		return fmt.Errorf("build failed with %d error(s)", countErrors(result))
	}

	cSource := emitC(result, buildNoOpt)

	outFile := buildOutput
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".c"
		} else {
			outFile = filename + ".c"
		}
	}

	if err := os.WriteFile(outFile, []byte(cSource), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if buildVerbose {
		fmt.Fprintf(os.Stderr, "C written to %s (%d bytes)\n", outFile, len(cSource))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}

	if buildRun {
		return compileAndRun(outFile, filename)
	}
	return nil
}

// compileAndRun shells out to a C compiler and runs the produced binary
// when -run is passed. This is intentionally minimal — no flag
// passthrough, no caching of the compiled binary.
func compileAndRun(cFile, sourceFile string) error {
	cc := buildCC
	if cc == "" {
		if cfgPath, err := config.Find(filepath.Dir(sourceFile)); err == nil {
			if cfg, err := config.Load(cfgPath); err == nil && cfg.Build.Target != "" && cfg.Build.Target != "native" {
				cc = cfg.Build.Target
			}
		}
	}
	if cc == "" {
		cc = "cc"
	}

	binary := strings.TrimSuffix(cFile, filepath.Ext(cFile))
	compile := exec.Command(cc, cFile, "-o", binary)
	compile.Stdout = os.Stdout
	compile.Stderr = os.Stderr
	if err := compile.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", cc, err)
	}

	run := exec.Command(binary)
	run.Stdout = os.Stdout
	run.Stderr = os.Stderr
	run.Stdin = os.Stdin
	return run.Run()
}

func countErrors(result *pipelineResult) int {
	n := 0
	for _, d := range result.diags.All() {
		if d.Severity == source.Error {
			n++
		}
	}
	return n
}

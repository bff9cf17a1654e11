package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/checker"
	"github.com/proveland/prove/internal/emitter"
	"github.com/proveland/prove/internal/lexer"
	"github.com/proveland/prove/internal/optimizer"
	"github.com/proveland/prove/internal/parser"
	"github.com/proveland/prove/internal/proof"
	"github.com/proveland/prove/internal/source"
)

// pipelineResult carries every stage's diagnostics (in the fixed lex, parse,
// check, proof order required by "Ordering guarantees") plus the
// checked module and its context, so callers can render diagnostics and
// then decide whether to proceed to optimize/emit.
type pipelineResult struct {
	module *ast.Module
	ctx    *checker.Context
	diags  *source.Bag
}

// runFrontend runs lex -> parse -> check -> proof over src (file, for
// diagnostic spans) and returns every diagnostic in source-stage order.
func runFrontend(src, file string, verbose bool) (*pipelineResult, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	all := &source.Bag{}

	logger.Debug("lexing", "file", file)
	tokens, lexDiags := lexer.New(src, file).Lex()
	all.Extend(lexDiags)

	logger.Debug("parsing", "file", file)
	p := parser.New(tokens, file)
	module := p.ParseModule()
	all.Extend(p.Diagnostics())

	logger.Debug("checking", "file", file)
	ctx := checker.Check(module)
	all.Extend(ctx.Diagnostics)

	logger.Debug("verifying proof obligations", "file", file)
	proofDiags := &source.Bag{}
	proof.Verify(module, proofDiags)
	all.Extend(proofDiags)

	return &pipelineResult{module: module, ctx: ctx, diags: all}, nil
}

// emitC runs the optimizer (unless skipOptimize) and emits C source for a
// checked, error-free module.
func emitC(result *pipelineResult, skipOptimize bool) string {
	module := result.module
	if !skipOptimize {
		module = optimizer.Optimize(module)
	}
	return emitter.New(module, result.ctx.Functions, result.ctx.Types).Emit()
}

func renderDiagnostics(diags *source.Bag, src string, color bool) string {
	return source.NewRenderer(color).RenderAll(diags.All(), src)
}

func readSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

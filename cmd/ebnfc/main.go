// Command ebnfc compiles an EBNF-variant grammar, read from standard
// input, into a static parsing table, emitted as either a C
// header/implementation pair or a NASM include/source pair.
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/canon"
	"github.com/ebnfc/ebnfc/codegen"
	"github.com/ebnfc/ebnfc/codegen/cemit"
	"github.com/ebnfc/ebnfc/codegen/nasmemit"
	"github.com/ebnfc/ebnfc/ebnfparse"
	"github.com/ebnfc/ebnfc/internal/config"
	"github.com/ebnfc/ebnfc/internal/diag"
	"github.com/ebnfc/ebnfc/layout"
)

// stdinSourceName is the name attributed to positions in errors, since
// the grammar is always read from standard input.
const stdinSourceName = "<stdin>"

var version = "dev"

var (
	treeFlag    bool
	asmFlag     bool
	verboseFlag bool
	configFlag  string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	return execute(rootCmd, os.Stderr)
}

// execute runs cmd and, on failure, logs the error to errOut before
// reporting the process exit code, per §7's requirement that usage,
// lex/parse, and semantic errors are reported to stderr.
func execute(cmd *cobra.Command, errOut io.Writer) int {
	if err := cmd.Execute(); err != nil {
		diag.New(errOut, verboseFlag).Fail(err)
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ebnfc <file-stem>",
		Short: "ebnfc compiles an EBNF grammar into a static parsing table",
		Long: `ebnfc reads a grammar written in a small EBNF variant from standard
input and emits a static parsing table describing it: a C header and
implementation by default, or a NASM include and source pair with
--asm.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			verbose := config.ApplyBool(cmd.Flags().Changed("verbose"), verboseFlag, cfg.Verbose, false)
			asm := config.ApplyBool(cmd.Flags().Changed("asm"), asmFlag, cfg.Asm, false)
			logger := diag.New(errOut, verbose)

			stem := args[0]

			return compile(cmd.InOrStdin(), out, logger, stem, treeFlag, asm)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVarP(&treeFlag, "tree", "t", false, "dump the parsed AST and exit, before canonicalization")
	rootCmd.Flags().BoolVarP(&asmFlag, "asm", "a", false, "emit NASM include/source instead of C header/implementation")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "log each compiler phase")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "path to an .ebnfc.yaml config file (default: ./.ebnfc.yaml if present)")

	return rootCmd
}

// compile runs the full front-end-to-back-end pipeline against grammar
// text read from in. When tree is true, it dumps the parsed AST to out
// and returns before canonicalization, matching the original tool's
// --tree behavior of showing the tree exactly as parsed, deduplication
// and layout not yet applied.
func compile(in io.Reader, out io.Writer, logger *diag.Logger, stem string, tree, asm bool) error {
	logger.Debugf("file stem is '%s'", stem)

	logger.Phase("scan")
	logger.Phase("parse")
	root, err := ebnfparse.Parse(stdinSourceName, in)
	if err != nil {
		return err
	}

	if tree {
		ast.Dump(out, root)
		return nil
	}

	logger.Phase("canonicalize")
	canon.Run(root)

	logger.Phase("layout")
	laid := layout.Run(root)

	res, err := codegen.Build(root, laid)
	if err != nil {
		return err
	}

	logger.Phase("emit")
	if asm {
		return emitNASM(stem, res)
	}
	return emitC(stem, res)
}

func emitC(stem string, res *codegen.Result) error {
	hdrFile := stem + ".h"
	implFile := stem + ".c"

	hdr, err := os.Create(hdrFile)
	if err != nil {
		return err
	}
	defer hdr.Close()
	impl, err := os.Create(implFile)
	if err != nil {
		return err
	}
	defer impl.Close()

	return cemit.Emit(hdr, impl, stem, filepath.Base(hdrFile), res)
}

func emitNASM(stem string, res *codegen.Result) error {
	incFile := stem + ".inc"
	srcFile := stem + ".nasm"

	inc, err := os.Create(incFile)
	if err != nil {
		return err
	}
	defer inc.Close()
	src, err := os.Create(srcFile)
	if err != nil {
		return err
	}
	defer src.Close()

	return nasmemit.Emit(inc, src, stem, filepath.Base(incFile), res)
}

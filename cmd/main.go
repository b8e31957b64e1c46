package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.kaleido.dev/pkg"
)

var errUnitsFailed = errors.New("some units failed to compile")

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var (
		cfgFile    string
		emit       string
		anonPrefix string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "kaleido [file]",
		Short:         "Parse Kaleidoscope source into an AST or LLVM IR",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := kaleido.LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintln(errOut, err)
				return err
			}

			if cmd.Flags().Changed("emit") {
				cfg.Emit = kaleido.Emit(emit)
			}
			if cmd.Flags().Changed("anon-prefix") {
				cfg.AnonPrefix = anonPrefix
			}
			if verbose {
				cfg.Verbose = true
			}

			if err := cfg.Validate(); err != nil {
				fmt.Fprintln(errOut, err)
				return err
			}

			c := kaleido.NewCompiler(cfg, newLogger(cfg, errOut), out, errOut)

			var prog *kaleido.Program
			if len(args) == 1 {
				prog, err = c.Compile(args[0])
			} else {
				prog, err = c.CompileFromReader(in)
			}

			if err != nil {
				fmt.Fprintln(errOut, "Fatal:", err)
				return err
			}

			if len(prog.Errors) != 0 {
				return errUnitsFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "TOML config file")
	cmd.Flags().StringVar(&emit, "emit", string(kaleido.EmitNone), "output to print: none, ast or ir")
	cmd.Flags().StringVar(&anonPrefix, "anon-prefix", kaleido.DefaultAnonPrefix, "name prefix for top-level expressions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every parsed unit")

	return cmd
}

func newLogger(cfg *kaleido.Config, w io.Writer) *slog.Logger {
	if !cfg.Verbose {
		return nil
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

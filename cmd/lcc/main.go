// Command lcc runs the macro preprocessor over a C source file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lcc-lang/lcc/pkg/preproc"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	defineFlags   []string
	undefineFlags []string
	includePaths  []string
	systemPaths   []string
	useExternalPP bool
	outputPath    string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lcc [file]",
		Short: "lcc preprocesses C source, expanding object-like and function-like macros",
		Long: `lcc is a standalone C preprocessor. It expands #define and #undef
directives and the macros they install, leaving everything else untouched.
It does not support #include or conditional compilation; pass
--external-cpp to delegate the whole job to the system cc/gcc/clang
preprocessor instead.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPreprocess(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringArrayVarP(&defineFlags, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	rootCmd.Flags().StringArrayVarP(&undefineFlags, "undefine", "U", nil, "Undefine macro")
	rootCmd.Flags().StringArrayVarP(&includePaths, "include", "I", nil, "Add directory to include search path (external preprocessor only)")
	rootCmd.Flags().StringArrayVar(&systemPaths, "isystem", nil, "Add directory to system include search path (external preprocessor only)")
	rootCmd.Flags().BoolVar(&useExternalPP, "external-cpp", false, "Use the system cc/gcc/clang preprocessor instead of the internal one")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write preprocessed output to this file instead of stdout")

	return rootCmd
}

func buildPreprocessorOptions() *preproc.Options {
	opts := &preproc.Options{
		IncludePaths: includePaths,
		SystemPaths:  systemPaths,
		Defines:      make(map[string]string),
		Undefines:    undefineFlags,
		UseExternal:  useExternalPP,
	}
	for _, d := range defineFlags {
		if idx := strings.Index(d, "="); idx >= 0 {
			opts.Defines[d[:idx]] = d[idx+1:]
		} else {
			opts.Defines[d] = ""
		}
	}
	return opts
}

func doPreprocess(filename string, out, errOut io.Writer) error {
	content, err := preproc.Preprocess(filename, buildPreprocessorOptions())
	if err != nil {
		fmt.Fprintf(errOut, "lcc: preprocessing error: %v\n", err)
		return err
	}

	if outputPath == "" {
		fmt.Fprint(out, content)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		fmt.Fprintf(errOut, "lcc: error writing %s: %v\n", outputPath, err)
		return err
	}
	return nil
}

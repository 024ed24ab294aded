package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errFailed is returned after the failure has been reported, so that the
// process exits non-zero without printing it again.
var errFailed = errors.New("failed")

type rootOptions struct {
	configPath     string
	color          string
	verbose        bool
	maxDiagnostics int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "lifecycle-generator",
		Short: "Generate constructor, dispose and finalizer members from annotated methods",
		Long: `lifecycle-generator reads a symbol model (YAML or msgpack) and generates, for every
class declaring lifecycle methods, a partial-class fragment wiring them into
construction, disposal and finalization.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default "+defaultConfigHint+")")
	flags.StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	flags.IntVar(&opts.maxDiagnostics, "max-diagnostics", 100, "maximum number of diagnostics to show (0 for all)")

	root.AddCommand(newGenCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newExplainCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

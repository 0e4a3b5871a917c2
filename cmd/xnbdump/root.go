package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/relicdump/xnb"
	"github.com/relicdump/xnb/dump"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	maxDumpBytes int
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "xnbdump <file.xnb>",
	Short: "Parse an XNB asset container and print its decoded structure",
	Long: `xnbdump parses the header, type manifest, primary object and
shared-resource tail of an XNB file - the compiled binary asset
container produced by the XNA/MonoGame content pipeline - and prints
everything it decodes as an indented listing.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.Flags().IntVar(&maxDumpBytes, "max-dump-bytes", dump.DefaultMaxDumpBytes,
		"maximum number of raw blob bytes to render before collapsing to a byte count")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log Phase H warnings (unknown platform, unexpected version) and raise logging to debug level")
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	log, err := newLogger(verbose)
	if err != nil {
		return errors.Wrap(err, "constructing logger")
	}
	defer log.Sync() //nolint:errcheck

	cfg := &xnb.Config{MaxDumpBytes: maxDumpBytes}
	cr := xnb.NewContentReader(f, cfg, log)

	if err := cr.Parse(cmd.OutOrStdout()); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return cfg.Build()
}

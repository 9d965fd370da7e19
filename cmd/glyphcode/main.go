// Command glyphcode renders, inspects, verifies and serves pattern codes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/glyphcode/internal/config"
	"github.com/ledgerline/glyphcode/internal/logging"

	// Register all document writers.
	_ "github.com/ledgerline/glyphcode/raster"
	_ "github.com/ledgerline/glyphcode/svg"
	_ "github.com/ledgerline/glyphcode/text"
)

// app carries state shared by every subcommand once the root command's
// PersistentPreRunE has run.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "glyphcode",
		Short: "Deterministic 21x21 pattern codes",
		Long: `glyphcode turns any string into a fixed 21x21 pattern that looks like a
small 2D barcode, and renders it as SVG, PNG, text or JSON.

The pattern is decorative: it carries no error correction and cannot be
scanned by barcode readers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config %s: %w", a.configPath, err)
			}
			a.cfg = cfg

			a.logger, err = logging.New(cfg.Logging, a.verbose)
			if err != nil {
				return err
			}
			a.logger.Debug("config loaded", zap.String("path", a.configPath))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "glyphcode.yaml", "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newRenderCmd(),
		a.newMatrixCmd(),
		a.newVerifyCmd(),
		a.newServeCmd(),
		a.newPreviewCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

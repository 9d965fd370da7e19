package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/glyphcode/raster"
)

// errMismatch reports that at least one image did not match its value.
var errMismatch = errors.New("verification failed")

func (a *app) newVerifyCmd() *cobra.Command {
	var value string
	var maxShown int
	cmd := &cobra.Command{
		Use:   "verify --value VALUE IMAGE...",
		Short: "Check rendered images against the matrix of a value",
		Long: `Reads rendered images (PNG, JPEG, GIF) back into a matrix by sampling
cell centers and compares them with the matrix generated for --value. Cells
hidden by the logo patch are skipped. Colors and the logo size come from the
config and must match the ones used to render.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := false
			for _, path := range args {
				mismatches, err := a.verifyFile(path, value)
				switch {
				case err != nil:
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %v\n", path, err)
					failed = true
				case len(mismatches) == 0:
					fmt.Fprintf(out, "%s: ok\n", path)
				default:
					fmt.Fprintf(out, "%s: %d mismatching cells\n", path, len(mismatches))
					for i, m := range mismatches {
						if i == maxShown {
							fmt.Fprintf(out, "  ...\n")
							break
						}
						fmt.Fprintf(out, "  (%d,%d) want dark=%t\n", m.X, m.Y, m.Want)
					}
					failed = true
				}
			}
			if failed {
				return errMismatch
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "value the images were rendered from")
	cmd.Flags().IntVar(&maxShown, "max-shown", 10, "mismatching cells listed per image")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func (a *app) verifyFile(path, value string) ([]raster.Mismatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	a.logger.Debug("verifying image",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()))
	return raster.Verify(img, value, a.cfg.EncodeOptions())
}

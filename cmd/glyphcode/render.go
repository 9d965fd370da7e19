package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	glyphcode "github.com/ledgerline/glyphcode"
	"github.com/ledgerline/glyphcode/charset"
)

type renderFlags struct {
	format    string
	size      float64
	out       string
	fg        string
	bg        string
	logoSize  float64
	logoMark  string
	quietZone int
	input     string
	charset   string
}

func (a *app) newRenderCmd() *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [value]",
		Short: "Render the code for a value",
		Long: `Renders the code for VALUE, or for the contents of --input, and writes it
to stdout or --out. Defaults come from the render section of the config.

Example:
  glyphcode render --format png --size 420 --out code.png "XJO-1"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, f, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", "", "output format: svg, png, text or json")
	flags.Float64VarP(&f.size, "size", "s", 0, "canvas side in output units")
	flags.StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
	flags.StringVar(&f.fg, "fg", "", "foreground color (#rrggbb)")
	flags.StringVar(&f.bg, "bg", "", "background color (#rrggbb)")
	flags.Float64Var(&f.logoSize, "logo-size", 0, "logo patch side; negative disables the patch")
	flags.StringVar(&f.logoMark, "logo-mark", "", "text drawn inside the logo patch")
	flags.IntVar(&f.quietZone, "quiet-zone", 0, "light cells around text output")
	flags.StringVar(&f.input, "input", "", "read the value from a file instead of an argument")
	flags.StringVar(&f.charset, "charset", "", "charset of --input (guessed when empty)")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, f *renderFlags, args []string) error {
	value, err := readValue(args, f.input, f.charset)
	if err != nil {
		return err
	}

	rc := a.cfg.Render
	opts := a.cfg.EncodeOptions()
	flags := cmd.Flags()
	if flags.Changed("format") {
		rc.Format = f.format
	}
	if flags.Changed("size") {
		rc.Size = f.size
	}
	if flags.Changed("fg") {
		opts.Foreground = f.fg
	}
	if flags.Changed("bg") {
		opts.Background = f.bg
	}
	if flags.Changed("logo-size") {
		opts.LogoSize = f.logoSize
	}
	if flags.Changed("logo-mark") {
		opts.LogoMark = f.logoMark
	}
	if flags.Changed("quiet-zone") {
		opts.QuietZone = f.quietZone
	}

	format, err := glyphcode.ParseFormat(rc.Format)
	if err != nil {
		return err
	}

	a.logger.Debug("rendering",
		zap.String("format", format.String()),
		zap.Float64("size", rc.Size),
		zap.Int("value_bytes", len(value)))

	var buf bytes.Buffer
	if err := glyphcode.Encode(&buf, value, format, rc.Size, opts); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if f.out == "" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(f.out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Info("wrote code", zap.String("path", f.out), zap.String("format", format.String()))
	return nil
}

// readValue returns the single positional argument, or the decoded contents
// of input when it is set.
func readValue(args []string, input, name string) (string, error) {
	switch {
	case input != "" && len(args) > 0:
		return "", fmt.Errorf("give either a value or --input, not both")
	case input != "":
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return charset.Decode(data, name)
	case len(args) == 1:
		return args[0], nil
	}
	return "", fmt.Errorf("missing value")
}

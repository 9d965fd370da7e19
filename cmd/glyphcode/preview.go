package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	glyphcode "github.com/ledgerline/glyphcode"
	"github.com/ledgerline/glyphcode/encoder"
	"github.com/ledgerline/glyphcode/internal/preview"
)

func (a *app) newPreviewCmd() *cobra.Command {
	var accent string
	cmd := &cobra.Command{
		Use:   "preview VALUE",
		Short: "Show the matrix in the terminal",
		Long:  "Draws the matrix with half-block characters. Press Esc, q or Ctrl-C to quit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.previewOptions(args[0], accent)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize terminal: %w", err)
			}
			defer screen.Fini()
			return preview.Run(screen, encoder.Generate(args[0]), opts)
		},
	}
	cmd.Flags().StringVar(&accent, "accent", "", "color for the finder patterns (#rrggbb)")
	return cmd
}

func (a *app) previewOptions(value, accent string) (*preview.Options, error) {
	ro, err := a.cfg.EncodeOptions().RenderOptions()
	if err != nil {
		return nil, err
	}
	opts := &preview.Options{
		Foreground: ro.Foreground,
		Background: ro.Background,
		Title:      fmt.Sprintf("%s  (checksum %d, q to quit)", value, encoder.Checksum(value)),
	}
	if accent != "" {
		if opts.Accent, err = glyphcode.ParseColor(accent); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

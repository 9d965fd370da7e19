package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/glyphcode/encoder"
)

func (a *app) newMatrixCmd() *cobra.Command {
	var input, name string
	var rows bool
	cmd := &cobra.Command{
		Use:   "matrix [value]",
		Short: "Print the raw matrix, checksum and dark cell count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := readValue(args, input, name)
			if err != nil {
				return err
			}
			m := encoder.Generate(value)
			out := cmd.OutOrStdout()
			if rows {
				for _, row := range m.Rows() {
					fmt.Fprintln(out, row)
				}
			} else {
				fmt.Fprint(out, m.String())
			}
			fmt.Fprintf(out, "checksum: %d\ndark: %d/%d\n", encoder.Checksum(value), m.DarkCount(), m.Dimension()*m.Dimension())
			return nil
		},
	}
	cmd.Flags().BoolVar(&rows, "rows", false, "print rows of 1 and 0 instead of blocks")
	cmd.Flags().StringVar(&input, "input", "", "read the value from a file instead of an argument")
	cmd.Flags().StringVar(&name, "charset", "", "charset of --input (guessed when empty)")
	return cmd
}

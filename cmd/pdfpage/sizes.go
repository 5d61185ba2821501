package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdfpage/pages"
)

type sizeInfo struct {
	Name   string  `json:"name" yaml:"name"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func newSizesCmd(a *app) *cobra.Command {
	var landscape bool

	cmd := &cobra.Command{
		Use:   "sizes [name...]",
		Short: "List the standard page size presets in points",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := pages.PageSizes()
			if len(args) > 0 {
				presets = presets[:0:0]
				for _, name := range args {
					size, ok := pages.ParsePageSize(name)
					if !ok {
						return fmt.Errorf("unknown page size %q", name)
					}
					presets = append(presets, size)
				}
			}

			infos := make([]sizeInfo, 0, len(presets))
			for _, size := range presets {
				r := pages.StandardPageSize(size, landscape)
				infos = append(infos, sizeInfo{Name: size.String(), Width: r.Width, Height: r.Height})
			}

			return a.render(cmd.OutOrStdout(), infos, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tWIDTH\tHEIGHT")
				for _, info := range infos {
					fmt.Fprintf(tw, "%s\t%g\t%g\n", info.Name, info.Width, info.Height)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVarP(&landscape, "landscape", "l", false, "swap width and height")
	return cmd
}

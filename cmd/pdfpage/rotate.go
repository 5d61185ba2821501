package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRotateCmd(a *app) *cobra.Command {
	var (
		number, degrees int
		write           string
	)

	cmd := &cobra.Command{
		Use:   "rotate <graph.json>",
		Short: "Set the rotation of a page (0, 90, 180 or 270)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openGraph(args[0])
			if err != nil {
				return err
			}
			page, err := doc.Pages().Page(number - 1)
			if err != nil {
				return err
			}
			if err := page.SetRotation(degrees); err != nil {
				return err
			}

			if write == "-" {
				return a.writeGraph(cmd.OutOrStdout(), write, doc)
			}
			info, err := describePage(page)
			if err != nil {
				return err
			}
			if err := a.render(cmd.OutOrStdout(), info, func(w io.Writer) error {
				return writePageTable(w, []pageInfo{info})
			}); err != nil {
				return err
			}
			if write != "" {
				return a.writeGraph(cmd.OutOrStdout(), write, doc)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&number, "page", "p", 1, "page to rotate (1-based)")
	cmd.Flags().IntVarP(&degrees, "degrees", "d", 0, "rotation in degrees")
	cmd.Flags().StringVarP(&write, "write", "w", "", "write the updated graph to this file (- for stdout)")
	_ = cmd.MarkFlagRequired("degrees")
	return cmd
}

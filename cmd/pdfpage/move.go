package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/pages"
)

type orderEntry struct {
	Number int    `json:"number" yaml:"number"`
	Ref    string `json:"ref" yaml:"ref"`
}

func pageOrder(doc *pages.Document) ([]orderEntry, error) {
	var order []orderEntry
	for _, p := range doc.Pages().Pages() {
		n, err := p.PageNumber()
		if err != nil {
			return nil, err
		}
		order = append(order, orderEntry{Number: n, Ref: p.Ref().String()})
	}
	return order, nil
}

func newMoveCmd(a *app) *cobra.Command {
	var (
		from, to int
		write    string
	)

	cmd := &cobra.Command{
		Use:   "move <graph.json>",
		Short: "Move a page in front of another and print the new order",
		Long: "Move the page at index --from so that it lands in front of the page\n" +
			"currently at index --to. Indexes are zero-based; --to may equal the\n" +
			"page count to move the page to the end.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openGraph(args[0])
			if err != nil {
				return err
			}
			page, err := doc.Pages().Page(from)
			if err != nil {
				return err
			}
			if err := page.MoveTo(to); err != nil {
				return err
			}
			a.logger.Info("moved page", zap.Int("from", from), zap.Int("to", to), zap.Int("index", page.Index()))

			if write == "-" {
				return a.writeGraph(cmd.OutOrStdout(), write, doc)
			}
			order, err := pageOrder(doc)
			if err != nil {
				return err
			}
			if err := a.render(cmd.OutOrStdout(), order, func(w io.Writer) error {
				for _, e := range order {
					if _, err := fmt.Fprintf(w, "%d: %s\n", e.Number, e.Ref); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				return err
			}
			if write != "" {
				return a.writeGraph(cmd.OutOrStdout(), write, doc)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "index of the page to move")
	cmd.Flags().IntVar(&to, "to", 0, "index to move the page in front of")
	cmd.Flags().StringVarP(&write, "write", "w", "", "write the updated graph to this file (- for stdout)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

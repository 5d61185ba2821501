package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/pages"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		count     int
		sizeName  string
		landscape bool
		write     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new object graph with empty pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("page count must not be negative, got %d", count)
			}

			size := a.cfg.DefaultPageSize()
			if sizeName != "" || cmd.Flags().Changed("landscape") {
				name := sizeName
				if name == "" {
					name = a.cfg.Document.PageSize
				}
				preset, ok := pages.ParsePageSize(name)
				if !ok {
					return fmt.Errorf("unknown page size %q", name)
				}
				size = pages.StandardPageSize(preset, landscape)
			}

			opts := append(a.cfg.PageOptions(), pages.WithLogger(a.logger))
			doc := pages.NewDocument(opts...)
			for i := 0; i < count; i++ {
				if _, err := doc.Pages().CreatePage(size); err != nil {
					return err
				}
			}
			a.logger.Info("created document", zap.Int("pages", count), zap.Stringer("size", size))
			return a.writeGraph(cmd.OutOrStdout(), write, doc)
		},
	}
	cmd.Flags().IntVarP(&count, "pages", "n", 1, "number of pages")
	cmd.Flags().StringVarP(&sizeName, "size", "s", "", "page size preset (default from config)")
	cmd.Flags().BoolVarP(&landscape, "landscape", "l", false, "landscape orientation")
	cmd.Flags().StringVarP(&write, "write", "w", "-", "output file (- for stdout)")
	return cmd
}

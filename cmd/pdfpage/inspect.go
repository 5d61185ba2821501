package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/pages"
)

// boxView is a rectangle as [left bottom right top].
type boxView [4]float64

func viewOf(r pages.Rect) boxView {
	return boxView{r.Left, r.Bottom, r.Right(), r.Top()}
}

func (b boxView) String() string {
	return fmt.Sprintf("[%g %g %g %g]", b[0], b[1], b[2], b[3])
}

type pageInfo struct {
	Index       int      `json:"index" yaml:"index"`
	Number      int      `json:"number" yaml:"number"`
	Ref         string   `json:"ref" yaml:"ref"`
	Rotation    int      `json:"rotation" yaml:"rotation"`
	MediaBox    boxView  `json:"media_box" yaml:"media_box"`
	CropBox     boxView  `json:"crop_box" yaml:"crop_box"`
	TrimBox     boxView  `json:"trim_box" yaml:"trim_box"`
	BleedBox    boxView  `json:"bleed_box" yaml:"bleed_box"`
	ArtBox      boxView  `json:"art_box" yaml:"art_box"`
	Visual      boxView  `json:"visual" yaml:"visual"`
	Resources   []string `json:"resources,omitempty" yaml:"resources,omitempty"`
	Annotations int      `json:"annotations" yaml:"annotations"`
}

func describePage(p *pages.Page) (pageInfo, error) {
	info := pageInfo{Index: p.Index(), Ref: p.Ref().String()}

	var err error
	if info.Number, err = p.PageNumber(); err != nil {
		return info, err
	}
	if info.Rotation, err = p.Rotation(); err != nil {
		return info, err
	}

	boxes := []struct {
		kind pages.BoxKind
		dst  *boxView
	}{
		{pages.MediaBox, &info.MediaBox},
		{pages.CropBox, &info.CropBox},
		{pages.TrimBox, &info.TrimBox},
		{pages.BleedBox, &info.BleedBox},
		{pages.ArtBox, &info.ArtBox},
	}
	for _, b := range boxes {
		r, err := p.Box(b.kind, true)
		if err != nil {
			return info, err
		}
		*b.dst = viewOf(r)
	}

	visual, err := p.Rect()
	if err != nil {
		return info, err
	}
	info.Visual = viewOf(visual)

	if res := p.Resources(); res != nil {
		info.Resources = res.Dict().Keys()
		sort.Strings(info.Resources)
	}
	if info.Annotations, err = p.Annotations().Count(); err != nil {
		return info, err
	}
	return info, nil
}

func newInspectCmd(a *app) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "Show number, rotation, boxes and resources of every page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openGraph(args[0])
			if err != nil {
				return err
			}

			targets := doc.Pages().Pages()
			if number > 0 {
				p, err := doc.Pages().Page(number - 1)
				if err != nil {
					return err
				}
				targets = []*pages.Page{p}
			}

			infos := make([]pageInfo, 0, len(targets))
			var errs error
			for _, p := range targets {
				info, err := describePage(p)
				if err != nil {
					a.logger.Warn("cannot describe page", zap.Int("index", p.Index()), zap.Error(err))
					errs = multierr.Append(errs, fmt.Errorf("page %d: %w", p.Index()+1, err))
					continue
				}
				infos = append(infos, info)
			}

			if err := a.render(cmd.OutOrStdout(), infos, func(w io.Writer) error {
				return writePageTable(w, infos)
			}); err != nil {
				return err
			}
			return errs
		},
	}
	cmd.Flags().IntVarP(&number, "page", "p", 0, "inspect a single page (1-based)")
	return cmd
}

func writePageTable(w io.Writer, infos []pageInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tREF\tROTATE\tMEDIABOX\tVISUAL\tCROPBOX\tRESOURCES\tANNOTS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%d\t%d\n",
			info.Number, info.Ref, info.Rotation, info.MediaBox, info.Visual, info.CropBox,
			len(info.Resources), info.Annotations)
	}
	return tw.Flush()
}

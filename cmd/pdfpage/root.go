package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfpage/internal/config"
	"github.com/tsawler/pdfpage/internal/observability"
	"github.com/tsawler/pdfpage/objects"
	"github.com/tsawler/pdfpage/pages"
)

// Version is set at build time.
var Version = "dev"

// app carries what the subcommands share once the configuration is loaded.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "pdfpage",
		Short:         "Inspect and edit the page tree of a PDF object graph",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			observability.InitializeLogger(cfg.Logger)
			a.logger = observability.GetLogger().With(zap.String("command", cmd.Name()))
			a.logger.Debug("configuration loaded", zap.String("output", cfg.Output.Format))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./pdfpage.yaml)")
	root.PersistentFlags().StringP("output", "o", "text", "output format: text, json or yaml")
	_ = a.v.BindPFlag("output.format", root.PersistentFlags().Lookup("output"))
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")

	root.AddCommand(
		newInspectCmd(a),
		newSizesCmd(a),
		newMoveCmd(a),
		newRotateCmd(a),
		newCreateCmd(a),
	)
	return root
}

// openGraph reads a JSON object graph whose root is the catalog.
func (a *app) openGraph(path string) (*pages.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	store, catalog, err := objects.Decode(f,
		objects.WithMaxDepth(a.cfg.Document.MaxDepth),
		objects.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	opts := append(a.cfg.PageOptions(), pages.WithLogger(a.logger))
	doc, err := pages.Open(store, catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("opened object graph",
		zap.String("path", path), zap.Int("objects", store.Len()), zap.Int("pages", doc.Pages().Count()))
	return doc, nil
}

// writeGraph writes the document's object graph to path, or to w when
// path is "-".
func (a *app) writeGraph(w io.Writer, path string, doc *pages.Document) error {
	if path == "-" {
		return objects.Encode(w, doc.Objects(), doc.CatalogRef())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := objects.Encode(f, doc.Objects(), doc.CatalogRef()); err != nil {
		f.Close()
		return err
	}
	a.logger.Info("wrote object graph", zap.String("path", path))
	return f.Close()
}

// render prints v in the configured structured format, or calls text for
// the plain text format.
func (a *app) render(w io.Writer, v interface{}, text func(io.Writer) error) error {
	switch a.cfg.Output.Format {
	case "json":
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

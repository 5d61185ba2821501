package pages

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/core"
	"github.com/tsawler/pdfpage/objects"
)

// Document ties an object store to its catalog and page tree.
type Document struct {
	objects    *objects.Store
	catalog    core.Dict
	catalogRef core.IndirectRef
	pages      *PageTree
	cfg        config
}

// NewDocument creates an empty document: a catalog and a page tree root
// with no kids.
func NewDocument(opts ...Option) *Document {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	store := objects.NewStore(objects.WithLogger(cfg.logger))
	root := core.Dict{
		"Type":  core.Name("Pages"),
		"Kids":  core.Array{},
		"Count": core.Int(0),
	}
	rootRef := store.Allocate(root)
	catalog := core.Dict{
		"Type":  core.Name("Catalog"),
		"Pages": rootRef,
	}

	d := &Document{
		objects:    store,
		catalog:    catalog,
		catalogRef: store.Allocate(catalog),
		cfg:        cfg,
	}
	d.pages = newPageTree(d, root, rootRef)
	return d
}

// Open wraps an existing object store whose catalog lives at catalogRef and
// loads its page tree.
func Open(store *objects.Store, catalogRef core.IndirectRef, opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	catalog, err := store.ResolveDict(catalogRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog: %w", err)
	}
	if t, ok := catalog.GetName("Type"); ok && t != "Catalog" {
		cfg.logger.Warn("catalog has unexpected type", zap.String("type", string(t)))
	}

	rootObj, ok := catalog["Pages"]
	if !ok {
		return nil, fmt.Errorf("catalog missing /Pages entry")
	}
	rootRef, ok := rootObj.(core.IndirectRef)
	if !ok {
		return nil, fmt.Errorf("/Pages must be an indirect reference, got %T", rootObj)
	}
	root, err := store.ResolveDict(rootRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve /Pages: %w", err)
	}

	d := &Document{
		objects:    store,
		catalog:    catalog,
		catalogRef: catalogRef,
		cfg:        cfg,
	}
	d.pages = newPageTree(d, root, rootRef)
	if err := d.pages.load(); err != nil {
		return nil, err
	}
	cfg.logger.Debug("opened document", zap.Int("pages", d.pages.Count()))
	return d, nil
}

// Objects returns the document's object store.
func (d *Document) Objects() *objects.Store { return d.objects }

// Catalog returns the catalog dictionary.
func (d *Document) Catalog() core.Dict { return d.catalog }

// CatalogRef returns the reference of the catalog.
func (d *Document) CatalogRef() core.IndirectRef { return d.catalogRef }

// Pages returns the page collection.
func (d *Document) Pages() *PageTree { return d.pages }

func (d *Document) logger() *zap.Logger { return d.cfg.logger }

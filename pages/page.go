package pages

import (
	"github.com/tsawler/pdfpage/core"
)

// Page is a view of one page node. The node itself belongs to the
// document's object store; the Page only owns its lazily created Contents
// and Resources wrappers.
type Page struct {
	doc       *Document
	node      core.Dict
	ref       core.IndirectRef
	index     int
	ancestors []core.Dict // captured at load time, nearest first
	contents  *Contents
	resources *Resources
}

// newPage allocates a fresh page node with its MediaBox set to size.
func newPage(doc *Document, index int, size Rect) *Page {
	node := core.Dict{"Type": core.Name("Page")}
	p := &Page{
		doc:   doc,
		node:  node,
		ref:   doc.objects.Allocate(node),
		index: index,
	}
	node.Set(MediaBox.String(), size.ToArray())
	return p
}

// loadPage wraps an existing page node. ancestors is ordered from the
// immediate parent outward; it is consulted once, here, to resolve
// inherited resources.
func loadPage(doc *Document, ref core.IndirectRef, node core.Dict, index int, ancestors []core.Dict) (*Page, error) {
	p := &Page{
		doc:       doc,
		node:      node,
		ref:       ref,
		index:     index,
		ancestors: ancestors,
	}

	if obj, ok := FindInherited(node, ancestors, "Resources"); ok {
		res, err := newResourcesFrom(doc, obj)
		if err != nil {
			return nil, core.NewError("Page.load", err)
		}
		p.resources = res
	}

	if obj, ok := node["Contents"]; ok {
		p.contents = newContentsFrom(p, obj)
	}

	return p, nil
}

// Dict returns the page node.
func (p *Page) Dict() core.Dict { return p.node }

// Ref returns the indirect reference of the page node.
func (p *Page) Ref() core.IndirectRef { return p.ref }

// Index returns the zero-based position of the page in its collection.
func (p *Page) Index() int { return p.index }

// Document returns the owning document.
func (p *Page) Document() *Document { return p.doc }

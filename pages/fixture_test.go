package pages

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tsawler/pdfpage/core"
	"github.com/tsawler/pdfpage/objects"
)

// fixture is a three page document:
//
//	root (Pages; MediaBox 612x792, Rotate 90, Resources with /Font)
//	├── mid (Pages; CropBox [10 10 600 780])
//	│   ├── p1 (Page; everything inherited, one content stream)
//	│   └── p2 (Page; own MediaBox, Rotate 0, indirect Resources)
//	└── p3 (Page; Rotate 180, TrimBox)
type fixture struct {
	doc                    *Document
	store                  *objects.Store
	root, mid, p1, p2, p3  core.IndirectRef
	rootNode, midNode      core.Dict
	p1Node, p2Node, p3Node core.Dict
}

const fixtureContent = "0 0 m 10 10 l S"

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:    objects.NewStore(),
		rootNode: core.Dict{},
		midNode:  core.Dict{},
		p1Node:   core.Dict{},
		p2Node:   core.Dict{},
		p3Node:   core.Dict{},
	}
	f.root = f.store.Allocate(f.rootNode)
	f.mid = f.store.Allocate(f.midNode)
	f.p1 = f.store.Allocate(f.p1Node)
	f.p2 = f.store.Allocate(f.p2Node)
	f.p3 = f.store.Allocate(f.p3Node)

	content := f.store.Allocate(core.NewStream([]byte(fixtureContent)))
	xobjects := f.store.Allocate(core.Dict{
		"XObject": core.Dict{"Im1": core.Name("Placeholder")},
	})

	f.rootNode["Type"] = core.Name("Pages")
	f.rootNode["Kids"] = core.Array{f.mid, f.p3}
	f.rootNode["Count"] = core.Int(3)
	f.rootNode["MediaBox"] = core.Array{core.Int(0), core.Int(0), core.Int(612), core.Int(792)}
	f.rootNode["Rotate"] = core.Int(90)
	f.rootNode["Resources"] = core.Dict{
		"Font": core.Dict{"F1": core.Name("Helvetica")},
	}

	f.midNode["Type"] = core.Name("Pages")
	f.midNode["Parent"] = f.root
	f.midNode["Kids"] = core.Array{f.p1, f.p2}
	f.midNode["Count"] = core.Int(2)
	f.midNode["CropBox"] = core.Array{core.Int(10), core.Int(10), core.Int(600), core.Int(780)}

	f.p1Node["Type"] = core.Name("Page")
	f.p1Node["Parent"] = f.mid
	f.p1Node["Contents"] = content

	f.p2Node["Type"] = core.Name("Page")
	f.p2Node["Parent"] = f.mid
	f.p2Node["MediaBox"] = core.Array{core.Int(0), core.Int(0), core.Int(100), core.Int(200)}
	f.p2Node["Rotate"] = core.Int(0)
	f.p2Node["Resources"] = xobjects

	f.p3Node["Type"] = core.Name("Page")
	f.p3Node["Parent"] = f.root
	f.p3Node["Rotate"] = core.Int(180)
	f.p3Node["TrimBox"] = core.Array{core.Int(20), core.Int(20), core.Int(500), core.Int(700)}

	catalog := f.store.Allocate(core.Dict{
		"Type":  core.Name("Catalog"),
		"Pages": f.root,
	})

	doc, err := Open(f.store, catalog, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	f.doc = doc
	return f
}

func (f *fixture) page(t *testing.T, index int) *Page {
	t.Helper()
	p, err := f.doc.Pages().Page(index)
	require.NoError(t, err)
	return p
}

func letter() Rect { return Rect{Width: 612, Height: 792} }

package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfpage/core"
	"github.com/tsawler/pdfpage/objects"
)

// parentLoopStore builds a one page tree whose root points back and forth
// with another Pages node through /Parent.
func parentLoopStore() (*objects.Store, core.IndirectRef, core.IndirectRef) {
	store := objects.NewStore()
	a, b, page := core.Dict{}, core.Dict{}, core.Dict{}
	aRef := store.Allocate(a)
	bRef := store.Allocate(b)
	pageRef := store.Allocate(page)

	a["Type"] = core.Name("Pages")
	a["Kids"] = core.Array{pageRef}
	a["Count"] = core.Int(1)
	a["Parent"] = bRef
	b["Type"] = core.Name("Pages")
	b["Kids"] = core.Array{aRef}
	b["Count"] = core.Int(1)
	b["Parent"] = aRef
	page["Type"] = core.Name("Page")
	page["Parent"] = aRef

	catalog := store.Allocate(core.Dict{"Type": core.Name("Catalog"), "Pages": aRef})
	return store, catalog, pageRef
}

func pageRefs(tree *PageTree) []core.IndirectRef {
	var refs []core.IndirectRef
	for _, p := range tree.Pages() {
		refs = append(refs, p.Ref())
	}
	return refs
}

// assertConsistent checks that every page's cached index and its number
// derived from the tree agree.
func assertConsistent(t *testing.T, tree *PageTree) {
	t.Helper()
	for i, p := range tree.Pages() {
		assert.Equal(t, i, p.Index(), "index of page %s", p.Ref())
		n, err := p.PageNumber()
		require.NoError(t, err)
		assert.Equal(t, i+1, n, "number of page %s", p.Ref())
	}
	count, _ := tree.Root().GetInt("Count")
	assert.Equal(t, core.Int(tree.Count()), count, "root /Count")
}

func TestOpenLoadsPagesDepthFirst(t *testing.T) {
	f := newFixture(t)
	tree := f.doc.Pages()

	assert.Equal(t, 3, tree.Count())
	assert.Equal(t, []core.IndirectRef{f.p1, f.p2, f.p3}, pageRefs(tree))
	assertConsistent(t, tree)

	p1 := f.page(t, 0)
	assert.Equal(t, f.doc, p1.Document())
	assert.Equal(t, f.p1Node, p1.Dict())

	_, err := tree.Page(3)
	assert.ErrorIs(t, err, core.ErrValueOutOfRange)
	_, err = tree.Page(-1)
	assert.ErrorIs(t, err, core.ErrValueOutOfRange)
}

func TestOpenErrors(t *testing.T) {
	t.Run("kids cycle", func(t *testing.T) {
		store := objects.NewStore()
		root, mid := core.Dict{}, core.Dict{}
		rootRef := store.Allocate(root)
		midRef := store.Allocate(mid)
		root["Type"] = core.Name("Pages")
		root["Kids"] = core.Array{midRef}
		mid["Type"] = core.Name("Pages")
		mid["Kids"] = core.Array{rootRef}
		catalog := store.Allocate(core.Dict{"Pages": rootRef})

		_, err := Open(store, catalog)
		assert.ErrorIs(t, err, core.ErrBrokenFile)
	})

	t.Run("missing kid", func(t *testing.T) {
		store := objects.NewStore()
		rootRef := store.Allocate(core.Dict{
			"Type": core.Name("Pages"),
			"Kids": core.Array{core.IndirectRef{Number: 99}},
		})
		catalog := store.Allocate(core.Dict{"Pages": rootRef})

		_, err := Open(store, catalog)
		assert.ErrorIs(t, err, core.ErrNoObject)
	})

	t.Run("missing pages", func(t *testing.T) {
		store := objects.NewStore()
		catalog := store.Allocate(core.Dict{"Type": core.Name("Catalog")})
		_, err := Open(store, catalog)
		assert.ErrorContains(t, err, "missing /Pages")
	})
}

func TestOpenSkipsMalformedKids(t *testing.T) {
	store := objects.NewStore()
	page := core.Dict{"Type": core.Name("Page")}
	pageRef := store.Allocate(page)
	junk := store.Allocate(core.Int(5))
	rootRef := store.Allocate(core.Dict{
		"Type":  core.Name("Pages"),
		"Kids":  core.Array{junk, core.Dict{"Type": core.Name("Page")}, pageRef},
		"Count": core.Int(1),
	})
	page["Parent"] = rootRef
	catalog := store.Allocate(core.Dict{"Pages": rootRef})

	doc, err := Open(store, catalog)
	require.NoError(t, err)
	assert.Equal(t, []core.IndirectRef{pageRef}, pageRefs(doc.Pages()))
}

func TestPageNumber(t *testing.T) {
	f := newFixture(t)

	for i, want := range []int{1, 2, 3} {
		n, err := f.page(t, i).PageNumber()
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	// a Pages kid without /Count contributes nothing
	delete(f.midNode, "Count")
	n, err := f.page(t, 2).PageNumber()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f.rootNode["Kids"] = core.Array{core.IndirectRef{Number: 99}, f.mid, f.p3}
	_, err = f.page(t, 2).PageNumber()
	assert.ErrorIs(t, err, core.ErrNoObject)
}

func TestPageNumberKidsNotArray(t *testing.T) {
	tests := map[string]core.Object{
		"dictionary": core.Dict{"Kids": core.Array{}},
		"name":       core.Name("Kids"),
		"null":       core.Null{},
	}

	for name, kids := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.midNode["Kids"] = kids

			_, err := f.page(t, 1).PageNumber()
			assert.ErrorIs(t, err, core.ErrBrokenFile)
		})
	}

	f := newFixture(t)
	f.midNode["Kids"] = f.store.Allocate(core.Name("Kids"))
	_, err := f.page(t, 0).PageNumber()
	assert.ErrorIs(t, err, core.ErrBrokenFile, "indirect /Kids")
}

func TestPageNumberUnlinked(t *testing.T) {
	doc := NewDocument()
	page, err := doc.Pages().CreatePage(letter())
	require.NoError(t, err)
	require.NoError(t, doc.Pages().RemovePageAt(0))

	n, err := page.PageNumber()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreatePageAt(t *testing.T) {
	doc := NewDocument()
	tree := doc.Pages()

	first, err := tree.CreatePage(letter())
	require.NoError(t, err)
	last, err := tree.CreatePage(StandardPageSize(A4, false))
	require.NoError(t, err)
	middle, err := tree.CreatePageAt(1, StandardPageSize(A5, true))
	require.NoError(t, err)

	assert.Equal(t, []core.IndirectRef{first.Ref(), middle.Ref(), last.Ref()}, pageRefs(tree))
	assertConsistent(t, tree)
	assert.Equal(t, tree.Root()["Kids"], core.Array{first.Ref(), middle.Ref(), last.Ref()})

	parent, ok := middle.Dict().GetIndirectRef("Parent")
	require.True(t, ok)
	assert.Equal(t, doc.Catalog()["Pages"], parent)

	box, err := middle.MediaBox(true)
	require.NoError(t, err)
	assertRect(t, Rect{0, 0, 595, 420}, box)

	_, err = tree.CreatePageAt(4, letter())
	assert.ErrorIs(t, err, core.ErrValueOutOfRange)
	_, err = tree.CreatePageAt(-1, letter())
	assert.ErrorIs(t, err, core.ErrValueOutOfRange)
}

func TestCreatePageInNestedTree(t *testing.T) {
	f := newFixture(t)
	tree := f.doc.Pages()

	page, err := tree.CreatePageAt(1, letter())
	require.NoError(t, err)

	assert.Equal(t, core.Array{f.p1, page.Ref(), f.p2}, f.midNode["Kids"])
	assert.Equal(t, core.Int(3), f.midNode["Count"])
	assert.Equal(t, f.mid, page.Dict()["Parent"])
	assertConsistent(t, tree)
}

func TestRemovePageAt(t *testing.T) {
	f := newFixture(t)
	tree := f.doc.Pages()

	require.NoError(t, tree.RemovePageAt(1))

	assert.Equal(t, []core.IndirectRef{f.p1, f.p3}, pageRefs(tree))
	assert.Equal(t, core.Array{f.p1}, f.midNode["Kids"])
	assert.Equal(t, core.Int(1), f.midNode["Count"])
	assert.False(t, f.p2Node.Has("Parent"))
	assertConsistent(t, tree)

	_, ok := f.store.Get(f.p2)
	assert.True(t, ok, "page object stays in the store")

	assert.ErrorIs(t, tree.RemovePageAt(2), core.ErrValueOutOfRange)
}

func TestIndirectKidsArray(t *testing.T) {
	store := objects.NewStore()
	root := core.Dict{"Type": core.Name("Pages"), "Count": core.Int(0)}
	rootRef := store.Allocate(root)
	kidsRef := store.Allocate(core.Array{})
	root["Kids"] = kidsRef
	catalog := store.Allocate(core.Dict{"Pages": rootRef})

	doc, err := Open(store, catalog)
	require.NoError(t, err)
	page, err := doc.Pages().CreatePage(letter())
	require.NoError(t, err)

	assert.Equal(t, kidsRef, root["Kids"], "Kids stays indirect")
	kids, ok := store.Get(kidsRef)
	require.True(t, ok)
	assert.Equal(t, core.Array{page.Ref()}, kids)
	assertConsistent(t, doc.Pages())
}

func TestMoveTo(t *testing.T) {
	tests := []struct {
		name      string
		from, to  int
		wantOrder []int // fixture page positions
		wantIndex int
	}{
		{"last to front", 2, 0, []int{2, 0, 1}, 0},
		{"first to end", 0, 3, []int{1, 2, 0}, 2},
		{"first before last", 0, 2, []int{1, 0, 2}, 1},
		{"middle to front", 1, 0, []int{1, 0, 2}, 0},
		{"onto itself", 1, 1, []int{0, 1, 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			original := []core.IndirectRef{f.p1, f.p2, f.p3}
			page := f.page(t, tt.from)

			require.NoError(t, page.MoveTo(tt.to))

			want := make([]core.IndirectRef, len(tt.wantOrder))
			for i, pos := range tt.wantOrder {
				want[i] = original[pos]
			}
			tree := f.doc.Pages()
			assert.Equal(t, want, pageRefs(tree))
			assert.Equal(t, tt.wantIndex, page.Index())
			assert.Same(t, page, f.page(t, tt.wantIndex), "the moved page keeps its identity")
			assertConsistent(t, tree)
		})
	}
}

func TestMoveToRollsBackWhenRemovalFails(t *testing.T) {
	f := newFixture(t)
	tree := f.doc.Pages()
	p1 := f.page(t, 0)
	before := cloneDict(f.p1Node)

	// p1 is still slot 0 under mid but no longer listed there, so it can be
	// linked elsewhere but not unlinked from mid.
	f.midNode["Kids"] = core.Array{f.p2}

	err := p1.MoveTo(3)
	require.ErrorIs(t, err, core.ErrBrokenFile)

	assert.Equal(t, []core.IndirectRef{f.p1, f.p2, f.p3}, pageRefs(tree))
	assert.Same(t, p1, f.page(t, 0))
	assert.Equal(t, 0, p1.Index())
	assert.Equal(t, core.Array{f.mid, f.p3}, f.rootNode["Kids"])
	assert.Equal(t, core.Int(3), f.rootNode["Count"])
	assert.Equal(t, before, f.p1Node, "inherited attributes are not left on the node")
	assert.Equal(t, f.mid, f.p1Node["Parent"])
}

func TestMoveToKeepsAppearance(t *testing.T) {
	f := newFixture(t)
	p3 := f.page(t, 2)

	require.NoError(t, p3.MoveTo(0))

	rot, err := p3.Rotation()
	require.NoError(t, err)
	assert.Equal(t, 180, rot)
	media, err := p3.MediaBox(true)
	require.NoError(t, err)
	assertRect(t, Rect{0, 0, 612, 792}, media)
	require.NotNil(t, p3.Resources())
	names, err := p3.Resources().Names("Font")
	require.NoError(t, err)
	assert.Equal(t, []string{"F1"}, names)
}

func TestInsertSameDocumentTwice(t *testing.T) {
	f := newFixture(t)
	tree := f.doc.Pages()

	dup, err := tree.InsertDocumentPageAt(3, f.doc, 0)
	require.NoError(t, err)
	assert.Equal(t, f.p1, dup.Ref())
	assert.Equal(t, []core.IndirectRef{f.p1, f.p2, f.p3, f.p1}, pageRefs(tree))
	assert.Equal(t, core.Int(4), f.rootNode["Count"])

	// drop the first occurrence; the node now hangs off the root only
	require.NoError(t, tree.RemovePageAt(0))
	assert.Equal(t, core.Array{f.p2}, f.midNode["Kids"])
	assert.Equal(t, core.Array{f.mid, f.p3, f.p1}, f.rootNode["Kids"])
	assert.Equal(t, f.root, f.p1Node["Parent"])
	assertConsistent(t, tree)
}

func TestInsertFromOtherDocument(t *testing.T) {
	src := newFixture(t)
	dst := NewDocument()
	tree := dst.Pages()
	existing, err := tree.CreatePage(letter())
	require.NoError(t, err)

	page, err := tree.InsertDocumentPageAt(0, src.doc, 0)
	require.NoError(t, err)

	assert.NotEqual(t, src.p1, page.Ref())
	assert.Equal(t, dst, page.Document())
	assert.Equal(t, []core.IndirectRef{page.Ref(), existing.Ref()}, pageRefs(tree))
	assertConsistent(t, tree)

	rot, err := page.Rotation()
	require.NoError(t, err)
	assert.Equal(t, 90, rot)
	crop, err := page.CropBox(true)
	require.NoError(t, err)
	assertRect(t, Rect{10, 10, 590, 770}, crop)

	names, err := page.Resources().Names("Font")
	require.NoError(t, err)
	assert.Equal(t, []string{"F1"}, names)

	data, err := page.Contents().Data()
	require.NoError(t, err)
	assert.Equal(t, fixtureContent, string(data))

	// the source is untouched
	assert.False(t, src.p1Node.Has("MediaBox"))
	assert.Equal(t, src.mid, src.p1Node["Parent"])
	assert.Equal(t, 3, src.doc.Pages().Count())

	_, err = tree.InsertDocumentPageAt(0, src.doc, 7)
	assert.ErrorIs(t, err, core.ErrValueOutOfRange)
}

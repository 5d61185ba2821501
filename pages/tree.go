package pages

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/core"
)

// inheritableKeys are the page attributes copied onto a page node before it
// is linked under a different parent, so the page keeps its appearance.
var inheritableKeys = []string{"Resources", "MediaBox", "CropBox", "Rotate"}

// PageTree is the ordered page collection of a document. It keeps the
// Kids, Count and Parent entries of the underlying tree consistent with
// every insertion and removal.
type PageTree struct {
	doc     *Document
	root    core.Dict
	rootRef core.IndirectRef
	slots   []pageSlot // flattened page order
}

// pageSlot records where one page occurrence is linked. A page node may be
// linked more than once, so the node's own Parent is not enough.
type pageSlot struct {
	page   *Page
	parent core.IndirectRef
}

func newPageTree(doc *Document, root core.Dict, rootRef core.IndirectRef) *PageTree {
	return &PageTree{
		doc:     doc,
		root:    root,
		rootRef: rootRef,
	}
}

// Root returns the root Pages node.
func (t *PageTree) Root() core.Dict { return t.root }

// Count returns the number of pages.
func (t *PageTree) Count() int { return len(t.slots) }

// Page returns the page at the given index (0-based).
func (t *PageTree) Page(index int) (*Page, error) {
	if index < 0 || index >= len(t.slots) {
		return nil, core.Errorf("PageTree.Page", core.ErrValueOutOfRange, "page index %d out of range [0, %d)", index, len(t.slots))
	}
	return t.slots[index].page, nil
}

// Pages returns all pages in order.
func (t *PageTree) Pages() []*Page {
	out := make([]*Page, len(t.slots))
	for i, s := range t.slots {
		out[i] = s.page
	}
	return out
}

// load flattens an existing tree depth-first.
func (t *PageTree) load() error {
	visiting := map[int]bool{t.rootRef.Number: true}
	if err := t.traverse(t.rootRef, []core.Dict{t.root}, visiting); err != nil {
		return fmt.Errorf("failed to traverse page tree: %w", err)
	}

	if count, ok := t.root.GetNumber("Count"); ok && int(count) != len(t.slots) {
		t.doc.logger().Warn("page tree /Count does not match its pages",
			zap.Int("count", int(count)), zap.Int("pages", len(t.slots)))
	}
	return nil
}

// traverse visits the kids of the intermediate node at nodeRef. chain holds
// that node followed by its ancestors, so it is also the ancestor list of
// every page found directly below it.
func (t *PageTree) traverse(nodeRef core.IndirectRef, chain []core.Dict, visiting map[int]bool) error {
	const op = "PageTree.load"

	if len(chain) > MaxParentDepth {
		return core.Errorf(op, core.ErrBrokenFile, "page tree deeper than %d levels", MaxParentDepth)
	}

	kids, err := t.kidsOf(chain[0])
	if err != nil {
		return err
	}

	for i, kidObj := range kids {
		kidRef, ok := kidObj.(core.IndirectRef)
		if !ok {
			t.doc.logger().Warn("skipping direct object in /Kids",
				zap.Stringer("parent", nodeRef), zap.Int("kid", i))
			continue
		}
		resolved, err := t.doc.objects.Resolve(kidRef)
		if err != nil {
			return core.NewError(op, fmt.Errorf("kid %d of %s: %w", i, nodeRef, err))
		}
		kid, ok := resolved.(core.Dict)
		if !ok {
			t.doc.logger().Warn("skipping non-dictionary kid",
				zap.Stringer("ref", kidRef), zap.String("type", resolved.Type().String()))
			continue
		}

		if kid.Has("Kids") || kid.IsType("Pages") {
			if visiting[kidRef.Number] {
				return core.Errorf(op, core.ErrBrokenFile, "cycle in /Kids at %s", kidRef)
			}
			visiting[kidRef.Number] = true
			sub := make([]core.Dict, 0, len(chain)+1)
			sub = append(sub, kid)
			sub = append(sub, chain...)
			if err := t.traverse(kidRef, sub, visiting); err != nil {
				return err
			}
			delete(visiting, kidRef.Number)
			continue
		}

		page, err := loadPage(t.doc, kidRef, kid, len(t.slots), chain)
		if err != nil {
			return err
		}
		t.slots = append(t.slots, pageSlot{page: page, parent: nodeRef})
	}
	return nil
}

// CreatePage appends a new page with the given media box.
func (t *PageTree) CreatePage(size Rect) (*Page, error) {
	return t.CreatePageAt(len(t.slots), size)
}

// CreatePageAt inserts a new page with the given media box so that it ends
// up at index.
func (t *PageTree) CreatePageAt(index int, size Rect) (*Page, error) {
	if err := t.checkInsertIndex("PageTree.CreatePageAt", index); err != nil {
		return nil, err
	}
	page := newPage(t.doc, index, size)
	if err := t.link(index, page); err != nil {
		return nil, err
	}
	return page, nil
}

// InsertDocumentPageAt inserts page srcIndex of src so that it ends up at
// index. A page of the same document is linked again as is; a page of
// another document is deep-copied into this one first. Inherited
// attributes are copied onto the inserted node either way.
func (t *PageTree) InsertDocumentPageAt(index int, src *Document, srcIndex int) (*Page, error) {
	const op = "PageTree.InsertDocumentPageAt"

	if err := t.checkInsertIndex(op, index); err != nil {
		return nil, err
	}
	srcPage, err := src.pages.Page(srcIndex)
	if err != nil {
		return nil, err
	}

	var page *Page
	if src == t.doc {
		if err := srcPage.materializeInherited(); err != nil {
			return nil, core.NewError(op, err)
		}
		page = &Page{
			doc:       t.doc,
			node:      srcPage.node,
			ref:       srcPage.ref,
			index:     index,
			ancestors: srcPage.ancestors,
			contents:  srcPage.contents,
			resources: srcPage.resources,
		}
	} else {
		page, err = t.importPage(srcPage, index)
		if err != nil {
			return nil, core.NewError(op, err)
		}
	}

	if err := t.link(index, page); err != nil {
		return nil, err
	}
	return page, nil
}

// importPage copies srcPage, which belongs to another document, into this
// document's store.
func (t *PageTree) importPage(srcPage *Page, index int) (*Page, error) {
	store := t.doc.objects
	srcStore := srcPage.doc.objects

	copied, err := store.CopyFrom(srcStore, srcPage.ref, "Parent")
	if err != nil {
		return nil, fmt.Errorf("failed to copy page: %w", err)
	}
	ref := copied.(core.IndirectRef)
	node, err := store.ResolveDict(ref)
	if err != nil {
		return nil, err
	}

	inherited, err := srcPage.inheritedAttributes()
	if err != nil {
		return nil, err
	}
	for key, value := range inherited {
		if node.Has(key) {
			continue
		}
		obj, err := store.CopyFrom(srcStore, value, "Parent")
		if err != nil {
			return nil, fmt.Errorf("failed to copy /%s: %w", key, err)
		}
		node.Set(key, obj)
	}

	return loadPage(t.doc, ref, node, index, nil)
}

// RemovePageAt unlinks the page at index from the tree. The page object
// itself stays in the store.
func (t *PageTree) RemovePageAt(index int) error {
	const op = "PageTree.RemovePageAt"

	if index < 0 || index >= len(t.slots) {
		return core.Errorf(op, core.ErrValueOutOfRange, "page index %d out of range [0, %d)", index, len(t.slots))
	}
	slot := t.slots[index]

	parent, err := t.doc.objects.ResolveDict(slot.parent)
	if err != nil {
		return core.NewError(op, err)
	}
	kids, err := t.kidsOf(parent)
	if err != nil {
		return core.NewError(op, err)
	}
	pos, err := t.kidPosition(index, kids)
	if err != nil {
		return err
	}
	kids = append(kids[:pos:pos], kids[pos+1:]...)
	t.setKids(parent, kids)
	if err := t.adjustCount(slot.parent, -1); err != nil {
		return err
	}

	t.slots = append(t.slots[:index], t.slots[index+1:]...)
	t.relinkParent(slot.page)
	t.reindex()

	t.doc.logger().Debug("removed page", zap.Int("index", index), zap.Stringer("ref", slot.page.ref))
	return nil
}

// link inserts page into the Kids array that places it at index and into
// the flattened order.
func (t *PageTree) link(index int, page *Page) error {
	const op = "PageTree.link"

	parentRef := t.rootRef
	pos := -1
	switch {
	case index < len(t.slots):
		parentRef = t.slots[index].parent
	case len(t.slots) > 0:
		parentRef = t.slots[len(t.slots)-1].parent
	}

	parent, err := t.doc.objects.ResolveDict(parentRef)
	if err != nil {
		return core.NewError(op, err)
	}
	kids, err := t.kidsOf(parent)
	if err != nil {
		return core.NewError(op, err)
	}

	switch {
	case index < len(t.slots):
		if pos, err = t.kidPosition(index, kids); err != nil {
			return err
		}
	case len(t.slots) > 0:
		if pos, err = t.kidPosition(len(t.slots)-1, kids); err != nil {
			return err
		}
		pos++
	default:
		pos = len(kids)
	}

	updated := make(core.Array, 0, len(kids)+1)
	updated = append(updated, kids[:pos]...)
	updated = append(updated, page.ref)
	updated = append(updated, kids[pos:]...)
	t.setKids(parent, updated)
	if err := t.adjustCount(parentRef, 1); err != nil {
		return err
	}
	page.node.Set("Parent", parentRef)

	t.slots = append(t.slots, pageSlot{})
	copy(t.slots[index+1:], t.slots[index:])
	t.slots[index] = pageSlot{page: page, parent: parentRef}
	t.reindex()

	t.doc.logger().Debug("linked page", zap.Int("index", index), zap.Stringer("ref", page.ref))
	return nil
}

// kidPosition returns where slot index sits in its parent's Kids. The same
// reference may appear several times under one parent; occurrences keep the
// order of the slots.
func (t *PageTree) kidPosition(index int, kids core.Array) (int, error) {
	slot := t.slots[index]
	nth := 0
	for _, s := range t.slots[:index] {
		if s.parent == slot.parent && s.page.ref == slot.page.ref {
			nth++
		}
	}
	for pos, kid := range kids {
		if ref, ok := kid.(core.IndirectRef); ok && ref == slot.page.ref {
			if nth == 0 {
				return pos, nil
			}
			nth--
		}
	}
	return 0, core.Errorf("PageTree.kidPosition", core.ErrBrokenFile, "page %s missing from /Kids of %s", slot.page.ref, slot.parent)
}

// kidsOf returns the Kids array of an intermediate node, resolving an
// indirect array.
func (t *PageTree) kidsOf(node core.Dict) (core.Array, error) {
	obj, ok := node["Kids"]
	if !ok {
		return core.Array{}, nil
	}
	resolved, err := t.doc.objects.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve /Kids: %w", err)
	}
	kids, ok := resolved.(core.Array)
	if !ok {
		return nil, fmt.Errorf("invalid /Kids type: %T", resolved)
	}
	return kids, nil
}

// setKids stores kids wherever node keeps its Kids array.
func (t *PageTree) setKids(node core.Dict, kids core.Array) {
	if ref, ok := node["Kids"].(core.IndirectRef); ok {
		t.doc.objects.Set(ref, kids)
		return
	}
	node.Set("Kids", kids)
}

// adjustCount adds delta to Count on the node at ref and every ancestor.
func (t *PageTree) adjustCount(ref core.IndirectRef, delta int) error {
	const op = "PageTree.adjustCount"

	var obj core.Object = ref
	for depth := 0; ; depth++ {
		if depth > MaxParentDepth {
			return core.Errorf(op, core.ErrBrokenFile, "Parent chain deeper than %d levels", MaxParentDepth)
		}
		node, err := t.doc.objects.ResolveDict(obj)
		if err != nil {
			return core.NewError(op, err)
		}
		count, _ := node.GetNumber("Count")
		node.Set("Count", core.Int(int(count)+delta))

		next, ok := node["Parent"]
		if !ok {
			return nil
		}
		obj = next
	}
}

// relinkParent points the node's Parent at a remaining occurrence of page,
// or drops it when the page is no longer linked anywhere.
func (t *PageTree) relinkParent(page *Page) {
	for _, s := range t.slots {
		if s.page.ref == page.ref {
			if current, ok := page.node.GetIndirectRef("Parent"); !ok || current != s.parent {
				page.node.Set("Parent", s.parent)
			}
			return
		}
	}
	page.node.Delete("Parent")
}

func (t *PageTree) reindex() {
	for i, s := range t.slots {
		s.page.index = i
	}
}

func (t *PageTree) checkInsertIndex(op string, index int) error {
	if index < 0 || index > len(t.slots) {
		return core.Errorf(op, core.ErrValueOutOfRange, "insert index %d out of range [0, %d]", index, len(t.slots))
	}
	return nil
}

// inheritedAttributes returns the inheritable attributes the page does not
// define itself, as found on its ancestors. Values are not resolved.
// Resources come from the load-time resolution.
func (p *Page) inheritedAttributes() (map[string]core.Object, error) {
	chain, err := p.ancestorChain()
	if err != nil {
		return nil, err
	}
	out := make(map[string]core.Object)
	for _, key := range inheritableKeys {
		if p.node.Has(key) {
			continue
		}
		if key == "Resources" {
			if p.resources != nil {
				out[key] = p.resources.object()
			}
			continue
		}
		if obj, ok := FindInherited(nil, chain, key); ok {
			out[key] = obj
		}
	}
	return out, nil
}

// materializeInherited copies inherited attributes onto the page node.
// Arrays are cloned so later edits of the page's boxes stay local.
func (p *Page) materializeInherited() error {
	inherited, err := p.inheritedAttributes()
	if err != nil {
		return err
	}
	for key, value := range inherited {
		if arr, ok := value.(core.Array); ok {
			value = append(core.Array(nil), arr...)
		}
		p.node.Set(key, value)
	}
	return nil
}

package pages

import (
	"go.uber.org/multierr"

	"github.com/tsawler/pdfpage/core"
)

// PageNumber returns the 1-based position of the page as recorded by the
// tree itself. It climbs the Parent chain and, at each level, counts what
// precedes the node it came from: an intermediate node contributes its
// /Count, anything else counts as one page. A page that is not linked
// anywhere reports 1.
func (p *Page) PageNumber() (int, error) {
	const op = "Page.PageNumber"
	store := p.doc.objects

	number := 0
	var from core.Object = p.ref
	parentObj, ok := p.node["Parent"]
	for depth := 0; ok; depth++ {
		if depth >= MaxParentDepth {
			return 0, core.Errorf(op, core.ErrBrokenFile, "loop in Parent chain")
		}
		parent, err := store.ResolveDict(parentObj)
		if err != nil {
			return 0, core.NewError(op, err)
		}

		if kidsObj, hasKids := parent["Kids"]; hasKids {
			kidsResolved, err := store.Resolve(kidsObj)
			if err != nil {
				return 0, core.NewError(op, err)
			}
			kids, isArray := kidsResolved.(core.Array)
			if !isArray {
				return 0, core.Errorf(op, core.ErrBrokenFile, "/Kids of %s is %T, not an array", parentObj, kidsResolved)
			}
			for _, kid := range kids {
				if sameRef(kid, from) {
					break
				}
				node, err := store.Resolve(kid)
				if err != nil {
					return 0, core.NewError(op, err)
				}
				if dict, isDict := node.(core.Dict); isDict && dict.IsType("Pages") {
					if count, hasCount := dict.GetNumber("Count"); hasCount {
						number += int(count)
					}
					continue
				}
				number++
			}
		}

		from = parentObj
		parentObj, ok = parent["Parent"]
	}
	return number + 1, nil
}

// MoveTo moves the page so that it ends up in front of the page currently
// at newIndex; newIndex equal to the page count moves it to the end. The
// page keeps its identity and its index is updated to the slot it lands in.
// When the move fails the tree and the page node are left as they were.
func (p *Page) MoveTo(newIndex int) error {
	tree := p.doc.pages
	origin := p.index
	from := origin
	saved := cloneDict(p.node)

	if _, err := tree.InsertDocumentPageAt(newIndex, p.doc, from); err != nil {
		restoreDict(p.node, saved)
		return err
	}
	if newIndex < from {
		// the insertion shifted the original one slot to the right
		from++
	}
	if err := tree.RemovePageAt(from); err != nil {
		if undoErr := tree.RemovePageAt(newIndex); undoErr != nil {
			return multierr.Append(err, undoErr)
		}
		restoreDict(p.node, saved)
		tree.slots[origin].page = p
		tree.reindex()
		return err
	}

	final := newIndex
	if newIndex > origin {
		final = newIndex - 1
	}
	tree.slots[final].page = p
	p.index = final
	return nil
}

func sameRef(a, b core.Object) bool {
	ra, ok := a.(core.IndirectRef)
	if !ok {
		return false
	}
	rb, ok := b.(core.IndirectRef)
	return ok && ra == rb
}

func cloneDict(d core.Dict) core.Dict {
	out := make(core.Dict, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// restoreDict makes d hold exactly the entries of saved again.
func restoreDict(d, saved core.Dict) {
	for k := range d {
		if _, ok := saved[k]; !ok {
			delete(d, k)
		}
	}
	for k, v := range saved {
		d[k] = v
	}
}

package pages

import (
	"github.com/tsawler/pdfpage/core"
)

// MaxParentDepth bounds every upward walk of a Parent chain. Walks that
// climb further fail with core.ErrBrokenFile, which is what a Parent cycle
// in a corrupted or hostile file produces.
const MaxParentDepth = 1000

// FindInherited returns the value of key from node or, failing that, from
// the nearest ancestor that defines it. ancestors is ordered from the
// immediate parent outward. Presence wins over content: an empty array on
// node still shadows its ancestors.
func FindInherited(node core.Dict, ancestors []core.Dict, key string) (core.Object, bool) {
	if obj, ok := node[key]; ok {
		return obj, true
	}
	for _, ancestor := range ancestors {
		if obj, ok := ancestor[key]; ok {
			return obj, true
		}
	}
	return nil, false
}

// ancestorChain follows Parent references from the page node up to the
// root and returns the visited nodes, nearest first.
func (p *Page) ancestorChain() ([]core.Dict, error) {
	const op = "Page.ancestorChain"

	var chain []core.Dict
	obj, ok := p.node["Parent"]
	for ok {
		if len(chain) >= MaxParentDepth {
			return nil, core.Errorf(op, core.ErrBrokenFile, "Parent chain deeper than %d levels", MaxParentDepth)
		}
		parent, err := p.doc.objects.ResolveDict(obj)
		if err != nil {
			return nil, core.NewError(op, err)
		}
		chain = append(chain, parent)
		obj, ok = parent["Parent"]
	}
	return chain, nil
}

// findInherited is the single lookup used for boxes, rotation and resizing.
// The returned value has indirect references resolved.
func (p *Page) findInherited(key string) (core.Object, bool, error) {
	var ancestors []core.Dict
	if !p.node.Has(key) {
		chain, err := p.ancestorChain()
		if err != nil {
			return nil, false, err
		}
		ancestors = chain
	}

	obj, ok := FindInherited(p.node, ancestors, key)
	if !ok {
		return nil, false, nil
	}
	resolved, err := p.doc.objects.Resolve(obj)
	if err != nil {
		return nil, false, err
	}
	return resolved, true, nil
}

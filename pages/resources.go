package pages

import (
	"fmt"
	"sort"

	"github.com/tsawler/pdfpage/core"
)

// Resources is a view of a resource dictionary (/Font, /XObject,
// /ColorSpace and so on). An inherited dictionary is shared with the
// ancestor that defines it, so edits are visible to every page inheriting
// it.
type Resources struct {
	doc  *Document
	dict core.Dict
	ref  core.IndirectRef // zero when the dictionary is stored directly
}

// newResourcesFrom wraps a stored Resources value, direct or indirect.
func newResourcesFrom(doc *Document, obj core.Object) (*Resources, error) {
	res := &Resources{doc: doc}
	if ref, ok := obj.(core.IndirectRef); ok {
		res.ref = ref
	}
	dict, err := doc.objects.ResolveDict(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve /Resources: %w", err)
	}
	res.dict = dict
	return res, nil
}

// Dict returns the resource dictionary.
func (r *Resources) Dict() core.Dict { return r.dict }

// Ref returns the reference of the dictionary, or the zero reference when
// it is stored directly in a page tree node.
func (r *Resources) Ref() core.IndirectRef { return r.ref }

func (r *Resources) object() core.Object {
	if !r.ref.IsZero() {
		return r.ref
	}
	return r.dict
}

// Add stores value under key in the given category, creating the category
// dictionary when needed. Existing entries of the category are kept.
func (r *Resources) Add(category, key string, value core.Object) error {
	sub, err := r.category(category, true)
	if err != nil {
		return core.NewError("Resources.Add", err)
	}
	sub.Set(key, value)
	return nil
}

// Get returns the resolved entry key of the given category.
func (r *Resources) Get(category, key string) (core.Object, bool, error) {
	sub, err := r.category(category, false)
	if err != nil || sub == nil {
		return nil, false, err
	}
	obj, ok := sub[key]
	if !ok {
		return nil, false, nil
	}
	resolved, err := r.doc.objects.Resolve(obj)
	if err != nil {
		return nil, false, core.NewError("Resources.Get", err)
	}
	return resolved, true, nil
}

// ColorSpace returns the resolved color space registered under tag.
func (r *Resources) ColorSpace(tag string) (core.Object, bool, error) {
	return r.Get("ColorSpace", tag)
}

// Names returns the sorted entry names of a category.
func (r *Resources) Names(category string) ([]string, error) {
	sub, err := r.category(category, false)
	if err != nil || sub == nil {
		return nil, err
	}
	names := sub.Keys()
	sort.Strings(names)
	return names, nil
}

// category returns the named sub-dictionary, resolving an indirect one.
// With create set a missing category is added as a direct dictionary.
func (r *Resources) category(name string, create bool) (core.Dict, error) {
	obj, ok := r.dict[name]
	if !ok {
		if !create {
			return nil, nil
		}
		sub := core.Dict{}
		r.dict.Set(name, sub)
		return sub, nil
	}
	sub, err := r.doc.objects.ResolveDict(obj)
	if err != nil {
		return nil, fmt.Errorf("resource category /%s: %w", name, err)
	}
	return sub, nil
}

// Resources returns the page resources resolved when the page was loaded,
// or nil when neither the page nor an ancestor defines any.
func (p *Page) Resources() *Resources { return p.resources }

// GetOrCreateResources returns the page resources, creating an empty
// dictionary on the page node when there are none.
func (p *Page) GetOrCreateResources() *Resources {
	p.EnsureResourcesCreated()
	return p.resources
}

// MustGetResources returns the page resources or core.ErrInvalidHandle
// when there are none.
func (p *Page) MustGetResources() (*Resources, error) {
	if p.resources == nil {
		return nil, core.Errorf("Page.MustGetResources", core.ErrInvalidHandle, "page has no resources")
	}
	return p.resources, nil
}

// EnsureResourcesCreated creates the page resources if they do not exist.
// Calling it again has no effect.
func (p *Page) EnsureResourcesCreated() {
	if p.resources != nil {
		return
	}
	dict := core.Dict{}
	p.node.Set("Resources", dict)
	p.resources = &Resources{doc: p.doc, dict: dict}
}

package objects

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/core"
)

// Store holds the indirect objects of one document, keyed by object number.
// It is not safe for concurrent use.
type Store struct {
	objects  map[int]core.Object
	next     int
	maxDepth int
	logger   *zap.Logger
}

// Option configures the store
type Option func(*Store)

// WithMaxDepth sets the maximum recursion depth for deep resolution and
// reference chains (default: 100)
func WithMaxDepth(depth int) Option {
	return func(s *Store) {
		s.maxDepth = depth
	}
}

// WithLogger sets the logger used for allocation and copy diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty store. Object numbers start at 1.
func NewStore(opts ...Option) *Store {
	s := &Store{
		objects:  make(map[int]core.Object),
		next:     1,
		maxDepth: 100,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allocate stores obj under a fresh object number and returns its reference.
func (s *Store) Allocate(obj core.Object) core.IndirectRef {
	ref := core.IndirectRef{Number: s.next}
	s.objects[ref.Number] = obj
	s.next++
	s.logger.Debug("allocated object", zap.Stringer("ref", ref), zap.Stringer("type", obj.Type()))
	return ref
}

// AllocateDict allocates an empty dictionary and returns it with its reference.
func (s *Store) AllocateDict() (core.Dict, core.IndirectRef) {
	dict := core.Dict{}
	return dict, s.Allocate(dict)
}

// Set installs obj under ref, replacing any previous object. Later
// allocations never reuse ref's number.
func (s *Store) Set(ref core.IndirectRef, obj core.Object) {
	s.objects[ref.Number] = obj
	if ref.Number >= s.next {
		s.next = ref.Number + 1
	}
}

// Get returns the object stored under ref.
func (s *Store) Get(ref core.IndirectRef) (core.Object, bool) {
	obj, ok := s.objects[ref.Number]
	return obj, ok
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	return len(s.objects)
}

// Refs returns the references of all stored objects in ascending order.
func (s *Store) Refs() []core.IndirectRef {
	refs := make([]core.IndirectRef, 0, len(s.objects))
	for num := range s.objects {
		refs = append(refs, core.IndirectRef{Number: num})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Number < refs[j].Number })
	return refs
}

// ResolveReference returns the object ref points to. A missing object is
// reported as core.ErrNoObject.
func (s *Store) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	obj, ok := s.objects[ref.Number]
	if !ok {
		return nil, core.Errorf("Store.ResolveReference", core.ErrNoObject, "object %s", ref)
	}
	return obj, nil
}

// Resolve follows obj while it is an indirect reference. Other objects are
// returned unchanged; nested references inside dictionaries and arrays are
// left alone (see ResolveDeep).
func (s *Store) Resolve(obj core.Object) (core.Object, error) {
	for depth := 0; ; depth++ {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, nil
		}
		if depth >= s.maxDepth {
			return nil, core.Errorf("Store.Resolve", core.ErrBrokenFile, "reference chain longer than %d", s.maxDepth)
		}
		var err error
		if obj, err = s.ResolveReference(ref); err != nil {
			return nil, err
		}
	}
}

// ResolveDict resolves obj and requires the result to be a dictionary.
func (s *Store) ResolveDict(obj core.Object) (core.Dict, error) {
	resolved, err := s.Resolve(obj)
	if err != nil {
		return nil, err
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("expected dictionary, got %T", resolved)
	}
	return dict, nil
}

// ResolveDeep returns a copy of obj with every nested indirect reference
// replaced by the object it names. Circular references are errors.
func (s *Store) ResolveDeep(obj core.Object) (core.Object, error) {
	return s.resolveDeep(obj, make(map[int]bool), 0)
}

func (s *Store) resolveDeep(obj core.Object, visiting map[int]bool, depth int) (core.Object, error) {
	if depth >= s.maxDepth {
		return nil, fmt.Errorf("maximum recursion depth (%d) exceeded", s.maxDepth)
	}

	switch v := obj.(type) {
	case core.IndirectRef:
		if visiting[v.Number] {
			return nil, core.Errorf("Store.ResolveDeep", core.ErrBrokenFile, "circular reference to object %d", v.Number)
		}
		visiting[v.Number] = true
		defer delete(visiting, v.Number)

		resolved, err := s.ResolveReference(v)
		if err != nil {
			return nil, err
		}
		return s.resolveDeep(resolved, visiting, depth+1)

	case core.Dict:
		out := make(core.Dict, len(v))
		for key, value := range v {
			resolved, err := s.resolveDeep(value, visiting, depth+1)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve dict key %s: %w", key, err)
			}
			out[key] = resolved
		}
		return out, nil

	case core.Array:
		out := make(core.Array, len(v))
		for i, elem := range v {
			resolved, err := s.resolveDeep(elem, visiting, depth+1)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve array element %d: %w", i, err)
			}
			out[i] = resolved
		}
		return out, nil

	case *core.Stream:
		dict, err := s.resolveDeep(v.Dict, visiting, depth+1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stream dict: %w", err)
		}
		return &core.Stream{Dict: dict.(core.Dict), Data: v.Data}, nil

	default:
		return obj, nil
	}
}

package objects

import (
	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/core"
)

// CopyFrom deep-copies obj, which lives in src, into s. Every indirect
// object reachable from obj is copied once and given a fresh number in s;
// dictionary entries named in skipKeys are dropped at every level, which is
// how a page is copied without dragging its source tree along via /Parent.
func (s *Store) CopyFrom(src *Store, obj core.Object, skipKeys ...string) (core.Object, error) {
	c := &copier{
		dst:  s,
		src:  src,
		memo: make(map[int]core.IndirectRef),
		skip: make(map[string]bool, len(skipKeys)),
	}
	for _, k := range skipKeys {
		c.skip[k] = true
	}
	out, err := c.copy(obj)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("copied object graph", zap.Int("objects", len(c.memo)))
	return out, nil
}

type copier struct {
	dst, src *Store
	memo     map[int]core.IndirectRef
	skip     map[string]bool
}

func (c *copier) copy(obj core.Object) (core.Object, error) {
	switch v := obj.(type) {
	case core.IndirectRef:
		if ref, ok := c.memo[v.Number]; ok {
			return ref, nil
		}
		resolved, err := c.src.ResolveReference(v)
		if err != nil {
			return nil, err
		}
		// Reserve the number first so cycles resolve to the same target.
		ref := c.dst.Allocate(core.Null{})
		c.memo[v.Number] = ref
		copied, err := c.copy(resolved)
		if err != nil {
			return nil, err
		}
		c.dst.Set(ref, copied)
		return ref, nil

	case core.Dict:
		out := make(core.Dict, len(v))
		for key, value := range v {
			if c.skip[key] {
				continue
			}
			copied, err := c.copy(value)
			if err != nil {
				return nil, err
			}
			out[key] = copied
		}
		return out, nil

	case core.Array:
		out := make(core.Array, len(v))
		for i, elem := range v {
			copied, err := c.copy(elem)
			if err != nil {
				return nil, err
			}
			out[i] = copied
		}
		return out, nil

	case *core.Stream:
		dict, err := c.copy(v.Dict)
		if err != nil {
			return nil, err
		}
		data := make([]byte, len(v.Data))
		copy(data, v.Data)
		return &core.Stream{Dict: dict.(core.Dict), Data: data}, nil

	default:
		return obj, nil
	}
}

package objects

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/tsawler/pdfpage/core"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Graph is the JSON form of a store plus the reference of its root object
// (normally the catalog).
type Graph struct {
	Root    int                    `json:"root"`
	Objects map[string]interface{} `json:"objects"`
}

// Decode reads a JSON object graph into a new store and returns the store
// and the root reference.
func Decode(r io.Reader, opts ...Option) (*Store, core.IndirectRef, error) {
	dec := jsonAPI.NewDecoder(r)
	dec.UseNumber()

	var g Graph
	if err := dec.Decode(&g); err != nil {
		return nil, core.IndirectRef{}, fmt.Errorf("decoding object graph: %w", err)
	}

	store := NewStore(opts...)
	for key, raw := range g.Objects {
		num, err := strconv.Atoi(key)
		if err != nil || num <= 0 {
			return nil, core.IndirectRef{}, fmt.Errorf("invalid object number %q", key)
		}
		obj, err := fromJSON(raw)
		if err != nil {
			return nil, core.IndirectRef{}, fmt.Errorf("object %d: %w", num, err)
		}
		store.Set(core.IndirectRef{Number: num}, obj)
	}

	root := core.IndirectRef{Number: g.Root}
	if _, ok := store.Get(root); !ok {
		return nil, core.IndirectRef{}, core.Errorf("objects.Decode", core.ErrNoObject, "root object %d", g.Root)
	}
	return store, root, nil
}

// Encode writes the store as an indented JSON object graph.
func Encode(w io.Writer, store *Store, root core.IndirectRef) error {
	g := Graph{Root: root.Number, Objects: make(map[string]interface{}, store.Len())}
	for _, ref := range store.Refs() {
		obj, _ := store.Get(ref)
		g.Objects[strconv.Itoa(ref.Number)] = toJSON(obj)
	}

	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

func fromJSON(v interface{}) (core.Object, error) {
	switch x := v.(type) {
	case nil:
		return core.Null{}, nil
	case bool:
		return core.Bool(x), nil
	case json.Number:
		return numberFromJSON(string(x))
	case float64:
		return numberFromJSON(strconv.FormatFloat(x, 'f', -1, 64))
	case string:
		if strings.HasPrefix(x, "/") {
			return core.Name(x[1:]), nil
		}
		return core.String(x), nil
	case []interface{}:
		arr := make(core.Array, len(x))
		for i, elem := range x {
			obj, err := fromJSON(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = obj
		}
		return arr, nil
	case map[string]interface{}:
		return mapFromJSON(x)
	default:
		if s, ok := v.(fmt.Stringer); ok {
			return numberFromJSON(s.String())
		}
		return nil, fmt.Errorf("unsupported JSON value %T", v)
	}
}

func numberFromJSON(s string) (core.Object, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return core.Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return core.Real(f), nil
}

func mapFromJSON(m map[string]interface{}) (core.Object, error) {
	if raw, ok := m["ref"]; ok && len(m) <= 2 {
		num, err := fromJSON(raw)
		if err != nil {
			return nil, err
		}
		n, ok := num.(core.Int)
		if !ok {
			return nil, fmt.Errorf("ref must be an integer, got %v", raw)
		}
		ref := core.IndirectRef{Number: int(n)}
		if gen, ok := m["gen"]; ok {
			g, err := fromJSON(gen)
			if err != nil {
				return nil, err
			}
			gi, _ := g.(core.Int)
			ref.Generation = int(gi)
		}
		return ref, nil
	}

	_, plain := m["stream"]
	_, b64 := m["stream64"]
	if plain || b64 {
		dict := core.Dict{}
		if rawDict, ok := m["dict"].(map[string]interface{}); ok {
			d, err := dictFromJSON(rawDict)
			if err != nil {
				return nil, err
			}
			dict = d
		}
		var data []byte
		if s, ok := m["stream"].(string); ok {
			data = []byte(s)
		} else if s, ok := m["stream64"].(string); ok {
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("invalid stream64 payload: %w", err)
			}
			data = decoded
		}
		return &core.Stream{Dict: dict, Data: data}, nil
	}

	return dictFromJSON(m)
}

func dictFromJSON(m map[string]interface{}) (core.Dict, error) {
	dict := make(core.Dict, len(m))
	for key, raw := range m {
		obj, err := fromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
		dict[key] = obj
	}
	return dict, nil
}

func toJSON(obj core.Object) interface{} {
	switch v := obj.(type) {
	case nil, core.Null:
		return nil
	case core.Bool:
		return bool(v)
	case core.Int:
		return int64(v)
	case core.Real:
		return float64(v)
	case core.Name:
		return "/" + string(v)
	case core.String:
		return string(v)
	case core.IndirectRef:
		out := map[string]interface{}{"ref": v.Number}
		if v.Generation != 0 {
			out["gen"] = v.Generation
		}
		return out
	case core.Array:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = toJSON(elem)
		}
		return out
	case core.Dict:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			out[key] = toJSON(value)
		}
		return out
	case *core.Stream:
		out := map[string]interface{}{"dict": toJSON(v.Dict)}
		if utf8.Valid(v.Data) {
			out["stream"] = string(v.Data)
		} else {
			out["stream64"] = base64.StdEncoding.EncodeToString(v.Data)
		}
		return out
	default:
		return obj.String()
	}
}

package pages

import (
	"bytes"
	"fmt"

	"github.com/tsawler/pdfpage/core"
)

// AppendFlags control how Contents.Append places new content.
type AppendFlags int

const (
	AppendNone AppendFlags = 0
	// AppendPrepend puts the new stream in front of the existing ones.
	AppendPrepend AppendFlags = 1 << 0
	// AppendNoSaveRestorePrior leaves existing content unwrapped. By default
	// it is enclosed in q/Q so its graphics state cannot leak into the
	// appended content.
	AppendNoSaveRestorePrior AppendFlags = 1 << 1
)

// Contents is a view of a page's /Contents, either a single stream or an
// array of streams.
type Contents struct {
	page    *Page
	obj     core.Object // as stored under /Contents
	wrapped bool
	last    *core.Stream
}

func newContentsFrom(page *Page, obj core.Object) *Contents {
	return &Contents{page: page, obj: obj}
}

// Object returns the stored /Contents value.
func (c *Contents) Object() core.Object { return c.obj }

// Streams returns the content streams in painting order.
func (c *Contents) Streams() ([]*core.Stream, error) {
	store := c.page.doc.objects
	resolved, err := store.Resolve(c.obj)
	if err != nil {
		return nil, err
	}

	switch v := resolved.(type) {
	case *core.Stream:
		return []*core.Stream{v}, nil
	case core.Array:
		streams := make([]*core.Stream, 0, len(v))
		for i, elem := range v {
			obj, err := store.Resolve(elem)
			if err != nil {
				return nil, fmt.Errorf("content stream %d: %w", i, err)
			}
			stream, ok := obj.(*core.Stream)
			if !ok {
				return nil, fmt.Errorf("content stream %d: invalid type %T", i, obj)
			}
			streams = append(streams, stream)
		}
		return streams, nil
	case core.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid /Contents type: %T", resolved)
	}
}

// Data returns the decoded content of every non-empty stream, separated by
// newlines.
func (c *Contents) Data() ([]byte, error) {
	streams, err := c.Streams()
	if err != nil {
		return nil, core.NewError("Contents.Data", err)
	}
	var buf bytes.Buffer
	for i, s := range streams {
		data, err := s.Decode()
		if err != nil {
			return nil, core.NewError("Contents.Data", fmt.Errorf("content stream %d: %w", i, err))
		}
		if len(data) == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// Append adds data as a new content stream. Unless
// AppendNoSaveRestorePrior is given, the first append to a page with
// existing content replaces that content with a single stream enclosed in
// q/Q; content that is already enclosed is left as is.
func (c *Contents) Append(data []byte, flags AppendFlags) error {
	const op = "Contents.Append"

	arr, err := c.array()
	if err != nil {
		return core.NewError(op, err)
	}

	if !c.wrapped && flags&AppendNoSaveRestorePrior == 0 {
		existing, err := c.Data()
		if err != nil {
			return err
		}
		existing = bytes.TrimSpace(existing)
		if len(existing) > 0 && !isSaveRestoreWrapped(existing) {
			var buf bytes.Buffer
			buf.WriteString("q\n")
			buf.Write(existing)
			buf.WriteString("\nQ")
			ref, _, err := c.newStream(buf.Bytes())
			if err != nil {
				return core.NewError(op, err)
			}
			arr = core.Array{ref}
		}
		c.wrapped = true
	}

	ref, stream, err := c.newStream(data)
	if err != nil {
		return core.NewError(op, err)
	}
	if flags&AppendPrepend != 0 {
		arr = append(core.Array{ref}, arr...)
	} else {
		arr = append(arr, ref)
	}
	c.setArray(arr)
	c.last = stream
	return nil
}

// Stream returns the stream content is appended to: the one created by the
// most recent Append or by Page.GetOrCreateContents. It is nil for contents
// loaded from the document until the first Append.
func (c *Contents) Stream() *core.Stream { return c.last }

// array returns /Contents as an array, converting a single stream into a
// one-element array stored as its own object.
func (c *Contents) array() (core.Array, error) {
	store := c.page.doc.objects
	resolved, err := store.Resolve(c.obj)
	if err != nil {
		return nil, err
	}

	switch v := resolved.(type) {
	case core.Array:
		return v, nil
	case *core.Stream:
		elem := c.obj
		if _, isRef := elem.(core.IndirectRef); !isRef {
			elem = store.Allocate(v)
		}
		arr := core.Array{elem}
		ref := store.Allocate(arr)
		c.obj = ref
		c.page.node.Set("Contents", ref)
		return arr, nil
	case core.Null:
		return core.Array{}, nil
	default:
		return nil, fmt.Errorf("invalid /Contents type: %T", resolved)
	}
}

// setArray stores arr wherever /Contents keeps its array.
func (c *Contents) setArray(arr core.Array) {
	if ref, ok := c.obj.(core.IndirectRef); ok {
		c.page.doc.objects.Set(ref, arr)
		return
	}
	ref := c.page.doc.objects.Allocate(arr)
	c.obj = ref
	c.page.node.Set("Contents", ref)
}

func (c *Contents) newStream(data []byte) (core.IndirectRef, *core.Stream, error) {
	stream := core.NewStream(nil)
	if err := stream.SetData(data, c.page.doc.cfg.compress); err != nil {
		return core.IndirectRef{}, nil, err
	}
	return c.page.doc.objects.Allocate(stream), stream, nil
}

// isSaveRestoreWrapped reports whether data is a single q ... Q block: the
// first token is q and the Q balancing it is the last token.
func isSaveRestoreWrapped(data []byte) bool {
	depth := 0
	closed, sawToken, wrapped := false, false, true
	scanContentTokens(data, func(tok []byte) bool {
		if closed || (!sawToken && !bytes.Equal(tok, []byte("q"))) {
			wrapped = false
			return false
		}
		sawToken = true
		switch string(tok) {
		case "q":
			depth++
		case "Q":
			depth--
			closed = depth == 0
		}
		return true
	})
	return wrapped && closed
}

// scanContentTokens calls fn for every token of a content stream until fn
// returns false. Strings, hex strings and comments are skipped whole so
// operator names inside them are not reported; inline image data between
// ID and EI is skipped as well.
func scanContentTokens(data []byte, fn func(tok []byte) bool) {
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isWhitespace(c):
			i++
			continue
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
			continue
		case c == '(':
			start := i
			i = skipLiteralString(data, i)
			if !fn(data[start:i]) {
				return
			}
			continue
		case c == '<' && i+1 < len(data) && data[i+1] == '<',
			c == '>' && i+1 < len(data) && data[i+1] == '>':
			if !fn(data[i : i+2]) {
				return
			}
			i += 2
			continue
		case c == '<':
			start := i
			for i < len(data) && data[i] != '>' {
				i++
			}
			if i < len(data) {
				i++
			}
			if !fn(data[start:i]) {
				return
			}
			continue
		case c == '[' || c == ']' || c == '{' || c == '}':
			if !fn(data[i : i+1]) {
				return
			}
			i++
			continue
		}

		start := i
		i++
		for i < len(data) && !isWhitespace(data[i]) && !isDelimiter(data[i]) {
			i++
		}
		tok := data[start:i]
		if !fn(tok) {
			return
		}
		if bytes.Equal(tok, []byte("ID")) {
			i = skipInlineImage(data, i)
		}
	}
}

// skipLiteralString returns the index just past the balanced string that
// starts at data[i] == '('.
func skipLiteralString(data []byte, i int) int {
	depth := 0
	for ; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(data)
}

// skipInlineImage returns the index of the EI operator ending the inline
// image data that starts after the ID operator at i.
func skipInlineImage(data []byte, i int) int {
	for ; i+2 <= len(data); i++ {
		if isWhitespace(data[i-1]) && data[i] == 'E' && data[i+1] == 'I' &&
			(i+2 == len(data) || isWhitespace(data[i+2]) || isDelimiter(data[i+2])) {
			return i
		}
	}
	return len(data)
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// Contents returns the page contents, or nil when the page has none.
func (p *Page) Contents() *Contents { return p.contents }

// GetOrCreateContents returns the page contents. A page without contents
// gets a new, empty content stream referenced from /Contents.
func (p *Page) GetOrCreateContents() *Contents {
	if p.contents == nil {
		stream := core.NewStream(nil)
		stream.Dict.Set("Length", core.Int(0))
		ref := p.doc.objects.Allocate(stream)
		p.node.Set("Contents", ref)
		p.contents = newContentsFrom(p, ref)
		p.contents.last = stream
	}
	return p.contents
}

// MustGetContents returns the page contents or core.ErrInvalidHandle when
// there are none.
func (p *Page) MustGetContents() (*Contents, error) {
	if p.contents == nil {
		return nil, core.Errorf("Page.MustGetContents", core.ErrInvalidHandle, "page has no contents")
	}
	return p.contents, nil
}

// AppendContent appends data to the page contents, creating them first.
func (p *Page) AppendContent(data []byte, flags AppendFlags) error {
	return p.GetOrCreateContents().Append(data, flags)
}

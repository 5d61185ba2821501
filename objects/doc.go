// Package objects provides the document-wide indirect object store.
//
// Page-tree nodes are owned by a [Store]; everything else (pages,
// annotations, fields) holds references into it. The store resolves
// indirect references, allocates new objects and copies object graphs
// between documents:
//
//	store := objects.NewStore()
//	ref := store.Allocate(core.Dict{"Type": core.Name("Page")})
//	obj, err := store.ResolveReference(ref)
//
// # Deep Resolution
//
// [Store.ResolveDeep] expands every nested reference, detecting circular
// references and bounding recursion depth:
//
//	store := objects.NewStore(objects.WithMaxDepth(50))
//
// # JSON Node Graphs
//
// [Decode] and [Encode] read and write a JSON description of an object
// graph. Names are strings with a leading slash, references are objects
// of the form {"ref": 5}, and streams are {"dict": {...}, "stream": "..."}.
package objects

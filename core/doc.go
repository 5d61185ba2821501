// Package core defines the object model shared by the object store and the
// page model.
//
// # Object Types
//
// Every value stored in a page-tree node satisfies the [Object] interface:
//
//   - [Null], [Bool], [Int], [Real], [String], [Name]
//   - [Array] and [Dict]
//   - [Stream], a dictionary plus payload bytes
//   - [IndirectRef], a reference to an object held by the store
//
// A node is a [Dict]. Presence of a key, not its value, is what attribute
// inheritance looks at, so [Dict.Has] is the primitive the page model uses.
//
// # Streams
//
// [Stream.Decode] undoes the filters named in /Filter (FlateDecode,
// ASCIIHexDecode, ASCII85Decode, CCITTFaxDecode); [Stream.SetData] writes a
// payload, optionally flate compressed.
//
// # Errors
//
// The sentinel errors [ErrValueOutOfRange], [ErrInvalidRotation],
// [ErrBrokenFile], [ErrNoObject] and [ErrInvalidHandle] classify failures
// across packages; [Error] adds the failing operation's name.
package core

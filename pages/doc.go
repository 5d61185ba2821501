// Package pages provides the page model of a PDF document: page tree
// navigation, inherited page attributes and rotation-aware page geometry.
//
// # Documents and Page Trees
//
// A [Document] binds an object store to its catalog and page tree. The
// [PageTree] keeps Kids, Count and Parent consistent as pages are created,
// inserted, moved and removed:
//
//	doc := pages.NewDocument()
//	page, _ := doc.Pages().CreatePage(pages.StandardPageSize(pages.A4, false))
//	_ = page.SetRotation(90)
//
// An existing node graph is opened with [Open], which walks the tree
// depth-first and captures every page's ancestors.
//
// # Inheritance
//
// MediaBox, CropBox, Rotate and Resources may be defined on an ancestor
// Pages node. Lookups check the page first and then its ancestors, nearest
// first. Resources are resolved once, when the page is loaded; boxes and
// rotation are looked up on every call. Setters always write to the page
// node.
//
// # Geometry
//
// Boxes are returned either raw, as stored, or in the visual frame, where
// width and height are exchanged for pages rotated by 90 or 270 degrees.
// Missing boxes fall back ArtBox/BleedBox/TrimBox → CropBox → MediaBox.
//
// # Auxiliary Operations
//
// Pages also carry resources ([Resources]), content streams ([Contents]),
// ICC color profiles, annotations and form fields.
package pages

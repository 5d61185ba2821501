// Package form creates interactive form fields (AcroForm) bound to widget
// annotations.
//
// A field is created on top of an existing widget annotation: the widget
// dictionary becomes a merged field/widget dictionary carrying /FT, /Ff and
// /T, and its reference is appended to the catalog's /AcroForm /Fields array
// (the AcroForm dictionary is created on first use).
//
//	field, err := form.Create(doc, "email", widget, widgetRef, form.TextBox)
//
// Field names are PDF text strings: plain ASCII is stored as-is, anything
// else as UTF-16BE with a byte order mark. [EncodeTextString] and
// [DecodeTextString] do the conversion.
package form

// SPDX-License-Identifier: MPL-2.0

// Package nsconfig defines the documents a content directory is made of and
// their CUE encodings.
//
// A content directory holds one folder per namespace plus a loading order:
//
//	<content_dir>/loading_order.cue          "vanilla": {enabled: true}
//	<content_dir>/<ns>/namespace.cue         namespace, version, dependencies
//	<content_dir>/<ns>/configs/<name>.cue    entries: [...] or entries: {...}
//
// The order of fields in loading_order.cue is the order in which namespaces are
// loaded, so it is read and written field by field.
package nsconfig

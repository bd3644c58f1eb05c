// SPDX-License-Identifier: MPL-2.0

// Package cueutil reads and writes the CUE documents that make up a content
// directory: the loading order, namespace descriptors and config fragments.
//
// Reading follows one flow everywhere:
//
//  1. Compile the embedded schema
//  2. Compile the document and unify it with a schema definition
//  3. Validate, then decode into a Go value or walk its fields in order
//
// # Usage
//
//	//go:embed schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[Descriptor](
//	    schema,
//	    data,
//	    "#Descriptor",
//	    cueutil.WithFilename("namespace.cue"),
//	)
//
// Writing goes through [Marshal] for plain Go values and [Document] when the
// order of top-level fields carries meaning.
package cueutil

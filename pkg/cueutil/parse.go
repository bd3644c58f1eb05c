// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type (
	// ParseResult holds a decoded document together with its unified CUE value.
	ParseResult[T any] struct {
		Value *T

		// Unified is kept for callers that need more than the decoded struct,
		// such as the declaration order of fields.
		Unified cue.Value
	}

	// Field is one regular field of a CUE struct.
	Field struct {
		Label string
		Value cue.Value
	}
)

// Unify compiles schema and data, unifies data with the definition at
// schemaPath and validates the result.
func Unify(schema, data []byte, schemaPath string, opts ...Option) (cue.Value, error) {
	o := applyOptions(opts)

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), o.filename)
	}

	def := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, def.Err())
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}

// ParseAndDecode unifies data with the schema definition at schemaPath and
// decodes the result into a T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	unified, err := Unify(schema, data, schemaPath, opts...)
	if err != nil {
		return nil, err
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, applyOptions(opts).filename)
	}

	return &ParseResult[T]{Value: &result, Unified: unified}, nil
}

// Fields lists the regular fields of the struct v in declaration order.
func Fields(v cue.Value) ([]Field, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, err
	}

	var fields []Field
	for iter.Next() {
		fields = append(fields, Field{
			Label: iter.Selector().Unquoted(),
			Value: iter.Value(),
		})
	}
	return fields, nil
}

// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// Document builds a CUE file whose top-level fields keep the order they were
// added in. Labels are always written quoted.
type Document struct {
	decls []ast.Decl
}

// Marshal encodes a Go struct or map as a CUE file. Struct fields follow their
// json tags.
func Marshal(v any) ([]byte, error) {
	expr, err := encode(v)
	if err != nil {
		return nil, err
	}
	st, ok := expr.(*ast.StructLit)
	if !ok {
		return nil, fmt.Errorf("cannot marshal %T as a CUE file: not a struct", v)
	}
	return format.Node(&ast.File{Decls: st.Elts})
}

// Add appends the field label: value.
func (d *Document) Add(label string, value any) error {
	expr, err := encode(value)
	if err != nil {
		return fmt.Errorf("field %q: %w", label, err)
	}
	d.decls = append(d.decls, &ast.Field{Label: ast.NewString(label), Value: expr})
	return nil
}

// Len returns the number of fields added so far.
func (d *Document) Len() int { return len(d.decls) }

// Bytes formats the document.
func (d *Document) Bytes() ([]byte, error) {
	return format.Node(&ast.File{Decls: d.decls})
}

func encode(v any) (ast.Expr, error) {
	val := cuecontext.New().Encode(v)
	if val.Err() != nil {
		return nil, val.Err()
	}
	switch n := val.Syntax(cue.Final(), cue.Concrete(true)).(type) {
	case ast.Expr:
		return n, nil
	case *ast.File:
		return &ast.StructLit{Elts: n.Decls}, nil
	default:
		return nil, fmt.Errorf("unexpected syntax node %T", n)
	}
}

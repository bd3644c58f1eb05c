// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "reconcile loading order"},
			expected: "failed to reconcile loading order",
		},
		{
			name:     "with resource",
			err:      &ActionableError{Operation: "read descriptor", Resource: "mods/a/namespace.cue"},
			expected: "failed to read descriptor: mods/a/namespace.cue",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "read descriptor",
				Resource:  "mods/a/namespace.cue",
				Cause:     fs.ErrNotExist,
			},
			expected: "failed to read descriptor: mods/a/namespace.cue: file does not exist",
		},
		{
			name: "with namespace",
			err: &ActionableError{
				Operation: "recreate vanilla descriptor",
				Namespace: "vanilla",
				Resource:  "content/vanilla/namespace.cue",
			},
			expected: "failed to recreate vanilla descriptor in namespace vanilla: content/vanilla/namespace.cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("load order unavailable")
	err := NewErrorContext().WithOperation("load order").Wrap(sentinel).BuildError()
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped cause")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As should find *ActionableError")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	err := &ActionableError{
		Operation:   "write loading order",
		Resource:    "content/loading_order.cue",
		Suggestions: []string{"Check directory permissions", "Run 'contentctl order reconcile'"},
		Cause:       fmt.Errorf("write failed: %w", errors.Join(errors.New("rename"), inner)),
	}

	short := err.Format(false)
	for _, want := range []string{"failed to write loading order", "• Check directory permissions", "• Run 'contentctl order reconcile'"} {
		if !strings.Contains(short, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, short)
		}
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	for _, want := range []string{"Error chain:", "1. write failed", "3. rename", "4. permission denied"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without an operation should return nil")
	}

	ae := NewErrorContext().
		WithOperation("check dependencies").
		WithResource("my_mod").
		WithSuggestion("Enable lib").
		WithSuggestions("Move lib up", "Remove the dependency").
		Build()
	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if !ae.HasSuggestions() || len(ae.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3", ae.Suggestions)
	}
	if ae.Resource != "my_mod" {
		t.Errorf("Resource = %q", ae.Resource)
	}
}

func TestErrorContext_BuildCopies(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("create namespace").WithNamespace("mod1").WithSuggestion("first")
	a := ctx.Build()
	b := ctx.WithSuggestion("second").Build()

	if len(a.Suggestions) != 1 || len(b.Suggestions) != 2 {
		t.Errorf("suggestions = %v / %v, want 1 and 2", a.Suggestions, b.Suggestions)
	}
	if a == b || a.Namespace != "mod1" {
		t.Errorf("Build() should return independent copies, got %+v", a)
	}
}

func TestIssueOf(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("validate dependencies").
		WithIssue(DependencyCycleId).
		BuildError()
	wrapped := errors.Join(errors.New("deps check"), err)

	if got := IssueOf(wrapped); got == nil || got.Id() != DependencyCycleId {
		t.Errorf("IssueOf() = %v, want dependency cycle issue", got)
	}
	if IssueOf(errors.New("plain")) != nil {
		t.Error("IssueOf(plain error) should be nil")
	}
	if IssueOf(NewErrorContext().WithOperation("x").BuildError()) != nil {
		t.Error("IssueOf without a linked issue should be nil")
	}
}

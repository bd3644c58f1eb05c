// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

const (
	// SeverityWarning indicates a recoverable aggregation warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a fragment or entry that was not applied.
	SeverityError Severity = "error"
)

// Diagnostic codes.
const (
	CodeFragmentRejected = "fragment_rejected"
	CodeVanillaRecreated = "vanilla_recreated"
	CodeNamespaceSkipped = "namespace_skipped"
	CodeRemoveDenied     = "remove_denied"
	CodeEntryRejected    = "entry_rejected"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a non-fatal problem found during a pass. It is returned to
	// the caller instead of being printed.
	Diagnostic struct {
		Severity  Severity
		Code      string
		Namespace namespace.Name
		Message   string
		// Cause is the underlying error (optional).
		Cause error
	}

	// Report describes one aggregation pass.
	Report struct {
		ConfigName string
		// Loaded lists the namespaces whose contribution was applied, in order.
		Loaded      []namespace.Name
		Diagnostics []Diagnostic
	}
)

func (r *Report) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// HasErrors reports whether any diagnostic has error severity.
func (r Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByCode returns the diagnostics with the given code.
func (r Report) ByCode(code string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func mockRender(t *testing.T) {
	t.Helper()
	original := render
	t.Cleanup(func() { render = original })
	render = func(in string, _ string) (string, error) { return in, nil }
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		contains string
	}{
		{ContentDirMissingId, "Content directory not found"},
		{LoadOrderCorruptedId, "loading order could not be read"},
		{VanillaRecreatedId, "built-in namespace was repaired"},
		{DependencyViolationsId, "unmet dependencies"},
		{DependencyCycleId, "Dependency cycle"},
		{NamespaceResolutionFailedId, "could not be namespaced"},
		{FragmentParseFailedId, "config fragment is invalid"},
		{ConfigLoadFailedId, "Failed to load configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)
			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", issue.Id(), tt.id)
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}

	if Get(Id(9999)) != nil {
		t.Error("Get of an unknown id should return nil")
	}
}

func TestValues(t *testing.T) {
	issues := Values()
	if len(issues) != int(ConfigLoadFailedId) {
		t.Fatalf("Values() returned %d issues, want %d", len(issues), ConfigLoadFailedId)
	}
	for i, issue := range issues {
		if issue.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), i+1)
		}
	}
}

func TestIssue_ExtLinksAreCloned(t *testing.T) {
	issue := Get(ConfigLoadFailedId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("config issue should carry an external link")
	}
	original := links[0]
	links[0] = "modified"
	if issue.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	mockRender(t)

	withLinks := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}
	rendered, err := withLinks.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"See also", "docs.example.com", "external.example.com"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() output should contain %q:\n%s", want, rendered)
		}
	}

	plain := &Issue{id: Id(9998), mdMsg: "# Test"}
	rendered, err = plain.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesRenderWithGlamour(t *testing.T) {
	for _, issue := range Values() {
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", issue.Id(), err)
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("issue %d rendered to an empty string", issue.Id())
		}
	}
}

// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

// ContentDir is a content directory under a test's temp dir. Every method
// fails the test on error and returns the receiver for chaining.
type ContentDir struct {
	t    testing.TB
	Root string
}

// NewContentDir creates an empty content directory.
func NewContentDir(t testing.TB) *ContentDir {
	t.Helper()
	root := filepath.Join(t.TempDir(), "content")
	MustMkdirAll(t, root)
	return &ContentDir{t: t, Root: root}
}

// Path joins elem onto the content root.
func (c *ContentDir) Path(elem ...string) string {
	return filepath.Join(append([]string{c.Root}, elem...)...)
}

// Namespace writes the descriptor of ns.
func (c *ContentDir) Namespace(ns, version string, deps ...string) *ContentDir {
	c.t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "namespace: %q\nversion: %q\n", ns, version)
	if len(deps) > 0 {
		quoted := make([]string, len(deps))
		for i, d := range deps {
			quoted[i] = fmt.Sprintf("%q", d)
		}
		fmt.Fprintf(&b, "dependencies: [%s]\n", strings.Join(quoted, ", "))
	}
	MustWriteFile(c.t, c.Path(ns, nsconfig.DescriptorFile), []byte(b.String()))
	return c
}

// Fragment writes a raw fragment of ns.
func (c *ContentDir) Fragment(ns, configName, body string) *ContentDir {
	c.t.Helper()
	MustWriteFile(c.t, c.Path(ns, nsconfig.ConfigsDir, configName+nsconfig.FragmentExt), []byte(body))
	return c
}

// ListFragment writes a list fragment holding entries.
func (c *ContentDir) ListFragment(ns, configName string, entries ...string) *ContentDir {
	c.t.Helper()
	data, err := nsconfig.FormatListFragment(entries)
	if err != nil {
		c.t.Fatalf("failed to format fragment %s/%s: %v", ns, configName, err)
	}
	return c.Fragment(ns, configName, string(data))
}

// LoadingOrder writes the loading order file verbatim.
func (c *ContentDir) LoadingOrder(body string) *ContentDir {
	c.t.Helper()
	MustWriteFile(c.t, c.Path(nsconfig.LoadingOrderFile), []byte(body))
	return c
}

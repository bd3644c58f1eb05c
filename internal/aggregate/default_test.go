// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/config"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/fragment"
)

func TestDefault(t *testing.T) {
	t.Cleanup(ResetDefault)
	ResetDefault()

	a := Default()
	if a != Default() {
		t.Fatal("Default() should return the same aggregator until reset")
	}
	if a.vanilla() != "vanilla" || a.marker() != DefaultRemoveMarker {
		t.Errorf("Default() vanilla = %q, marker = %q", a.vanilla(), a.marker())
	}

	cfg := config.DefaultConfig()
	cfg.ContentDir = t.TempDir()
	cfg.Vanilla.Namespace = "core"
	cfg.Separators.Namespace = "#"
	cfg.RemoveMarker = "!"
	cfg.Loading.DefaultToVanilla = true
	Configure(cfg, log.New(io.Discard))

	b := Default()
	if b == a {
		t.Fatal("Configure() should drop the built aggregator")
	}
	if b.vanilla() != "core" || b.marker() != "!" {
		t.Errorf("configured vanilla = %q, marker = %q", b.vanilla(), b.marker())
	}
	if b.Resolver.Separator != '#' || !b.Resolver.DefaultToVanilla {
		t.Errorf("Resolver = %+v", b.Resolver)
	}
	if s, ok := b.Store.(*fragment.Store); !ok || s.Root() != cfg.ContentDir {
		t.Errorf("Store = %#v, want a fragment.Store at %s", b.Store, cfg.ContentDir)
	}

	ResetDefault()
	if Default().vanilla() != "vanilla" {
		t.Error("ResetDefault() should restore the default settings")
	}
}

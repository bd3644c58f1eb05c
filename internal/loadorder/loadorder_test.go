// SPDX-License-Identifier: MPL-2.0

package loadorder

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/fragment"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

var testVanilla = nsconfig.ConfigData{Namespace: "vanilla", Version: "2.1"}

func newTestManager(t *testing.T, folders ...string) (*Manager, *fragment.Store) {
	t.Helper()
	store := fragment.NewStore(t.TempDir())
	for _, f := range folders {
		if err := os.MkdirAll(store.NamespaceDir(namespace.Name(f)), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return NewManager(store, testVanilla, log.New(io.Discard)), store
}

func names(order []nsconfig.LoadingEntry) []namespace.Name {
	out := make([]namespace.Name, 0, len(order))
	for _, e := range order {
		out = append(out, e.Namespace)
	}
	return out
}

func TestGetAndReconcile_FreshDirectory(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, "b_mod", "a_mod")

	got, err := m.GetAndReconcile(false, true)
	if err != nil {
		t.Fatalf("GetAndReconcile() error = %v", err)
	}
	if !got.VanillaInvalid || !got.Changed {
		t.Errorf("first run: VanillaInvalid=%v Changed=%v, want both true", got.VanillaInvalid, got.Changed)
	}
	want := []nsconfig.LoadingEntry{
		{Namespace: "vanilla", Enabled: true},
		{Namespace: "a_mod", Enabled: false},
		{Namespace: "b_mod", Enabled: false},
	}
	if !slices.Equal(got.Order, want) {
		t.Errorf("Order = %v, want %v", got.Order, want)
	}

	cd, err := store.ReadDescriptor("vanilla")
	if err != nil || cd.Version != testVanilla.Version {
		t.Errorf("vanilla descriptor = %v, %v", cd, err)
	}
}

func TestGetAndReconcile_Idempotent(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, "vanilla", "lib", "mod")
	first, err := m.GetAndReconcile(true, false)
	if err != nil {
		t.Fatal(err)
	}

	second, err := m.GetAndReconcile(true, false)
	if err != nil {
		t.Fatalf("second GetAndReconcile() error = %v", err)
	}
	if second.Changed || second.VanillaInvalid {
		t.Errorf("second run: Changed=%v VanillaInvalid=%v, want false", second.Changed, second.VanillaInvalid)
	}
	if !slices.Equal(first.Order, second.Order) {
		t.Errorf("order changed between runs: %v -> %v", first.Order, second.Order)
	}
}

func TestGetAndReconcile_KeepsUserOrder(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t, "a", "b", "c")
	if err := store.WriteDescriptor(testVanilla); err != nil {
		t.Fatal(err)
	}
	userOrder := []nsconfig.LoadingEntry{
		{Namespace: "c", Enabled: true},
		{Namespace: "gone", Enabled: true},
		{Namespace: "vanilla", Enabled: true},
		{Namespace: "a", Enabled: false},
	}
	if err := m.Set(userOrder); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetAndReconcile(true, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.VanillaInvalid {
		t.Error("vanilla descriptor was valid")
	}
	if !got.Changed {
		t.Error("dropping 'gone' and appending 'b' is a change")
	}
	if want := []namespace.Name{"c", "vanilla", "a", "b"}; !slices.Equal(names(got.Order), want) {
		t.Errorf("Order = %v, want %v", names(got.Order), want)
	}
	if got.Order[2].Enabled {
		t.Error("existing entries keep their enabled flag")
	}

	persisted, ok := m.Get()
	if !ok || !slices.Equal(persisted, got.Order) {
		t.Errorf("persisted order = %v, want %v", persisted, got.Order)
	}
}

func TestGetAndReconcile_OutdatedVanilla(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		descriptor string
	}{
		{"old version", `namespace: "vanilla", version: "1.0"`},
		{"wrong namespace", `namespace: "other", version: "2.1"`},
		{"unparsable", `namespace: `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, store := newTestManager(t, "vanilla")
			if err := os.WriteFile(store.DescriptorPath("vanilla"), []byte(tt.descriptor), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := m.GetAndReconcile(true, false)
			if err != nil {
				t.Fatal(err)
			}
			if !got.VanillaInvalid {
				t.Error("VanillaInvalid should be set")
			}
			if cd, err := store.ReadDescriptor("vanilla"); err != nil || cd.Version != "2.1" {
				t.Errorf("descriptor after repair = %v, %v", cd, err)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	persisted := []nsconfig.LoadingEntry{
		{Namespace: "a", Enabled: false},
		{Namespace: "a", Enabled: true},
		{Namespace: "vanilla", Enabled: false},
		{Namespace: "x", Enabled: true},
	}
	got := reconcile(persisted, []namespace.Name{"a", "n"}, "vanilla", true, false)
	want := []nsconfig.LoadingEntry{
		{Namespace: "a", Enabled: false},
		{Namespace: "vanilla", Enabled: false},
		{Namespace: "n", Enabled: true},
	}
	if !slices.Equal(got, want) {
		t.Errorf("reconcile() = %v, want %v", got, want)
	}

	got = reconcile(nil, nil, "vanilla", false, true)
	if len(got) != 1 || got[0] != (nsconfig.LoadingEntry{Namespace: "vanilla", Enabled: true}) {
		t.Errorf("reconcile(empty) = %v, want vanilla enabled", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t)
	if _, ok := m.Get(); ok {
		t.Error("Get() on a missing file should report false")
	}

	if err := os.WriteFile(store.LoadingOrderPath(), []byte(`"vanilla": {enabled: `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Get(); ok {
		t.Error("Get() on a broken file should report false")
	}

	if err := os.WriteFile(store.LoadingOrderPath(), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Get(); ok {
		t.Error("Get() on an empty file should report false")
	}
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, "z", "vanilla", "k")
	order, err := m.GetOrCreate()
	if err != nil {
		t.Fatal(err)
	}
	if want := []namespace.Name{"vanilla", "k", "z"}; !slices.Equal(names(order), want) {
		t.Errorf("GetOrCreate() = %v, want %v", names(order), want)
	}
	for _, e := range order {
		if !e.Enabled {
			t.Errorf("%s should be enabled", e.Namespace)
		}
	}

	again, err := m.GetOrCreate()
	if err != nil || !slices.Equal(order, again) {
		t.Errorf("second GetOrCreate() = %v, %v", again, err)
	}
}

func TestSetEnabledAndMove(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, "vanilla", "a", "b")
	if _, err := m.GetOrCreate(); err != nil {
		t.Fatal(err)
	}

	if err := m.SetEnabled("a", false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	if err := m.Move("b", 0); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if err := m.Move("vanilla", 99); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	order, _ := m.Get()
	want := []nsconfig.LoadingEntry{
		{Namespace: "b", Enabled: true},
		{Namespace: "a", Enabled: false},
		{Namespace: "vanilla", Enabled: true},
	}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	if err := m.SetEnabled("nope", true); !errors.Is(err, ErrUnknownNamespace) {
		t.Errorf("SetEnabled(unknown) error = %v, want ErrUnknownNamespace", err)
	}
	if err := m.Move("nope", 1); !errors.Is(err, ErrUnknownNamespace) {
		t.Errorf("Move(unknown) error = %v, want ErrUnknownNamespace", err)
	}
}

// unreadableStore accepts writes of the loading order but never returns it.
type unreadableStore struct {
	*fragment.Store
}

func (unreadableStore) ReadLoadingOrder() ([]nsconfig.LoadingEntry, error) {
	return nil, errors.New("disk on fire")
}

func TestGetAndReconcile_Unavailable(t *testing.T) {
	t.Parallel()

	store := unreadableStore{fragment.NewStore(filepath.Join(t.TempDir(), "content"))}
	m := NewManager(store, testVanilla, log.New(io.Discard))

	_, err := m.GetAndReconcile(true, false)
	if !errors.Is(err, ErrLoadOrderUnavailable) {
		t.Fatalf("expected ErrLoadOrderUnavailable, got %v", err)
	}
	if got := issue.IssueOf(err); got == nil || got.Id() != issue.LoadOrderCorruptedId {
		t.Errorf("error should link the corrupted load order issue, got %v", got)
	}
}

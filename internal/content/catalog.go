// SPDX-License-Identifier: MPL-2.0

// Package content owns the enum registries that game systems consume and fills
// them from the namespaces of a content root.
//
// A [Catalog] is the single place those registries live. It is built once,
// filled by [Catalog.Initialize] and emptied again by [Catalog.Reset], so tests
// can start from a clean state without touching globals.
package content

import (
	"embed"
	"fmt"
	"slices"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/aggregate"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/enum"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/enumtree"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

// Domain names, which double as fragment names under configs/.
const (
	DomainItemTypes    = "item_types"
	DomainContentTypes = "content_types"
	DomainMaterials    = "materials"
	DomainAttributes   = "attributes"
	DomainActionTypes  = "action_types"
)

//go:embed defaults/*.cue
var defaults embed.FS

type (
	// Tag types that keep the registries apart at compile time.
	ItemType    struct{}
	ContentType struct{}
	Material    struct{}
	Attribute   struct{}
	ActionType  struct{}

	// Catalog holds every content registry.
	Catalog struct {
		ItemTypes    *enumtree.Registry[ItemType]
		ContentTypes *enumtree.Registry[ContentType]
		Materials    *enum.Registry[Material]
		Attributes   *enum.Registry[Attribute]
		// ActionTypes is append-only: namespaces can add actions but never
		// retract one another's.
		ActionTypes *enum.Registry[ActionType]
	}

	// Domain describes one registry of the catalog.
	Domain struct {
		Name string
		Tree bool
		// Removable reports whether fragments may retract values.
		Removable bool
	}

	// Entry is one registry with its current names. Trees list full names in
	// pre-order.
	Entry struct {
		Domain Domain
		Names  []string
	}
)

// NewCatalog creates empty registries. layerSep separates tree layers; zero
// keeps the enumtree default.
func NewCatalog(layerSep rune) *Catalog {
	var treeOpts []enumtree.Option
	if layerSep != 0 {
		treeOpts = append(treeOpts, enumtree.WithSeparator(layerSep))
	}
	return &Catalog{
		ItemTypes:    enumtree.New[ItemType]("item type", append(slices.Clone(treeOpts), enumtree.WithRemovable(), enumtree.WithClearable())...),
		ContentTypes: enumtree.New[ContentType]("content type", append(slices.Clone(treeOpts), enumtree.WithRemovable())...),
		Materials:    enum.New[Material]("material", enum.WithRemovable(), enum.WithClearable()),
		Attributes:   enum.New[Attribute]("attribute", enum.WithRemovable()),
		ActionTypes:  enum.New[ActionType]("action type"),
	}
}

// Domains lists the registries in the order Initialize fills them.
func (c *Catalog) Domains() []Domain {
	return []Domain{
		{Name: DomainItemTypes, Tree: true, Removable: c.ItemTypes.IsRemovable()},
		{Name: DomainContentTypes, Tree: true, Removable: c.ContentTypes.IsRemovable()},
		{Name: DomainMaterials, Removable: c.Materials.IsRemovable()},
		{Name: DomainAttributes, Removable: c.Attributes.IsRemovable()},
		{Name: DomainActionTypes, Removable: c.ActionTypes.IsRemovable()},
	}
}

// Domain looks up a domain by name.
func (c *Catalog) Domain(name string) (Domain, bool) {
	i := slices.IndexFunc(c.Domains(), func(d Domain) bool { return d.Name == name })
	if i < 0 {
		return Domain{}, false
	}
	return c.Domains()[i], true
}

// Reset empties every registry. Indices start over.
func (c *Catalog) Reset() {
	c.ItemTypes.Reset()
	c.ContentTypes.Reset()
	c.Materials.Reset()
	c.Attributes.Reset()
	c.ActionTypes.Reset()
}

// Initialize resets the catalog and aggregates every domain from the
// namespaces in order. It returns one report per domain, in Domains order.
func (c *Catalog) Initialize(a *aggregate.Aggregator, order []nsconfig.LoadingEntry, opts ...aggregate.Option) []aggregate.Report {
	c.Reset()
	reports := make([]aggregate.Report, 0, 5)

	_, r := aggregate.Run(a, order, aggregate.TreeEnum[ItemType](a, c.ItemTypes, DomainItemTypes, DefaultFragment(DomainItemTypes)), opts...)
	reports = append(reports, r)
	_, r = aggregate.Run(a, order, aggregate.TreeEnum[ContentType](a, c.ContentTypes, DomainContentTypes, DefaultFragment(DomainContentTypes)), opts...)
	reports = append(reports, r)
	_, r = aggregate.Run(a, order, aggregate.FlatEnum[Material](a, c.Materials, DomainMaterials, DefaultFragment(DomainMaterials)), opts...)
	reports = append(reports, r)
	_, r = aggregate.Run(a, order, aggregate.FlatEnum[Attribute](a, c.Attributes, DomainAttributes, DefaultFragment(DomainAttributes)), opts...)
	reports = append(reports, r)
	_, r = aggregate.Run(a, order, aggregate.FlatEnum[ActionType](a, c.ActionTypes, DomainActionTypes, DefaultFragment(DomainActionTypes)), opts...)
	reports = append(reports, r)

	return reports
}

// Names returns the current names of a domain.
func (c *Catalog) Names(domain string) ([]string, error) {
	switch domain {
	case DomainItemTypes:
		return c.ItemTypes.AllFullNames(), nil
	case DomainContentTypes:
		return c.ContentTypes.AllFullNames(), nil
	case DomainMaterials:
		return c.Materials.Names(), nil
	case DomainAttributes:
		return c.Attributes.Names(), nil
	case DomainActionTypes:
		return c.ActionTypes.Names(), nil
	default:
		return nil, fmt.Errorf("unknown content domain %q", domain)
	}
}

// Snapshot lists every domain with its names.
func (c *Catalog) Snapshot() []Entry {
	domains := c.Domains()
	out := make([]Entry, 0, len(domains))
	for _, d := range domains {
		names, _ := c.Names(d.Name)
		out = append(out, Entry{Domain: d, Names: names})
	}
	return out
}

// DefaultFragment returns the built-in vanilla fragment for a domain, or nil.
func DefaultFragment(domain string) []byte {
	data, err := defaults.ReadFile("defaults/" + domain + nsconfig.FragmentExt)
	if err != nil {
		return nil
	}
	return data
}

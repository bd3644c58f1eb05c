// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ContentDirMissingId Id = iota + 1
	LoadOrderCorruptedId
	VanillaRecreatedId
	DependencyViolationsId
	DependencyCycleId
	NamespaceResolutionFailedId
	FragmentParseFailedId
	ConfigLoadFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the given glamour style
// ("auto", "dark", "light", "notty" or a JSON style path).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	contentDirMissingIssue = &Issue{
		id: ContentDirMissingId,
		mdMsg: `
# Content directory not found!

The content directory holds one folder per namespace and the loading order.

## Things you can try:
- Point contentctl at an existing directory:
~~~
$ contentctl --content-dir ./content order show
~~~
- Or set ` + "`content_dir`" + ` in your config file:
~~~
$ contentctl config init
~~~
- Create the built-in namespace in a new directory:
~~~
$ contentctl order reconcile
~~~`,
	}

	loadOrderCorruptedIssue = &Issue{
		id: LoadOrderCorruptedId,
		mdMsg: `
# The loading order could not be read or written!

` + "`loading_order.cue`" + ` was recreated but still cannot be loaded. The content
directory is probably read-only or the file is being replaced by another program.

## Things you can try:
- Check the permissions of the content directory
- Delete ` + "`loading_order.cue`" + ` and run:
~~~
$ contentctl order reconcile
~~~

## Expected format:
~~~cue
"vanilla": {enabled: true}
"my_mod":  {enabled: false}
~~~`,
	}

	vanillaRecreatedIssue = &Issue{
		id: VanillaRecreatedId,
		mdMsg: `
# The built-in namespace was repaired

The vanilla descriptor was missing, declared another namespace or had the wrong
version. It was rewritten from the built-in default.

## Things you can try:
- Keep local changes in your own namespace instead of editing vanilla
- Compare your backup with the recreated ` + "`vanilla/namespace.cue`",
	}

	dependencyViolationsIssue = &Issue{
		id: DependencyViolationsId,
		mdMsg: `
# Some namespaces have unmet dependencies!

A namespace depends on a namespace that is **missing**, **disabled** or loaded
**after** it.

## Things you can try:
- Enable the dependency:
~~~
$ contentctl order enable <dependency>
~~~
- Let contentctl propose an order that loads dependencies first:
~~~
$ contentctl deps check --suggest
~~~`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

Namespaces depend on each other in a loop, so no loading order can satisfy all
of them.

## Things you can try:
- Remove one of the dependencies in the cycle from its ` + "`namespace.cue`" + `
- Move the shared content into a namespace both can depend on`,
	}

	namespaceResolutionFailedIssue = &Issue{
		id: NamespaceResolutionFailedId,
		mdMsg: `
# A value could not be namespaced!

Entries must be non-empty and may not end with the namespace separator.

## Examples:
~~~cue
entries: [
	"sword",           // becomes "<namespace>:sword"
	"vanilla:axe",     // kept when vanilla is loaded
	"-vanilla:bow",    // removes vanilla:bow
]
~~~`,
	}

	fragmentParseFailedIssue = &Issue{
		id: FragmentParseFailedId,
		mdMsg: `
# A config fragment is invalid!

Fragments live in ` + "`<namespace>/configs/<name>.cue`" + ` and hold a single
` + "`entries`" + ` field, either a list of strings or a map.

## Things you can try:
- Run the failing command with --verbose to see the CUE path of the error
- Check the fragment against the examples:
~~~cue
entries: ["iron", "-vanilla:wood"]
~~~
~~~cue
entries: {"iron": {hardness: 4}, "-wood": null}
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Print where contentctl looks for its config:
~~~
$ contentctl config path
~~~
- Recreate a default config file:
~~~
$ contentctl config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		contentDirMissingIssue.Id():         contentDirMissingIssue,
		loadOrderCorruptedIssue.Id():        loadOrderCorruptedIssue,
		vanillaRecreatedIssue.Id():          vanillaRecreatedIssue,
		dependencyViolationsIssue.Id():      dependencyViolationsIssue,
		dependencyCycleIssue.Id():           dependencyCycleIssue,
		namespaceResolutionFailedIssue.Id(): namespaceResolutionFailedIssue,
		fragmentParseFailedIssue.Id():       fragmentParseFailedIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

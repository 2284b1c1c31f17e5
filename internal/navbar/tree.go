package navbar

import (
	"log/slog"
	"sort"
	"strings"
)

// DepthPolicy decides what happens to links nested deeper than two levels.
type DepthPolicy string

const (
	// DepthFlatten re-homes the link under its top-level ancestor.
	DepthFlatten DepthPolicy = "flatten"
	// DepthReject drops the link.
	DepthReject DepthPolicy = "reject"
)

func ParseDepthPolicy(s string) DepthPolicy {
	if DepthPolicy(strings.ToLower(strings.TrimSpace(s))) == DepthReject {
		return DepthReject
	}
	return DepthFlatten
}

// Node is a resolved link as shown to one user.
type Node struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	HTMLID      string  `json:"html_id"`
	URL         string  `json:"url"`
	Target      string  `json:"target"`
	Onclick     string  `json:"onclick,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Children    []*Node `json:"children,omitempty"`
}

type Builder struct {
	routes    RouteResolver
	policy    DepthPolicy
	staticURL string
	logger    *slog.Logger
}

func NewBuilder(routes RouteResolver, policy DepthPolicy, staticURL string, logger *slog.Logger) *Builder {
	return &Builder{
		routes:    routes,
		policy:    policy,
		staticURL: staticURL,
		logger:    logger,
	}
}

// Build arranges the authorized links into an ordered two-level tree. A child
// is only shown when its parent is. Malformed rows affect only themselves.
func (b *Builder) Build(all []*Link, authorized func(*Link) bool) []*Node {
	byID := make(map[int64]*Link, len(all))
	for _, l := range all {
		byID[l.ID] = l
	}

	var tops []*Link
	children := make(map[int64][]*Link)
	for _, l := range all {
		if !authorized(l) {
			continue
		}
		parentID, ok := b.placement(l, byID, authorized)
		if !ok {
			continue
		}
		if parentID == 0 {
			tops = append(tops, l)
		} else {
			children[parentID] = append(children[parentID], l)
		}
	}

	sortLinks(tops)
	nodes := make([]*Node, 0, len(tops))
	for _, top := range tops {
		node := b.node(top)
		kids := children[top.ID]
		sortLinks(kids)
		for _, kid := range kids {
			node.Children = append(node.Children, b.node(kid))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// placement returns the id of the parent the link is shown under, 0 for top
// level, or false when the link must be dropped.
func (b *Builder) placement(l *Link, byID map[int64]*Link, authorized func(*Link) bool) (int64, bool) {
	if l.IsTopLevel() {
		return 0, true
	}

	parent, ok := byID[*l.ParentID]
	if !ok {
		b.logger.Warn("navbar link dropped: parent does not exist", "link_id", l.ID, "parent_id", *l.ParentID)
		return 0, false
	}
	if parent.IsTopLevel() {
		return parent.ID, true
	}

	if b.policy == DepthReject {
		b.logger.Warn("navbar link dropped: nested deeper than two levels", "link_id", l.ID, "parent_id", parent.ID)
		return 0, false
	}

	root, ok := topAncestor(parent, byID)
	if !ok || root.ID == l.ID {
		b.logger.Warn("navbar link dropped: parent chain is broken", "link_id", l.ID)
		return 0, false
	}
	// a flattened link stays hidden behind any ancestor the user cannot see
	for a := parent; a.ID != root.ID; a = byID[*a.ParentID] {
		if !authorized(a) {
			return 0, false
		}
	}
	b.logger.Warn("navbar link flattened under its top-level ancestor", "link_id", l.ID, "parent_id", parent.ID, "ancestor_id", root.ID)
	return root.ID, true
}

func topAncestor(l *Link, byID map[int64]*Link) (*Link, bool) {
	seen := map[int64]bool{}
	for l.ParentID != nil {
		if seen[l.ID] {
			return nil, false
		}
		seen[l.ID] = true

		next, ok := byID[*l.ParentID]
		if !ok {
			return nil, false
		}
		l = next
	}
	return l, true
}

func (b *Builder) node(l *Link) *Node {
	n := &Node{
		ID:          l.ID,
		DisplayName: l.DisplayName,
		HTMLID:      l.HTMLID(),
		URL:         b.url(l),
		Target:      l.Target(),
	}
	if hasValue(l.Onclick) {
		n.Onclick = *l.Onclick
	}
	if hasValue(l.Icon) {
		n.Icon = b.iconURL(*l.Icon)
	}
	return n
}

func (b *Builder) url(l *Link) string {
	if hasValue(l.RouteName) {
		path, err := b.routes.Resolve(*l.RouteName)
		if err != nil {
			b.logger.Warn("could not resolve navbar route", "route_name", *l.RouteName, "link", l.DisplayName, "error", err)
			return ""
		}
		return path
	}
	if hasValue(l.ExternalURL) {
		return *l.ExternalURL
	}
	return ""
}

func (b *Builder) iconURL(icon string) string {
	if strings.HasPrefix(icon, "/") || strings.HasPrefix(icon, "http://") || strings.HasPrefix(icon, "https://") {
		return icon
	}
	return strings.TrimSuffix(b.staticURL, "/") + "/" + strings.TrimPrefix(icon, "/")
}

func sortLinks(links []*Link) {
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].SequenceIndex != links[j].SequenceIndex {
			return links[i].SequenceIndex < links[j].SequenceIndex
		}
		return links[i].ID < links[j].ID
	})
}

package catalog

import "github.com/google/uuid"

// CategoryNode is a category with its resolved children
type CategoryNode struct {
	Category *Category
	Children []*CategoryNode
}

// CategoryForest is the result of building a tree from a flat list.
// Orphans holds the ids of categories whose parent was not in the input;
// they are not part of Roots.
type CategoryForest struct {
	Roots   []*CategoryNode
	Orphans []uuid.UUID
}

// BuildCategoryTree arranges a flat category list into a forest in O(n).
// The first pass indexes every category, the second attaches each one to
// its parent or to the root list. Input order is preserved among siblings.
// A category pointing at a parent that is not in the list is left out.
func BuildCategoryTree(categories []Category) CategoryForest {
	nodes := make(map[uuid.UUID]*CategoryNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &CategoryNode{
			Category: &categories[i],
			Children: make([]*CategoryNode, 0),
		}
	}

	forest := CategoryForest{Roots: make([]*CategoryNode, 0)}
	for i := range categories {
		node := nodes[categories[i].ID]
		parentID := categories[i].ParentID
		if parentID == nil {
			forest.Roots = append(forest.Roots, node)
			continue
		}
		parent, ok := nodes[*parentID]
		if !ok {
			forest.Orphans = append(forest.Orphans, categories[i].ID)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return forest
}

// Flatten returns every node reachable from the roots, depth first
func (f CategoryForest) Flatten() []*Category {
	var out []*Category
	var walk func(nodes []*CategoryNode)
	walk = func(nodes []*CategoryNode) {
		for _, n := range nodes {
			out = append(out, n.Category)
			walk(n.Children)
		}
	}
	walk(f.Roots)
	return out
}

// IsDescendant reports whether candidate sits somewhere below ancestor,
// following parent pointers through the given lookup. Broken chains and
// cycles stop the walk.
func IsDescendant(lookup map[uuid.UUID]*Category, ancestor, candidate uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{})
	current, ok := lookup[candidate]
	for ok && current.ParentID != nil {
		if *current.ParentID == ancestor {
			return true
		}
		if _, loop := seen[current.ID]; loop {
			return false
		}
		seen[current.ID] = struct{}{}
		current, ok = lookup[*current.ParentID]
	}
	return false
}

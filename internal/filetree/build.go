// Package filetree turns a flat repository listing into the nested folder
// view shown next to the graph.
package filetree

import (
	"strings"

	t "repograph/internal/types"
)

// Build nests every entry of the full listing under its folders. Top-level
// siblings are returned in first-discovery order; nothing is re-sorted.
//
// A file node is active when fetched holds content for its exact path.
// Entries of kind tree become folders even without children. When an
// earlier entry already occupies a prefix as a file, the later entry stops
// there.
func Build(entries []t.RepoFileEntry, fetched []t.FetchedFile) []*t.FolderTreeNode {
	content := make(map[string]string, len(fetched))
	for _, f := range fetched {
		content[f.Path] = f.Content
	}

	root := &t.FolderTreeNode{Type: t.TreeFolder}
	// Children are looked up by their full path, which is unique per
	// (parent, name) pair.
	byPath := make(map[string]*t.FolderTreeNode)

	for _, entry := range entries {
		parts := strings.Split(entry.Path, "/")
		current := root
		for i, part := range parts {
			if !current.IsFolder() {
				break
			}
			currentPath := strings.Join(parts[:i+1], "/")
			child, ok := byPath[currentPath]
			if !ok {
				isLast := i == len(parts)-1
				child = newNode(part, currentPath, !isLast || entry.Kind == t.KindTree)
				if !child.IsFolder() {
					child.ID = entry.Path
					if c, ok := content[entry.Path]; ok {
						child.Content = c
						child.IsActive = true
					}
				}
				current.Children = append(current.Children, child)
				byPath[currentPath] = child
			}
			current = child
		}
	}

	if root.Children == nil {
		return []*t.FolderTreeNode{}
	}
	return root.Children
}

func newNode(name, path string, folder bool) *t.FolderTreeNode {
	if folder {
		return &t.FolderTreeNode{Name: name, Path: path, Type: t.TreeFolder, Children: []*t.FolderTreeNode{}}
	}
	return &t.FolderTreeNode{Name: name, Path: path, Type: t.TreeFile}
}

// Walk visits every node depth-first in output order. Returning false from
// fn skips that node's children.
func Walk(nodes []*t.FolderTreeNode, fn func(n *t.FolderTreeNode, depth int) bool) {
	type frame struct {
		node  *t.FolderTreeNode
		depth int
	}
	stack := make([]frame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{nodes[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}
}

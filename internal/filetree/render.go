package filetree

import (
	"strings"

	t "repograph/internal/types"
)

// Render draws the folder view as a text tree, keeping sibling order.
// Folders get a trailing slash and files that were not analysed are marked.
// Example:
// src/
// ├── main.js
// └── assets/
//     └── logo.svg (inactive)
func Render(nodes []*t.FolderTreeNode) string {
	var sb strings.Builder
	renderTree(&sb, nodes, "")
	return strings.TrimRight(sb.String(), "\n")
}

func renderTree(sb *strings.Builder, nodes []*t.FolderTreeNode, prefix string) {
	for i, n := range nodes {
		isLast := i == len(nodes)-1
		sb.WriteString(prefix)
		if isLast {
			sb.WriteString("└── ")
		} else {
			sb.WriteString("├── ")
		}
		sb.WriteString(label(n))
		sb.WriteString("\n")

		if len(n.Children) > 0 {
			newPrefix := prefix
			if isLast {
				newPrefix += "    "
			} else {
				newPrefix += "│   "
			}
			renderTree(sb, n.Children, newPrefix)
		}
	}
}

func label(n *t.FolderTreeNode) string {
	switch {
	case n.IsFolder():
		return n.Name + "/"
	case !n.IsActive:
		return n.Name + " (inactive)"
	default:
		return n.Name
	}
}

// Stats counts the folders, files and active files in a folder view.
type Stats struct {
	Folders     int
	Files       int
	ActiveFiles int
}

func Count(nodes []*t.FolderTreeNode) Stats {
	var s Stats
	Walk(nodes, func(n *t.FolderTreeNode, _ int) bool {
		if n.IsFolder() {
			s.Folders++
			return true
		}
		s.Files++
		if n.IsActive {
			s.ActiveFiles++
		}
		return true
	})
	return s
}

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Repository listing --------------------------------------------------------------

// EntryKind is the kind of an entry in a git tree listing.
type EntryKind string

const (
	KindBlob EntryKind = "blob"
	KindTree EntryKind = "tree"
)

// RepoFileEntry is one item of a recursive tree listing. Path is slash
// separated and relative to the repository root.
type RepoFileEntry struct {
	Path string    `json:"path"`
	Kind EntryKind `json:"type"`
	SHA  string    `json:"sha,omitempty"`
	URL  string    `json:"url,omitempty"`
	Size int64     `json:"size,omitempty"`
}

// FetchedFile is a relevant blob whose content was downloaded.
type FetchedFile struct {
	Path    string `json:"path"`
	Content string `json:"content"` // base64, exactly as served
}

// Graph -----------------------------------------------------------------------

type GraphNode struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// GraphEdge points from the importing file to the imported one.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Folder view -----------------------------------------------------------------

type TreeNodeType string

const (
	TreeFolder TreeNodeType = "folder"
	TreeFile   TreeNodeType = "file"
)

// FolderTreeNode is a folder or a file in the folder view. Children is only
// meaningful for folders; ID, Content and IsActive only for files.
type FolderTreeNode struct {
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	Type     TreeNodeType      `json:"type"`
	Children []*FolderTreeNode `json:"children,omitempty"`
	ID       string            `json:"id,omitempty"`
	Content  string            `json:"content,omitempty"`
	IsActive bool              `json:"isActive"`
}

func (n *FolderTreeNode) IsFolder() bool { return n.Type == TreeFolder }

// MarshalJSON emits children (possibly empty) for folders only and
// isActive for files only.
func (n *FolderTreeNode) MarshalJSON() ([]byte, error) {
	if n.IsFolder() {
		children := n.Children
		if children == nil {
			children = []*FolderTreeNode{}
		}
		return json.Marshal(struct {
			Name     string            `json:"name"`
			Path     string            `json:"path"`
			Type     TreeNodeType      `json:"type"`
			Children []*FolderTreeNode `json:"children"`
		}{n.Name, n.Path, n.Type, children})
	}
	return json.Marshal(struct {
		Name     string       `json:"name"`
		Path     string       `json:"path"`
		Type     TreeNodeType `json:"type"`
		ID       string       `json:"id"`
		Content  string       `json:"content,omitempty"`
		IsActive bool         `json:"isActive"`
	}{n.Name, n.Path, n.Type, n.ID, n.Content, n.IsActive})
}

// Owner & languages -----------------------------------------------------------

type PrimaryLanguage struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type PinnedItem struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	URL             string           `json:"url"`
	StargazerCount  int              `json:"stargazerCount"`
	PrimaryLanguage *PrimaryLanguage `json:"primaryLanguage"`
}

type OwnerInfo struct {
	AvatarURL   string       `json:"avatarUrl"`
	Name        string       `json:"name"`
	Bio         string       `json:"bio"`
	HTMLURL     string       `json:"htmlUrl"`
	PinnedItems []PinnedItem `json:"pinnedItems"`
}

// LanguageShare is a language's share of the repository's bytes, in percent
// rounded to two decimals. On the wire the percentage is a fixed two-decimal
// string such as "45.10".
type LanguageShare struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

type languageShareJSON struct {
	Name       string          `json:"name"`
	Percentage json.RawMessage `json:"percentage"`
}

func (l LanguageShare) MarshalJSON() ([]byte, error) {
	pct, err := json.Marshal(strconv.FormatFloat(l.Percentage, 'f', 2, 64))
	if err != nil {
		return nil, err
	}
	return json.Marshal(languageShareJSON{Name: l.Name, Percentage: pct})
}

// UnmarshalJSON accepts the percentage as a string or a number.
func (l *LanguageShare) UnmarshalJSON(b []byte) error {
	var raw languageShareJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	l.Name = raw.Name
	l.Percentage = 0
	if len(raw.Percentage) == 0 || string(raw.Percentage) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Percentage, &s); err == nil {
		pct, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("language %q: percentage %q: %w", raw.Name, s, err)
		}
		l.Percentage = pct
		return nil
	}
	return json.Unmarshal(raw.Percentage, &l.Percentage)
}

// Result ----------------------------------------------------------------------

// GraphResult is everything the pipeline returns for one repository.
// OwnerInfo and Languages are nil when their best-effort fetch failed.
type GraphResult struct {
	OwnerInfo *OwnerInfo        `json:"ownerInfo"`
	Languages []LanguageShare   `json:"languages"`
	Nodes     []GraphNode       `json:"nodes"`
	Links     []GraphEdge       `json:"links"`
	Tree      []*FolderTreeNode `json:"tree"`
}

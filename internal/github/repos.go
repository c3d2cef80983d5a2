package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	t "repograph/internal/types"
)

// Repo is the subset of repository metadata the pipeline depends on.
type Repo struct {
	FullName      string
	DefaultBranch string
	LanguagesURL  string
	Private       bool
}

// Repo fetches repository metadata.
func (c *Client) Repo(ctx context.Context, owner, repo string) (*Repo, error) {
	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, apiError("get repository", resp, err)
	}
	out := &Repo{
		FullName:      r.GetFullName(),
		DefaultBranch: r.GetDefaultBranch(),
		LanguagesURL:  r.GetLanguagesURL(),
		Private:       r.GetPrivate(),
	}
	if out.DefaultBranch == "" {
		return nil, fmt.Errorf("github: %s/%s has no default branch", owner, repo)
	}
	if out.LanguagesURL == "" {
		out.LanguagesURL = fmt.Sprintf("%srepos/%s/%s/languages", c.gh.BaseURL, url.PathEscape(owner), url.PathEscape(repo))
	}
	return out, nil
}

// User is a public profile.
type User struct {
	Login     string
	Name      string
	Bio       string
	AvatarURL string
	HTMLURL   string
}

func (c *Client) User(ctx context.Context, login string) (*User, error) {
	u, resp, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, apiError("get user", resp, err)
	}
	return &User{
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		Bio:       u.GetBio(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
	}, nil
}

// LanguageBytes is one entry of the languages endpoint.
type LanguageBytes struct {
	Name  string
	Bytes int64
}

// Languages fetches per-language byte counts from the languages URL given in
// the repository metadata. Entries keep the order the API sent them in, which
// Repositories.ListLanguages loses by decoding into a map.
func (c *Client) Languages(ctx context.Context, languagesURL string) ([]LanguageBytes, error) {
	req, err := c.gh.NewRequest(http.MethodGet, languagesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: languages request: %w", err)
	}
	var buf bytes.Buffer
	resp, err := c.gh.Do(ctx, req, &buf)
	if err != nil {
		return nil, apiError("list languages", resp, err)
	}
	out, err := decodeLanguages(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("github: decode %s: %w", languagesURL, err)
	}
	return out, nil
}

func decodeLanguages(b []byte) ([]LanguageBytes, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	out := []LanguageBytes{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var n int64
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("language %q: %w", name, err)
		}
		out = append(out, LanguageBytes{Name: name, Bytes: n})
	}
	return out, nil
}

// Tree is a recursive tree listing.
type Tree struct {
	SHA       string
	Entries   []t.RepoFileEntry
	Truncated bool
}

// Tree lists every entry reachable from ref.
func (c *Client) Tree(ctx context.Context, owner, repo, ref string) (*Tree, error) {
	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, ref, true)
	if err != nil {
		return nil, apiError("get tree", resp, err)
	}
	entries := make([]t.RepoFileEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, t.RepoFileEntry{
			Path: e.GetPath(),
			Kind: t.EntryKind(e.GetType()),
			SHA:  e.GetSHA(),
			URL:  e.GetURL(),
			Size: int64(e.GetSize()),
		})
	}
	return &Tree{SHA: tree.GetSHA(), Entries: entries, Truncated: tree.GetTruncated()}, nil
}

// Blob fetches a blob by SHA and returns its base64 content as served.
func (c *Client) Blob(ctx context.Context, owner, repo, sha string) (string, error) {
	b, resp, err := c.gh.Git.GetBlob(ctx, owner, repo, sha)
	if err != nil {
		return "", apiError("get blob", resp, err)
	}
	if enc := b.GetEncoding(); enc != "" && enc != "base64" {
		return "", fmt.Errorf("github: blob %s: unsupported encoding %q", sha, enc)
	}
	return b.GetContent(), nil
}

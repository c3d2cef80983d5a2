package graph

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repograph/internal/github"
	types "repograph/internal/types"
)

// fakeHub serves a canned repository. Blobs are keyed by SHA, which is the
// file path unless addFile is given one.
type fakeHub struct {
	mu sync.Mutex

	repo      *github.Repo
	repoErr   error
	user      *github.User
	userErr   error
	pinned    []types.PinnedItem
	pinnedErr error
	langs     []github.LanguageBytes
	langsErr  error
	entries   []types.RepoFileEntry
	treeErr   error
	blobs     map[string]string
	blobErr   map[string]error

	calls     map[string]int
	blobCalls map[string]int
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		repo:      &github.Repo{FullName: "octo/site", DefaultBranch: "main", LanguagesURL: "langs"},
		user:      &github.User{Login: "octo", Name: "Octo Cat", Bio: "hi", AvatarURL: "https://a/octo.png", HTMLURL: "https://github.com/octo"},
		pinned:    []types.PinnedItem{{Name: "site", URL: "https://github.com/octo/site", StargazerCount: 3}},
		langs:     []github.LanguageBytes{{Name: "TypeScript", Bytes: 300}, {Name: "CSS", Bytes: 100}},
		blobs:     map[string]string{},
		blobErr:   map[string]error{},
		calls:     map[string]int{},
		blobCalls: map[string]int{},
	}
}

func (h *fakeHub) hit(name string) {
	h.mu.Lock()
	h.calls[name]++
	h.mu.Unlock()
}

func (h *fakeHub) count(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[name]
}

func (h *fakeHub) Repo(_ context.Context, owner, repo string) (*github.Repo, error) {
	h.hit("repo")
	return h.repo, h.repoErr
}

func (h *fakeHub) User(context.Context, string) (*github.User, error) {
	h.hit("user")
	if h.userErr != nil {
		return nil, h.userErr
	}
	return h.user, nil
}

func (h *fakeHub) PinnedItems(context.Context, string) ([]types.PinnedItem, error) {
	h.hit("pinned")
	return h.pinned, h.pinnedErr
}

func (h *fakeHub) Languages(context.Context, string) ([]github.LanguageBytes, error) {
	h.hit("languages")
	return h.langs, h.langsErr
}

func (h *fakeHub) Tree(context.Context, string, string, string) (*github.Tree, error) {
	h.hit("tree")
	if h.treeErr != nil {
		return nil, h.treeErr
	}
	return &github.Tree{SHA: "root", Entries: h.entries}, nil
}

func (h *fakeHub) Blob(_ context.Context, owner, repo, sha string) (string, error) {
	h.mu.Lock()
	h.blobCalls[sha]++
	err := h.blobErr[sha]
	content, ok := h.blobs[sha]
	h.mu.Unlock()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("no such blob " + owner + "/" + repo + "@" + sha)
	}
	return content, nil
}

// addFile registers a blob entry whose SHA is its path unless sha is given.
func (h *fakeHub) addFile(p, src string, sha ...string) {
	id := p
	if len(sha) > 0 {
		id = sha[0]
	}
	h.entries = append(h.entries, types.RepoFileEntry{Path: p, Kind: types.KindBlob, SHA: id})
	h.blobs[id] = base64.StdEncoding.EncodeToString([]byte(src))
}

func (h *fakeHub) addDir(p string) {
	h.entries = append(h.entries, types.RepoFileEntry{Path: p, Kind: types.KindTree})
}

func quietAssembler(f Fetcher, opts Options) (*Assembler, *bytes.Buffer) {
	var buf bytes.Buffer
	opts.Logger = log.New(&buf, "", 0)
	return New(f, opts), &buf
}

const repoURL = "https://github.com/octo/site"

func siteHub() *fakeHub {
	h := newFakeHub()
	h.addFile("index.html", `<html><head>
<link rel="stylesheet" href="style.css">
<script src="src/b.js"></script>
<script src="https://cdn.example.com/lib.js"></script>
</head></html>`)
	h.addFile("style.css", "@import url(\"reset.css\");\n@import 'theme.css';\nbody{}")
	h.addFile("reset.css", "")
	h.addFile("theme.css", ":root{}")
	h.addDir("src")
	h.addFile("src/index.ts", "import { a } from './a';\nimport b from \"./b.js\";\nimport React from 'react';\n")
	h.addFile("src/a.ts", "export const a = 1;\n")
	h.addFile("src/b.js", "export default 2;\n")
	h.addFile("src/broken.tsx", "import { from\n")
	h.addFile("README.md", "# site\n")
	h.addFile("logo.png", "PNG")
	return h
}

func edgeSet(links []types.GraphEdge) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Source+" -> "+l.Target)
	}
	return out
}

func TestAssembleBuildsGraph(t *testing.T) {
	h := siteHub()
	a, logs := quietAssembler(h, Options{Concurrency: 2})

	res, err := a.Assemble(context.Background(), repoURL)
	require.NoError(t, err)

	ids := make([]string, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{
		"index.html", "style.css", "reset.css", "theme.css",
		"src/index.ts", "src/a.ts", "src/b.js", "src/broken.tsx", "README.md",
	}, ids)

	assert.Equal(t, []string{
		"index.html -> style.css",
		"index.html -> src/b.js",
		"style.css -> reset.css",
		"style.css -> theme.css",
		"src/index.ts -> src/a.ts",
		"src/index.ts -> src/b.js",
	}, edgeSet(res.Links))

	for _, n := range res.Nodes {
		assert.Equal(t, Color(n.ID), n.Color)
		assert.Equal(t, h.blobs[n.ID], n.Content)
	}
	assert.Equal(t, "a.ts", res.Nodes[5].Name)
	assert.Equal(t, len("export const a = 1;\n"), res.Nodes[5].Size)
	assert.Equal(t, 0, res.Nodes[2].Size)

	assert.Contains(t, logs.String(), "Could not parse src/broken.tsx")

	require.NotNil(t, res.OwnerInfo)
	assert.Equal(t, "Octo Cat", res.OwnerInfo.Name)
	assert.Len(t, res.OwnerInfo.PinnedItems, 1)
	assert.Equal(t, []types.LanguageShare{{Name: "TypeScript", Percentage: 75}, {Name: "CSS", Percentage: 25}}, res.Languages)

	wire, err := json.Marshal(res.Languages)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"TypeScript","percentage":"75.00"},{"name":"CSS","percentage":"25.00"}]`, string(wire))
}

func TestAssembleEdgesPointAtNodes(t *testing.T) {
	a, _ := quietAssembler(siteHub(), Options{})
	res, err := a.Assemble(context.Background(), repoURL)
	require.NoError(t, err)

	known := map[string]bool{}
	for _, n := range res.Nodes {
		known[n.ID] = true
	}
	for _, l := range res.Links {
		assert.True(t, known[l.Source], l.Source)
		assert.True(t, known[l.Target], l.Target)
	}
}

func TestAssembleTreeCoversListing(t *testing.T) {
	a, _ := quietAssembler(siteHub(), Options{})
	res, err := a.Assemble(context.Background(), repoURL)
	require.NoError(t, err)

	var names []string
	active := map[string]bool{}
	for _, n := range res.Tree {
		names = append(names, n.Name)
		if !n.IsFolder() {
			active[n.Path] = n.IsActive
		}
	}
	assert.Equal(t, []string{"index.html", "style.css", "reset.css", "theme.css", "src", "README.md", "logo.png"}, names)
	assert.True(t, active["README.md"])
	assert.False(t, active["logo.png"])
}

func TestAssembleDuplicateEdgesKept(t *testing.T) {
	h := newFakeHub()
	h.addFile("main.js", "import './util';\nimport './util.js';\n")
	h.addFile("util.js", "")
	a, _ := quietAssembler(h, Options{})

	res, err := a.Assemble(context.Background(), repoURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.js -> util.js", "main.js -> util.js"}, edgeSet(res.Links))
}

func TestAssembleInvalidURL(t *testing.T) {
	h := newFakeHub()
	a, _ := quietAssembler(h, Options{})

	res, err := a.Assemble(context.Background(), "https://example.com/nope")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Equal(t, MsgInvalidURL, UserMessage(err))
	assert.Zero(t, h.count("repo"))
}

func TestAssembleMetadataFailure(t *testing.T) {
	h := newFakeHub()
	h.repoErr = &github.StatusError{Method: "GET", URL: "x", StatusCode: 404}
	a, _ := quietAssembler(h, Options{})

	_, err := a.Assemble(context.Background(), repoURL)
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Equal(t, MsgUpstream, UserMessage(err))

	var se *github.StatusError
	assert.True(t, errors.As(err, &se))
	assert.Zero(t, h.count("tree"))
}

func TestAssembleTreeFailure(t *testing.T) {
	h := newFakeHub()
	h.treeErr = errors.New("boom")
	a, _ := quietAssembler(h, Options{})

	_, err := a.Assemble(context.Background(), repoURL)
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestAssembleNoRelevantFiles(t *testing.T) {
	h := newFakeHub()
	h.addFile("logo.png", "PNG")
	h.addFile("Makefile", "all:")
	a, _ := quietAssembler(h, Options{})

	_, err := a.Assemble(context.Background(), repoURL)
	require.Error(t, err)
	assert.Equal(t, KindNoRelevantFiles, KindOf(err))
	assert.Equal(t, "No relevant files found in the default branch ('main').", UserMessage(err))
}

func TestAssembleBlobFailureIsFatal(t *testing.T) {
	h := siteHub()
	h.blobErr["src/a.ts"] = errors.New("rate limited")
	a, _ := quietAssembler(h, Options{Concurrency: 1})

	res, err := a.Assemble(context.Background(), repoURL)
	assert.Nil(t, res)
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestAssembleBestEffortOwnerInfo(t *testing.T) {
	t.Run("pinned fails", func(t *testing.T) {
		h := siteHub()
		h.pinnedErr = errors.New("graphql down")
		a, logs := quietAssembler(h, Options{})

		res, err := a.Assemble(context.Background(), repoURL)
		require.NoError(t, err)
		assert.Nil(t, res.OwnerInfo)
		assert.NotEmpty(t, res.Languages)
		assert.Contains(t, logs.String(), "Continuing without it")
	})
	t.Run("profile fails", func(t *testing.T) {
		h := siteHub()
		h.userErr = errors.New("nope")
		a, _ := quietAssembler(h, Options{})

		res, err := a.Assemble(context.Background(), repoURL)
		require.NoError(t, err)
		assert.Nil(t, res.OwnerInfo)
		assert.NotEmpty(t, res.Languages)
	})
	t.Run("languages fail", func(t *testing.T) {
		h := siteHub()
		h.langsErr = errors.New("nope")
		a, _ := quietAssembler(h, Options{})

		res, err := a.Assemble(context.Background(), repoURL)
		require.NoError(t, err)
		assert.NotNil(t, res.OwnerInfo)
		assert.Nil(t, res.Languages)
		assert.NotEmpty(t, res.Nodes)
	})
}

func TestAssembleNoPinnedItemsIsEmptyList(t *testing.T) {
	h := siteHub()
	h.pinned = nil
	a, _ := quietAssembler(h, Options{})

	res, err := a.Assemble(context.Background(), repoURL)
	require.NoError(t, err)
	require.NotNil(t, res.OwnerInfo)
	assert.NotNil(t, res.OwnerInfo.PinnedItems)
	assert.Empty(t, res.OwnerInfo.PinnedItems)
}

func TestAssembleExcludeKeepsTreeEntry(t *testing.T) {
	h := newFakeHub()
	h.addFile("app.js", "import './vendor/lib.js';\n")
	h.addFile("vendor/lib.js", "")
	a, _ := quietAssembler(h, Options{Exclude: []string{"vendor/"}})

	res, err := a.Assemble(context.Background(), repoURL)
	require.NoError(t, err)
	require.Len(t, res.Nodes, 1)
	assert.Equal(t, "app.js", res.Nodes[0].ID)
	assert.Empty(t, res.Links)

	require.Len(t, res.Tree, 2)
	vendor := res.Tree[1]
	assert.Equal(t, "vendor", vendor.Name)
	require.Len(t, vendor.Children, 1)
	assert.False(t, vendor.Children[0].IsActive)
}

func TestAssembleSharesBlobsBySHA(t *testing.T) {
	h := newFakeHub()
	h.addFile("a/index.js", "export {};\n", "same")
	h.addFile("b/index.js", "export {};\n", "same")
	h.addFile("c/index.js", "export {};\n", "same")
	a, _ := quietAssembler(h, Options{Concurrency: 3})

	res, err := a.Assemble(context.Background(), repoURL)
	require.NoError(t, err)
	assert.Len(t, res.Nodes, 3)
	assert.Equal(t, 1, h.blobCalls["same"])
}

func TestAssembleEntryWithoutSHAFails(t *testing.T) {
	h := newFakeHub()
	h.addFile("a.js", "export {};\n")
	h.entries = append(h.entries, types.RepoFileEntry{Path: "b.js", Kind: types.KindBlob})
	a, _ := quietAssembler(h, Options{})

	_, err := a.Assemble(context.Background(), repoURL)
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindUpstream, ge.Kind)
	assert.ErrorIs(t, err, errNoSHA)
}

func TestAssembleReportsProgress(t *testing.T) {
	a, _ := quietAssembler(siteHub(), Options{Concurrency: 4})

	var (
		mu     sync.Mutex
		stages []Stage
		fetchN int
	)
	_, err := a.AssembleWithProgress(context.Background(), repoURL, func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if e.Stage == StageFetch {
			fetchN++
			return
		}
		if len(stages) == 0 || stages[len(stages)-1] != e.Stage {
			stages = append(stages, e.Stage)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []Stage{StageMetadata, StageExtended, StageTree, StageFilter, StageExtract, StageDone}, stages)
	assert.Equal(t, 9, fetchN)
}

func TestColorMatchesBrowserHash(t *testing.T) {
	cases := map[string]int64{
		"a":                      97,
		"ab":                     225,
		"index.html":             103,
		"src/components/App.jsx": -252,
		"src/very/long/path/to/some/deeply/nested/module/file_name_here.test.tsx": -179,
		"日本/ファイル.js": 52,
	}
	for p, hue := range cases {
		assert.Equal(t, hue, Hue(p), p)
	}
	assert.Equal(t, "hsl(103, 70%, 50%)", Color("index.html"))
	assert.Equal(t, "hsl(-252, 70%, 50%)", Color("src/components/App.jsx"))
	assert.Equal(t, "hsl(0, 70%, 50%)", Color(""))
}

func TestFilterRelevant(t *testing.T) {
	f := NewFilter([]string{"dist/", "*.min.js", "  "})
	cases := []struct {
		entry types.RepoFileEntry
		want  bool
	}{
		{types.RepoFileEntry{Path: "src/app.tsx", Kind: types.KindBlob}, true},
		{types.RepoFileEntry{Path: "data.json", Kind: types.KindBlob}, true},
		{types.RepoFileEntry{Path: "docs/guide.md", Kind: types.KindBlob}, true},
		{types.RepoFileEntry{Path: "src", Kind: types.KindTree}, false},
		{types.RepoFileEntry{Path: "logo.svg", Kind: types.KindBlob}, false},
		{types.RepoFileEntry{Path: "APP.JS", Kind: types.KindBlob}, false},
		{types.RepoFileEntry{Path: "dist/bundle.js", Kind: types.KindBlob}, false},
		{types.RepoFileEntry{Path: "vendor/jquery.min.js", Kind: types.KindBlob}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, f.Relevant(c.entry), c.entry.Path)
	}

	var none *Filter
	assert.True(t, none.Relevant(types.RepoFileEntry{Path: "x.js", Kind: types.KindBlob}))
}

func TestBreakdown(t *testing.T) {
	got := Breakdown([]github.LanguageBytes{
		{Name: "Go", Bytes: 1},
		{Name: "CSS", Bytes: 1},
		{Name: "TypeScript", Bytes: 1},
	})
	assert.Equal(t, []types.LanguageShare{
		{Name: "CSS", Percentage: 33.33},
		{Name: "Go", Percentage: 33.33},
		{Name: "TypeScript", Percentage: 33.33},
	}, got)

	zero := Breakdown([]github.LanguageBytes{{Name: "Shell", Bytes: 0}})
	assert.Equal(t, []types.LanguageShare{{Name: "Shell", Percentage: 0}}, zero)
	assert.Empty(t, Breakdown(nil))
}

func TestDecodeContent(t *testing.T) {
	b, err := decodeContent("aGVs\nbG8=\n")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	b, err = decodeContent("aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = decodeContent("!!!")
	assert.Error(t, err)
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("socket closed")
	err := upstream(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upstream", KindOf(err).String())
	assert.Equal(t, KindUnknown, KindOf(cause))
	assert.Equal(t, MsgUpstream, UserMessage(cause))
}

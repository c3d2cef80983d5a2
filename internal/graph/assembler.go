// Package graph assembles the file dependency graph of a GitHub repository:
// it fetches the listing and relevant blobs, extracts references from each
// file and resolves them against the fetched set.
package graph

import (
	"context"
	"fmt"
	"log"
	"path"
	"sync"

	"golang.org/x/sync/errgroup"

	"repograph/internal/extract"
	"repograph/internal/filetree"
	"repograph/internal/github"
	"repograph/internal/resolve"
	t "repograph/internal/types"
)

// Fetcher is the hosting API as seen by the assembler. *github.Client
// implements it.
type Fetcher interface {
	Repo(ctx context.Context, owner, repo string) (*github.Repo, error)
	User(ctx context.Context, login string) (*github.User, error)
	PinnedItems(ctx context.Context, login string) ([]t.PinnedItem, error)
	Languages(ctx context.Context, languagesURL string) ([]github.LanguageBytes, error)
	Tree(ctx context.Context, owner, repo, ref string) (*github.Tree, error)
	Blob(ctx context.Context, owner, repo, sha string) (string, error)
}

var _ Fetcher = (*github.Client)(nil)

type Options struct {
	// Logger receives warnings; log.Default() when nil.
	Logger *log.Logger
	// Concurrency bounds simultaneous blob downloads; <= 0 means unbounded.
	Concurrency int
	// Exclude holds gitignore-style patterns removed from the relevant set.
	Exclude []string
	// Extractors overrides the default extractor set.
	Extractors *extract.Set
}

// Assembler is safe for concurrent use; every call works on its own state.
type Assembler struct {
	fetcher     Fetcher
	log         *log.Logger
	concurrency int
	filter      *Filter
	extractors  *extract.Set
}

func New(f Fetcher, opts Options) *Assembler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ex := opts.Extractors
	if ex == nil {
		ex = extract.NewSet(logger)
	}
	return &Assembler{
		fetcher:     f,
		log:         logger,
		concurrency: opts.Concurrency,
		filter:      NewFilter(opts.Exclude),
		extractors:  ex,
	}
}

// Assemble builds the graph for the repository at repoURL. Failures are
// *Error values; no partial result is returned with an error.
func (a *Assembler) Assemble(ctx context.Context, repoURL string) (*t.GraphResult, error) {
	return a.AssembleWithProgress(ctx, repoURL, nil)
}

// AssembleWithProgress is Assemble with progress reporting.
func (a *Assembler) AssembleWithProgress(ctx context.Context, repoURL string, progress ProgressFunc) (*t.GraphResult, error) {
	owner, name, ok := github.ParseRepoURL(repoURL)
	if !ok {
		return nil, &Error{Kind: KindInvalidInput, Message: MsgInvalidURL}
	}

	meta, err := a.fetcher.Repo(ctx, owner, name)
	if err != nil {
		a.log.Printf("fetch metadata %s/%s: %v", owner, name, err)
		return nil, upstream(err)
	}
	progress.emit(Event{Stage: StageMetadata, Message: meta.DefaultBranch})

	ext := a.fetchExtended(ctx, owner, meta.LanguagesURL)
	progress.emit(Event{Stage: StageExtended})

	tree, err := a.fetcher.Tree(ctx, owner, name, meta.DefaultBranch)
	if err != nil {
		a.log.Printf("fetch tree %s/%s@%s: %v", owner, name, meta.DefaultBranch, err)
		return nil, upstream(err)
	}
	if tree.Truncated {
		a.log.Printf("tree listing for %s/%s@%s is truncated; graph covers %d entries", owner, name, meta.DefaultBranch, len(tree.Entries))
	}
	progress.emit(Event{Stage: StageTree, Total: len(tree.Entries)})

	relevant := a.filter.Apply(tree.Entries)
	if len(relevant) == 0 {
		return nil, &Error{
			Kind:    KindNoRelevantFiles,
			Message: fmt.Sprintf("No relevant files found in the default branch ('%s').", meta.DefaultBranch),
		}
	}
	progress.emit(Event{Stage: StageFilter, Total: len(relevant)})

	fetched, err := a.fetchContents(ctx, owner, name, relevant, progress)
	if err != nil {
		a.log.Printf("fetch contents %s/%s: %v", owner, name, err)
		return nil, upstream(err)
	}

	nodes, decoded := a.buildNodes(fetched)
	links := a.buildLinks(fetched, decoded, progress)

	res := &t.GraphResult{
		Nodes: nodes,
		Links: links,
		Tree:  filetree.Build(tree.Entries, fetched),
	}
	if info, ok := ext.owner.Get(); ok {
		res.OwnerInfo = info
	}
	if langs, ok := ext.languages.Get(); ok {
		res.Languages = langs
	}
	progress.emit(Event{Stage: StageDone, Done: len(nodes), Total: len(links)})
	return res, nil
}

// fetchContents downloads every relevant blob concurrently. The result keeps
// the order of relevant. Any failed download fails the whole call.
func (a *Assembler) fetchContents(ctx context.Context, owner, repo string, relevant []t.RepoFileEntry, progress ProgressFunc) ([]t.FetchedFile, error) {
	cache := newBlobCache(len(relevant), func(ctx context.Context, sha string) (string, error) {
		return a.fetcher.Blob(ctx, owner, repo, sha)
	})
	out := make([]t.FetchedFile, len(relevant))

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, entry := range relevant {
		g.Go(func() error {
			content, err := cache.get(gctx, entry.SHA)
			if err != nil {
				return fmt.Errorf("blob %s: %w", entry.Path, err)
			}
			out[i] = t.FetchedFile{Path: entry.Path, Content: content}

			mu.Lock()
			done++
			progress.emit(Event{Stage: StageFetch, Done: done, Total: len(relevant)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Assembler) buildNodes(fetched []t.FetchedFile) ([]t.GraphNode, map[string]string) {
	nodes := make([]t.GraphNode, 0, len(fetched))
	decoded := make(map[string]string, len(fetched))
	for _, f := range fetched {
		b, err := decodeContent(f.Content)
		if err != nil {
			a.log.Printf("Could not decode %s: %v", f.Path, err)
		}
		decoded[f.Path] = string(b)
		nodes = append(nodes, t.GraphNode{
			ID:      f.Path,
			Name:    path.Base(f.Path),
			Size:    len(b),
			Content: f.Content,
			Color:   Color(f.Path),
		})
	}
	return nodes, decoded
}

// buildLinks extracts specifiers file by file, in fetched order, and keeps
// those that resolve to a fetched path. Duplicate edges are kept.
func (a *Assembler) buildLinks(fetched []t.FetchedFile, decoded map[string]string, progress ProgressFunc) []t.GraphEdge {
	paths := make([]string, 0, len(fetched))
	for _, f := range fetched {
		paths = append(paths, f.Path)
	}
	known := resolve.NewPathSet(paths...)

	links := []t.GraphEdge{}
	for i, f := range fetched {
		for _, spec := range a.extractors.Extract(f.Path, decoded[f.Path]) {
			if target, ok := resolve.Resolve(f.Path, spec, known); ok {
				links = append(links, t.GraphEdge{Source: f.Path, Target: target})
			}
		}
		progress.emit(Event{Stage: StageExtract, Done: i + 1, Total: len(fetched)})
	}
	return links
}

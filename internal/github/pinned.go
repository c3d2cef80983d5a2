package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	t "repograph/internal/types"
)

// PinnedLimit is how many pinned repositories are requested.
const PinnedLimit = 6

const pinnedQuery = `query($username: String!, $first: Int!) { user(login: $username) { pinnedItems(first: $first, types: REPOSITORY) { nodes { ... on Repository { name description url stargazerCount primaryLanguage { name color } } } } } }`

var (
	pinnedNodesPath = jp.MustParseString("$.data.user.pinnedItems.nodes[*]")
	userPath        = jp.MustParseString("$.data.user")
	errorsPath      = jp.MustParseString("$.errors[*].message")
)

// ErrNoUser is returned when the GraphQL API knows no user by that login.
var ErrNoUser = errors.New("github: user not found")

// PinnedItems returns the repositories pinned on a user's profile. The
// GraphQL endpoint requires a token; unauthenticated calls fail.
func (c *Client) PinnedItems(ctx context.Context, login string) ([]t.PinnedItem, error) {
	body := map[string]any{
		"query":     pinnedQuery,
		"variables": map[string]any{"username": login, "first": PinnedLimit},
	}
	req, err := c.gh.NewRequest(http.MethodPost, c.graphqlURL, body)
	if err != nil {
		return nil, fmt.Errorf("github: graphql request: %w", err)
	}
	var buf bytes.Buffer
	resp, err := c.gh.Do(ctx, req, &buf)
	if err != nil {
		return nil, apiError("graphql", resp, err)
	}
	return decodePinned(buf.Bytes())
}

func decodePinned(b []byte) ([]t.PinnedItem, error) {
	doc, err := oj.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("github: decode graphql response: %w", err)
	}
	if msgs := errorsPath.Get(doc); len(msgs) > 0 {
		parts := make([]string, 0, len(msgs))
		for _, m := range msgs {
			parts = append(parts, fmt.Sprint(m))
		}
		return nil, fmt.Errorf("github: graphql: %s", strings.Join(parts, "; "))
	}
	if users := userPath.Get(doc); len(users) == 0 || users[0] == nil {
		return nil, ErrNoUser
	}

	nodes := pinnedNodesPath.Get(doc)
	items := make([]t.PinnedItem, 0, len(nodes))
	for _, n := range nodes {
		m, ok := n.(map[string]any)
		if !ok {
			continue
		}
		item := t.PinnedItem{
			Name:           str(m["name"]),
			Description:    str(m["description"]),
			URL:            str(m["url"]),
			StargazerCount: int(num(m["stargazerCount"])),
		}
		if lang, ok := m["primaryLanguage"].(map[string]any); ok {
			item.PrimaryLanguage = &t.PrimaryLanguage{Name: str(lang["name"]), Color: str(lang["color"])}
		}
		items = append(items, item)
	}
	return items, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}

package graph

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// blobCache makes sure a blob is downloaded once per request even when
// several paths share its SHA. It lives only as long as one Assemble call.
type blobCache struct {
	fetch  func(ctx context.Context, sha string) (string, error)
	group  singleflight.Group
	recent *lru.Cache[string, string]
}

func newBlobCache(size int, fetch func(ctx context.Context, sha string) (string, error)) *blobCache {
	if size < 1 {
		size = 1
	}
	// lru.New only fails for a non-positive size.
	recent, _ := lru.New[string, string](size)
	return &blobCache{fetch: fetch, recent: recent}
}

var errNoSHA = errors.New("tree entry has no blob sha")

// get returns the content of the blob with the given SHA.
func (c *blobCache) get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errNoSHA
	}
	if v, ok := c.recent.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.recent.Get(key); ok {
			return v, nil
		}
		content, err := c.fetch(ctx, key)
		if err != nil {
			return "", err
		}
		c.recent.Add(key, content)
		return content, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// decodeContent decodes the base64 content of a blob. Line breaks and other
// whitespace are ignored, as is missing padding.
func decodeContent(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	b, err := base64.StdEncoding.DecodeString(clean)
	if err == nil {
		return b, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(clean, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

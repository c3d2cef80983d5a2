package graph

import (
	"context"
	"sync"

	t "repograph/internal/types"
)

// Optional holds the outcome of a best-effort call: a value, or the reason
// it is missing. Unlike a must-have call, a missing value never fails the
// pipeline.
type Optional[T any] struct {
	value T
	err   error
	set   bool
}

func Some[T any](v T) Optional[T]       { return Optional[T]{value: v, set: true} }
func Missing[T any](err error) Optional[T] { return Optional[T]{err: err} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// Err is the reason the value is missing, if any.
func (o Optional[T]) Err() error { return o.err }

type extended struct {
	owner     Optional[*t.OwnerInfo]
	languages Optional[[]t.LanguageShare]
}

// fetchExtended issues the profile, pinned-items and languages calls
// concurrently and waits for all three. Owner info needs both the profile
// and the pinned items; languages stand alone.
func (a *Assembler) fetchExtended(ctx context.Context, owner, languagesURL string) extended {
	var (
		wg     sync.WaitGroup
		user   Optional[*t.OwnerInfo]
		pinned Optional[[]t.PinnedItem]
		langs  Optional[[]t.LanguageShare]
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		u, err := a.fetcher.User(ctx, owner)
		if err != nil {
			user = Missing[*t.OwnerInfo](err)
			return
		}
		user = Some(&t.OwnerInfo{AvatarURL: u.AvatarURL, Name: u.Name, Bio: u.Bio, HTMLURL: u.HTMLURL})
	}()
	go func() {
		defer wg.Done()
		items, err := a.fetcher.PinnedItems(ctx, owner)
		if err != nil {
			pinned = Missing[[]t.PinnedItem](err)
			return
		}
		if items == nil {
			items = []t.PinnedItem{}
		}
		pinned = Some(items)
	}()
	go func() {
		defer wg.Done()
		l, err := a.fetcher.Languages(ctx, languagesURL)
		if err != nil {
			langs = Missing[[]t.LanguageShare](err)
			return
		}
		langs = Some(Breakdown(l))
	}()
	wg.Wait()

	var out extended
	info, okUser := user.Get()
	items, okPinned := pinned.Get()
	switch {
	case okUser && okPinned:
		info.PinnedItems = items
		out.owner = Some(info)
	case !okUser:
		out.owner = Missing[*t.OwnerInfo](user.Err())
	default:
		out.owner = Missing[*t.OwnerInfo](pinned.Err())
	}
	out.languages = langs

	if err := out.owner.Err(); err != nil {
		a.log.Printf("Could not fetch extended owner info for %s. Continuing without it: %v", owner, err)
	}
	if err := out.languages.Err(); err != nil {
		a.log.Printf("Could not fetch language info for %s. Continuing without it: %v", owner, err)
	}
	return out
}

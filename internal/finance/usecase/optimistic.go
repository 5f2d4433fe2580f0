package usecase

import (
	appcache "github.com/allisson/finvault/internal/cache"
)

// runOptimistic applies a mutation to the cached entity list before the
// remote write and restores the pre-mutation snapshot if the write fails.
// A cache miss skips the local mutation entirely: the next list fetch
// rebuilds the view from the server.
func runOptimistic[T any](
	c *appcache.EntityCache,
	key string,
	mutate func(current []*T) []*T,
	remoteCall func() error,
) error {
	snapshot, cached := c.Get(key)
	if cached {
		if current, ok := snapshot.([]*T); ok {
			c.Set(key, mutate(current))
		} else {
			cached = false
		}
	}

	if err := remoteCall(); err != nil {
		if cached {
			c.Set(key, snapshot)
		}
		return err
	}
	return nil
}

// removeFirst returns a copy of entities excluding those matched by match.
func removeFirst[T any](entities []*T, match func(*T) bool) []*T {
	out := make([]*T, 0, len(entities))
	for _, entity := range entities {
		if match(entity) {
			continue
		}
		out = append(out, entity)
	}
	return out
}

// replaceFirst returns a copy of entities with the first match swapped for
// replacement.
func replaceFirst[T any](entities []*T, match func(*T) bool, replacement *T) []*T {
	out := make([]*T, len(entities))
	replaced := false
	for i, entity := range entities {
		if !replaced && match(entity) {
			out[i] = replacement
			replaced = true
			continue
		}
		out[i] = entity
	}
	return out
}

package store

// identifiable is satisfied by every cached entity.
type identifiable interface {
	Key() string
}

// mergeByID folds incoming records into local ones. A record whose id already
// exists replaces the local copy in place, keeping its position; unseen ids
// append in arrival order. Within incoming, a later duplicate id wins. The
// result is a fresh slice; neither input is mutated.
func mergeByID[T identifiable](local, incoming []T) []T {
	out := make([]T, len(local))
	copy(out, local)

	index := make(map[string]int, len(out))
	for i, item := range out {
		index[item.Key()] = i
	}

	for _, item := range incoming {
		if i, ok := index[item.Key()]; ok {
			out[i] = item
			continue
		}
		index[item.Key()] = len(out)
		out = append(out, item)
	}
	return out
}

package model

// Records loaded from a store share slice backing arrays with the store's
// working set, so membership edits must build a fresh slice rather than
// shifting elements in place.

func appendID(ids []string, id string) []string {
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

func removeID(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			out = append(out, ids[i+1:]...)
			return out, true
		}
	}
	return ids, false
}

package recon

import "sort"

// Selection tracks which detected titles are chosen for commit. Only
// titles with a catalog match that the user does not already own can be
// members. Selection is single-writer: it is mutated only by the caller
// driving the confirm flow and is not safe for concurrent use.
type Selection struct {
	resolutions map[int64]Resolution
	chosen      map[int64]struct{}
}

// NewSelection builds the default selection for a resolution set: every
// title that matched the catalog and is not already in the collection
// starts selected. Unmatched and already-owned titles start unselected.
func NewSelection(results []Resolution) *Selection {
	s := &Selection{
		resolutions: make(map[int64]Resolution, len(results)),
		chosen:      make(map[int64]struct{}),
	}
	for _, res := range results {
		s.resolutions[res.Detected.ExternalID] = res
		if res.InCatalog && !res.InCollection {
			s.chosen[res.Detected.ExternalID] = struct{}{}
		}
	}
	return s
}

// Toggle flips membership of id and reports whether the toggle applied.
// Unknown ids, titles without a catalog match, and titles already owned
// are rejected as no-ops.
func (s *Selection) Toggle(id int64) bool {
	res, ok := s.resolutions[id]
	if !ok || !res.InCatalog || res.InCollection {
		return false
	}
	if _, selected := s.chosen[id]; selected {
		delete(s.chosen, id)
	} else {
		s.chosen[id] = struct{}{}
	}
	return true
}

// Clear unselects everything while keeping the resolution set.
func (s *Selection) Clear() {
	s.chosen = make(map[int64]struct{})
}

// Selected reports whether id is currently chosen.
func (s *Selection) Selected(id int64) bool {
	_, ok := s.chosen[id]
	return ok
}

// IDs returns the chosen external ids in ascending order.
func (s *Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s.chosen))
	for id := range s.chosen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of chosen ids.
func (s *Selection) Len() int {
	return len(s.chosen)
}

func (s *Selection) resolution(id int64) (Resolution, bool) {
	res, ok := s.resolutions[id]
	return res, ok
}

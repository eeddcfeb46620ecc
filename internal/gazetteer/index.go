package gazetteer

import (
	"github.com/gnis-match/internal/normalize"
)

// Index holds the lookup structures built once over a catalog snapshot
// and shared read-only by every matching strategy. Positions index into
// Entries; Names and Counties carry the precomputed canonical forms so
// strategies never re-normalize catalog rows.
type Index struct {
	Entries  []Entry
	Names    []string
	Counties []string

	ByName      map[string][]int
	ByCounty    map[string][]int
	ByFirstWord map[string][]int
}

// BuildIndex normalizes every entry and builds the name, county and
// leading-word indexes. The catalog must not change for the lifetime of
// the index; rebuild after any catalog update.
func BuildIndex(entries []Entry) *Index {
	idx := &Index{
		Entries:     entries,
		Names:       make([]string, len(entries)),
		Counties:    make([]string, len(entries)),
		ByName:      make(map[string][]int),
		ByCounty:    make(map[string][]int),
		ByFirstWord: make(map[string][]int),
	}

	for pos, entry := range entries {
		name := normalize.Name(entry.Name)
		county := normalize.Name(entry.County)
		idx.Names[pos] = name
		idx.Counties[pos] = county

		if name == "" {
			continue
		}
		idx.ByName[name] = append(idx.ByName[name], pos)
		if county != "" {
			idx.ByCounty[county] = append(idx.ByCounty[county], pos)
		}
		if first := normalize.FirstWord(name); first != "" {
			idx.ByFirstWord[first] = append(idx.ByFirstWord[first], pos)
		}
	}

	return idx
}

// Package search finds entities in the configuration tree by fuzzy label
// match.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstruik/phraser/internal/model"
)

// Match pairs an entity with its fuzzy rank; lower ranks are closer.
type Match struct {
	Entity model.Entity
	Rank   int
}

// Find returns entities whose display label fuzzy-matches query, best
// matches first. Abbreviations count as labels too, so "sig" finds the
// phrase it triggers. An empty query matches nothing.
func Find(query string, cfg *model.Config) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var matches []Match
	for _, e := range cfg.AllEntities() {
		rank := fuzzy.RankMatchNormalizedFold(query, e.Display())
		if item, ok := e.(*model.Item); ok {
			for _, abbr := range item.Abbreviations {
				if r := fuzzy.RankMatchNormalizedFold(query, abbr); r >= 0 && (rank < 0 || r < rank) {
					rank = r
				}
			}
		}
		if rank >= 0 {
			matches = append(matches, Match{Entity: e, Rank: rank})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Rank < matches[b].Rank
	})
	return matches
}

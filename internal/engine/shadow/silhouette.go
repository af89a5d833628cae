package shadow

import (
	"fmt"
	"strings"
)

// Policy selects how a light-facing edge is tested against its reverse edges.
type Policy int

const (
	// FirstMatch stops at the first light-facing reverse edge. Used by the pipeline variant.
	FirstMatch Policy = iota
	// CountMatches tallies every reverse edge by facing. Used by the two-pass stencil variant;
	// it additionally reports dangling edges.
	CountMatches
)

// String returns the config spelling of the policy.
func (p Policy) String() string {
	switch p {
	case FirstMatch:
		return "first-match"
	case CountMatches:
		return "count-matches"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a config value. "auto" and "" return ok=false so the caller can fall back
// to the variant default.
func ParsePolicy(s string) (p Policy, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FirstMatch, false, nil
	case "first-match", "first":
		return FirstMatch, true, nil
	case "count-matches", "count":
		return CountMatches, true, nil
	default:
		return FirstMatch, false, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Edge is a silhouette edge between two source vertexes, oriented as in its light-facing
// triangle.
type Edge struct {
	From, To uint32
}

// SilhouetteStats describes one extraction.
type SilhouetteStats struct {
	Candidates int // light-facing directed edges examined
	Emitted    int // edges classified as silhouette, including ones past the output cap
	Rejected   int // edges cancelled by a light-facing reverse edge
	Dangling   int // silhouette edges with no reverse edge at all (CountMatches only)
	Truncated  int // silhouette edges that did not fit in out
}

// Extract appends to out every silhouette edge found in the first n vertexes of table and
// returns the grown slice. An edge qualifies when its triangle faces the light and no reverse
// edge from a light-facing triangle exists. Edges without any reverse edge always qualify.
//
// At most limit edges are appended, limit <= 0 meaning unbounded; the rest are counted in
// Truncated.
func Extract(table *EdgeTable, n int, policy Policy, limit int, out []Edge) ([]Edge, SilhouetteStats) {
	var stats SilhouetteStats
	n = min(n, table.Len())

	for i := 0; i < n; i++ {
		from := uint32(i)
		for _, e := range table.Edges(from) {
			if !e.Facing {
				continue
			}
			stats.Candidates++

			var sil bool
			switch policy {
			case CountMatches:
				var hit [2]int
				for _, r := range table.Edges(e.To) {
					if r.To == from {
						hit[b2i(r.Facing)]++
					}
				}
				sil = hit[1] == 0
				if sil && hit[0] == 0 {
					stats.Dangling++
				}
			default:
				sil = true
				for _, r := range table.Edges(e.To) {
					if r.To == from && r.Facing {
						sil = false
						break
					}
				}
			}

			if !sil {
				stats.Rejected++
				continue
			}
			stats.Emitted++
			if limit > 0 && stats.Emitted > limit {
				stats.Truncated++
				continue
			}
			out = append(out, Edge{From: from, To: e.To})
		}
	}
	return out, stats
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

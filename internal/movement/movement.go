package movement

import (
	"slices"
	"strings"

	"ringsim/internal/ring"
)

// Move records a blob that changed owner.
type Move struct {
	Content string
	From    int
	To      int
}

// Report is the result of comparing two placements.
type Report struct {
	Moves []Move // ordered by content id
	// Total is the number of blobs present in both placements.
	Total int
}

// Fraction returns the share of blobs that moved, or 0 when there are none.
func (r Report) Fraction() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(len(r.Moves)) / float64(r.Total)
}

// Owners maps every content id in the snapshot to its server id.
func Owners(servers []ring.ServerInfo) map[string]int {
	owners := make(map[string]int)
	for _, s := range servers {
		for _, b := range s.Blobs {
			owners[b.ID] = s.ID
		}
	}
	return owners
}

// Diff compares blob ownership between two snapshots. Blobs present in only
// one of them (added, removed or unassigned) are not counted.
func Diff(before, after []ring.ServerInfo) Report {
	return compare(Owners(before), Owners(after))
}

func compare(before, after map[string]int) Report {
	var rep Report
	for content, from := range before {
		to, ok := after[content]
		if !ok {
			continue
		}
		rep.Total++
		if from != to {
			rep.Moves = append(rep.Moves, Move{Content: content, From: from, To: to})
		}
	}
	slices.SortFunc(rep.Moves, func(a, b Move) int { return strings.Compare(a.Content, b.Content) })
	return rep
}

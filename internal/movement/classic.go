package movement

import (
	"strconv"

	"github.com/buraksezer/consistent"
	"github.com/cespare/xxhash/v2"

	"ringsim/internal/ring"
)

type member int

func (m member) String() string {
	return strconv.Itoa(int(m))
}

type hasher struct{}

func (hasher) Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Classic is a bounded-load consistent hashing ring over the same server ids,
// used as a baseline for how far blobs would travel without a full rebuild.
type Classic struct {
	c *consistent.Consistent
}

// NewClassic builds a classic ring for the given server ids.
func NewClassic(ids []int) *Classic {
	c := consistent.New(nil, consistent.Config{
		Hasher:            hasher{},
		PartitionCount:    271,
		ReplicationFactor: 20,
		Load:              1.25,
	})
	for _, id := range ids {
		c.Add(member(id))
	}
	return &Classic{c: c}
}

// Owner returns the server id responsible for content.
// Returns (0, false) if the ring has no servers.
func (c *Classic) Owner(content string) (int, bool) {
	if len(c.c.GetMembers()) == 0 {
		return 0, false
	}
	m := c.c.LocateKey([]byte(content))
	if m == nil {
		return 0, false
	}
	return int(m.(member)), true
}

// ClassicDiff places the blobs held in both snapshots on classic rings built
// from each snapshot's server ids and reports the resulting moves.
func ClassicDiff(before, after []ring.ServerInfo) Report {
	held := Owners(after)
	contents := make(map[string]struct{})
	for content := range Owners(before) {
		if _, ok := held[content]; ok {
			contents[content] = struct{}{}
		}
	}

	place := func(servers []ring.ServerInfo) map[string]int {
		ids := make([]int, 0, len(servers))
		for _, s := range servers {
			ids = append(ids, s.ID)
		}
		c := NewClassic(ids)
		owners := make(map[string]int, len(contents))
		for content := range contents {
			if id, ok := c.Owner(content); ok {
				owners[content] = id
			}
		}
		return owners
	}
	return compare(place(before), place(after))
}

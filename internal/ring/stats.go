package ring

import (
	"slices"

	"ringsim/internal/hash"
)

// ServerStats summarizes one server's share of the ring.
type ServerStats struct {
	ID           int
	Blobs        int
	VirtualNodes int
	// Span is the number of degrees whose clockwise successor slot belongs
	// to this server. Spans of all servers add up to 360 on a populated ring.
	Span int
}

// Stats summarizes the whole ring.
type Stats struct {
	Servers      []ServerStats // ascending by id
	Weight       int
	VirtualNodes int
	Blobs        int
	Unassigned   int
}

// Stats computes per-server load and arc coverage.
func (r *Ring) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{
		Weight:       r.weight,
		VirtualNodes: r.vnodes.Len(),
		Unassigned:   len(r.unassigned),
	}

	byID := make(map[int]*ServerStats, len(r.servers))
	for _, id := range r.sortedIDs() {
		st.Servers = append(st.Servers, ServerStats{ID: id, Blobs: r.servers[id].BlobCount()})
		st.Blobs += r.servers[id].BlobCount()
	}
	for i := range st.Servers {
		byID[st.Servers[i].ID] = &st.Servers[i]
	}

	// Each slot covers the arc after its predecessor up to and including
	// itself; the minimum slot also covers the wrap past 359.
	slots := slices.Collect(r.vnodes.All())
	for i, n := range slots {
		prev := slots[len(slots)-1].Key - hash.Degrees
		if i > 0 {
			prev = slots[i-1].Key
		}
		s := byID[n.Value.ID]
		s.VirtualNodes++
		s.Span += n.Key - prev
	}
	return st
}

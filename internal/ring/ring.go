package ring

import (
	"fmt"
	"slices"
	"sync"

	"ringsim/internal/hash"
	"ringsim/internal/index"
)

// Ring maintains the server table, the virtual node index and blob
// ownership. All state is guarded by a single lock so a rebuild is never
// observed half done.
type Ring struct {
	mu         sync.RWMutex
	weight     int
	hashFn     hash.Func
	servers    map[int]*Server
	vnodes     *index.Index[*Server]
	unassigned []Blob // blobs held while the ring has no servers
}

// Option configures a Ring.
type Option func(*Ring)

// WithHash sets the function used to place blobs on the ring.
func WithHash(fn hash.Func) Option {
	return func(r *Ring) {
		if fn != nil {
			r.hashFn = fn
		}
	}
}

// WithWeight sets the initial global weight (virtual nodes per server).
// Values below 1 are ignored.
func WithWeight(weight int) Option {
	return func(r *Ring) {
		if weight >= 1 {
			r.weight = weight
		}
	}
}

// NewRing creates an empty ring with a global weight of 1 and FNV-1a placement.
func NewRing(opts ...Option) *Ring {
	r := &Ring{
		weight:  1,
		hashFn:  hash.Angle,
		servers: make(map[int]*Server),
		vnodes:  index.New[*Server](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddServer adds a server with the given id and rebuilds the ring.
// The server's weight is always the ring's current global weight.
func (r *Ring) AddServer(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.servers[id]; exists {
		return fmt.Errorf("add server %d: %w", id, ErrDuplicateServer)
	}
	if total := (len(r.servers) + 1) * r.weight; total > hash.Degrees {
		return fmt.Errorf("add server %d: %d virtual nodes: %w", id, total, ErrSlotCapacity)
	}

	r.servers[id] = NewServer(id, r.weight)
	r.rebuild()
	return nil
}

// RemoveServer removes the server and rebuilds the ring. Unknown ids are ignored.
func (r *Ring) RemoveServer(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	server, exists := r.servers[id]
	if !exists {
		return
	}

	// Keep the departing server's blobs; the rebuild re-places them.
	r.unassigned = append(r.unassigned, server.takeBlobs()...)
	delete(r.servers, id)
	r.rebuild()
}

// SetGlobalWeight applies a new weight to every server and rebuilds the ring.
// Weights below 1 are ignored.
func (r *Ring) SetGlobalWeight(weight int) error {
	if weight < 1 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if total := len(r.servers) * weight; total > hash.Degrees {
		return fmt.Errorf("set weight %d: %d virtual nodes: %w", weight, total, ErrSlotCapacity)
	}

	r.weight = weight
	for _, server := range r.servers {
		server.Weight = weight
	}
	r.rebuild()
	return nil
}

// AddBlob places a blob for content on the server responsible for its angle.
func (r *Ring) AddBlob(content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.contains(content) {
		return fmt.Errorf("add blob %q: %w", content, ErrDuplicateBlob)
	}
	if !r.place(content) {
		return fmt.Errorf("add blob %q: %w", content, ErrNoServers)
	}
	return nil
}

// RemoveBlob removes the blob for content from its current owner.
// Unknown content is ignored.
func (r *Ring) RemoveBlob(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner := r.lookup(r.hashFn(content)); owner != nil {
		owner.RemoveBlob(content)
		return
	}
	r.unassigned = slices.DeleteFunc(r.unassigned, func(b Blob) bool { return b.ID == content })
}

// ServerForAngle returns the server owning the clockwise successor slot of
// angle. Angles outside [0, 360) are folded onto the ring.
// Returns (ServerInfo{}, false) if the ring is empty.
func (r *Ring) ServerForAngle(angle int) (ServerInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	server := r.lookup(hash.Normalize(angle))
	if server == nil {
		return ServerInfo{}, false
	}
	return server.info(), true
}

// Owner returns the server currently holding the blob for content.
func (r *Ring) Owner(content string) (ServerInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	server := r.lookup(r.hashFn(content))
	if server == nil || !server.HasBlob(content) {
		return ServerInfo{}, false
	}
	return server.info(), true
}

// PreferenceList returns up to n distinct server ids met walking clockwise
// from the angle of content, starting with its owner. This is the replica
// set a replicated store would use; placement itself only uses the first.
func (r *Ring) PreferenceList(content string, n int) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.vnodes.Len() == 0 || n <= 0 {
		return []int{}
	}

	slots := slices.Collect(r.vnodes.All())
	angle := r.hashFn(content)
	idx, _ := slices.BinarySearchFunc(slots, angle, func(slot index.Node[*Server], a int) int {
		return slot.Key - a
	})
	if idx >= len(slots) {
		idx = 0
	}

	seen := make(map[int]bool)
	result := make([]int, 0, min(n, len(r.servers)))
	for i := 0; i < len(slots) && len(result) < n; i++ {
		id := slots[(idx+i)%len(slots)].Value.ID
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}

// Contains reports whether a blob for content exists, assigned or not.
func (r *Ring) Contains(content string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.contains(content)
}

// Servers returns a snapshot of all servers ordered by ascending id.
func (r *Ring) Servers() []ServerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ServerInfo, 0, len(r.servers))
	for _, id := range r.sortedIDs() {
		out = append(out, r.servers[id].info())
	}
	return out
}

// VirtualNodes returns every ring slot in ascending angle order.
func (r *Ring) VirtualNodes() []VirtualNode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]VirtualNode, 0, r.vnodes.Len())
	for n := range r.vnodes.All() {
		out = append(out, VirtualNode{Angle: n.Key, ServerID: n.Value.ID})
	}
	return out
}

// Unassigned returns blobs retained while the ring had no servers.
// They are placed again as soon as a server is added.
func (r *Ring) Unassigned() []Blob {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.unassigned)
}

// Weight returns the current global weight.
func (r *Ring) Weight() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.weight
}

// Len returns the number of servers.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.servers)
}

// Angle returns the ring position the placement hash assigns to content.
func (r *Ring) Angle(content string) int {
	return r.hashFn(content)
}

// rebuild recomputes every virtual node and re-derives every blob's owner.
// Caller must hold the write lock.
func (r *Ring) rebuild() {
	ids := r.sortedIDs()

	// Collect
	pending := r.unassigned
	r.unassigned = nil
	for _, id := range ids {
		pending = append(pending, r.servers[id].takeBlobs()...)
	}

	// Clear
	r.vnodes.Clear()
	if len(ids) == 0 {
		r.unassigned = pending
		return
	}

	total := len(ids) * r.weight
	for i := 0; i < total; i++ {
		r.vnodes.Insert(slotAngle(i, total), r.servers[ids[i%len(ids)]])
	}

	// Reinsert
	for _, b := range pending {
		r.place(b.ID)
	}
}

// place hashes content and appends it to the responsible server.
// Returns false if the ring has no servers. Caller must hold the write lock.
func (r *Ring) place(content string) bool {
	angle := r.hashFn(content)
	server := r.lookup(angle)
	if server == nil {
		return false
	}
	server.AddBlob(Blob{ID: content, Angle: angle})
	return true
}

// lookup walks clockwise from angle to the first slot, wrapping past 359.
func (r *Ring) lookup(angle int) *Server {
	n, ok := r.vnodes.Lookup(angle)
	if !ok {
		return nil
	}
	return n.Value
}

func (r *Ring) contains(content string) bool {
	for _, server := range r.servers {
		if server.HasBlob(content) {
			return true
		}
	}
	return slices.ContainsFunc(r.unassigned, func(b Blob) bool { return b.ID == content })
}

func (r *Ring) sortedIDs() []int {
	ids := make([]int, 0, len(r.servers))
	for id := range r.servers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// slotAngle evenly spaces slot i of total around the ring:
// round(i*360/total) mod 360, with halves rounded up.
func slotAngle(i, total int) int {
	return ((2*i*hash.Degrees + total) / (2 * total)) % hash.Degrees
}

package ring

import "slices"

// Blob is a unit of data placed on the ring by the hash of its content id.
type Blob struct {
	ID    string
	Angle int
}

// Server is a logical server holding the blobs it currently owns.
// Its blob collection is only mutated by the Ring that owns it.
type Server struct {
	ID     int
	Weight int
	blobs  []Blob
}

// NewServer creates a server with no blobs.
func NewServer(id, weight int) *Server {
	return &Server{ID: id, Weight: weight}
}

// AddBlob appends the blob. Duplicates are not checked here; the ring
// guarantees uniqueness across all servers.
func (s *Server) AddBlob(b Blob) {
	s.blobs = append(s.blobs, b)
}

// RemoveBlob removes the first blob with the given content id.
// Returns the removed blob and true, or false if no blob matched.
func (s *Server) RemoveBlob(id string) (Blob, bool) {
	i := slices.IndexFunc(s.blobs, func(b Blob) bool { return b.ID == id })
	if i < 0 {
		return Blob{}, false
	}
	b := s.blobs[i]
	s.blobs = slices.Delete(s.blobs, i, i+1)
	return b, true
}

// HasBlob reports whether the server holds a blob with the given content id.
func (s *Server) HasBlob(id string) bool {
	return slices.ContainsFunc(s.blobs, func(b Blob) bool { return b.ID == id })
}

// Blobs returns a copy of the server's blobs in insertion order.
func (s *Server) Blobs() []Blob {
	return slices.Clone(s.blobs)
}

// BlobCount returns the number of blobs held.
func (s *Server) BlobCount() int {
	return len(s.blobs)
}

// takeBlobs empties the collection and returns what it held.
func (s *Server) takeBlobs() []Blob {
	blobs := s.blobs
	s.blobs = nil
	return blobs
}

// info returns a detached snapshot of the server.
func (s *Server) info() ServerInfo {
	blobs := s.Blobs()
	if blobs == nil {
		blobs = []Blob{}
	}
	return ServerInfo{ID: s.ID, Weight: s.Weight, Blobs: blobs}
}

// ServerInfo is a read-only snapshot of a server.
type ServerInfo struct {
	ID     int
	Weight int
	Blobs  []Blob
}

// VirtualNode is one ring slot and the id of the server that owns it.
type VirtualNode struct {
	Angle    int
	ServerID int
}

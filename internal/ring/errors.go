package ring

import "errors"

var (
	// ErrDuplicateServer is returned when adding a server id already present.
	ErrDuplicateServer = errors.New("server already exists")
	// ErrDuplicateBlob is returned when adding a blob whose content id is
	// already held anywhere in the ring.
	ErrDuplicateBlob = errors.New("blob already exists in the ring")
	// ErrNoServers is returned when adding a blob to an empty ring.
	ErrNoServers = errors.New("no servers available")
	// ErrSlotCapacity is returned when servers × weight would exceed the
	// number of distinct angles on the ring.
	ErrSlotCapacity = errors.New("virtual nodes exceed ring capacity")
)

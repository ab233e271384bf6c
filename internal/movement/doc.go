// Package movement reports which blobs change owner across a topology change.
// It compares two ring snapshots, and can show what a classic bounded-load
// consistent hashing ring would have relocated for the same membership change.
// Nothing here mutates a ring.
package movement

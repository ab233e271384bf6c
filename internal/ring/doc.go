// Package ring implements a consistent hashing ring with weighted virtual
// nodes over a 360-degree coordinate space. Servers own evenly spaced virtual
// nodes and every blob belongs to the server reached by walking clockwise
// from the blob's angle.
//
// Every topology change (adding or removing a server, changing the global
// weight) rebuilds the whole ring: virtual node angles are recomputed and every
// blob's owner is derived again from scratch. There is no incremental
// rebalancing path.
package ring

// Package index provides the ordered angle index behind the ring: a sorted
// mapping from ring position to owner with clockwise successor lookup.
package index

package hash

import (
	"fmt"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// Degrees is the size of the ring coordinate space.
const Degrees = 360

// Func maps a string to an angle in [0, Degrees).
type Func func(s string) int

// Angle computes a 32-bit FNV-1a hash of the string reduced to an angle.
func Angle(s string) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32() % Degrees)
}

// XXHash computes a 64-bit xxHash of the string reduced to an angle.
func XXHash(s string) int {
	return int(xxhash.Sum64String(s) % Degrees)
}

// ByName returns the hash function registered under name.
// An empty name selects the default FNV-1a function.
func ByName(name string) (Func, error) {
	switch name {
	case "", "fnv1a":
		return Angle, nil
	case "xxhash":
		return XXHash, nil
	}
	return nil, fmt.Errorf("unknown hash function: %s (expected fnv1a or xxhash)", name)
}

// ServerAngle returns a Knuth multiplicative preview angle for a server id.
// It is informational only; virtual node angles come from even slot spacing.
func ServerAngle(id int) int {
	h := uint32(uint64(id) * 2654435761)
	return int(uint64(h) * Degrees >> 32)
}

// Normalize folds any integer onto [0, Degrees), wrapping negatives.
func Normalize(angle int) int {
	angle %= Degrees
	if angle < 0 {
		angle += Degrees
	}
	return angle
}

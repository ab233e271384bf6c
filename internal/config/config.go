package config

import (
	"fmt"
	"strconv"
	"strings"

	"ringsim/internal/hash"
	"ringsim/internal/ring"
)

// Config holds the simulator configuration.
type Config struct {
	Servers    []int  // servers present at startup
	Weight     int    // global weight (virtual nodes per server)
	Hash       string // placement hash name: fnv1a or xxhash
	ScriptPath string // command script; empty reads stdin
	Quiet      bool   // suppress log output
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Weight: 1,
		Hash:   "fnv1a",
	}
}

// ParseServers parses a comma-separated list of server ids in the format:
// "1,2,3"
func ParseServers(serversStr string) ([]int, error) {
	if serversStr == "" {
		return []int{}, nil
	}

	parts := strings.Split(serversStr, ",")
	ids := make([]int, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid server id: %s (expected integer)", part)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// Validate checks the configuration for values the ring would reject.
func (c *Config) Validate() error {
	if c.Weight < 1 {
		return fmt.Errorf("weight must be at least 1, got %d", c.Weight)
	}
	if _, err := hash.ByName(c.Hash); err != nil {
		return err
	}

	seen := make(map[int]bool, len(c.Servers))
	for _, id := range c.Servers {
		if seen[id] {
			return fmt.Errorf("server %d listed more than once", id)
		}
		seen[id] = true
	}

	if total := len(c.Servers) * c.Weight; total > hash.Degrees {
		return fmt.Errorf("%d servers at weight %d need %d virtual nodes, ring holds %d",
			len(c.Servers), c.Weight, total, hash.Degrees)
	}
	return nil
}

// BuildRing creates a ring with the configured weight, hash and servers.
func (c *Config) BuildRing() (*ring.Ring, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	fn, err := hash.ByName(c.Hash)
	if err != nil {
		return nil, err
	}

	r := ring.NewRing(ring.WithHash(fn), ring.WithWeight(c.Weight))
	for _, id := range c.Servers {
		if err := r.AddServer(id); err != nil {
			return nil, fmt.Errorf("failed to add server %d: %w", id, err)
		}
	}
	return r, nil
}

// Package snowflake implements a Snowflake-style distributed unique ID
// generator. Each ID is a 64-bit integer packing a millisecond timestamp,
// a datacenter ID, a machine ID and a per-millisecond sequence counter.
package snowflake

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	// Epoch is the reference instant (ms) timestamps are counted from.
	Epoch int64 = 1741783382057

	machineIDBits    = 5
	datacenterIDBits = 5
	sequenceBits     = 12

	// MaxSequence is the highest sequence value within one millisecond (4095).
	MaxSequence int64 = (1 << sequenceBits) - 1

	// MaxDatacenterID is the highest valid datacenter ID (31).
	MaxDatacenterID int64 = (1 << datacenterIDBits) - 1

	machineIDShift    = sequenceBits
	datacenterIDShift = sequenceBits + machineIDBits
	timestampShift    = sequenceBits + machineIDBits + datacenterIDBits
)

// Generator issues unique, monotonically increasing 64-bit IDs. It is safe
// for concurrent use: the whole read-modify-write cycle runs under one mutex.
//
// Correctness requires a non-decreasing clock. A backward clock jump can
// produce duplicate IDs; this is an accepted limitation and is not corrected.
type Generator struct {
	mu            sync.Mutex
	lastTimestamp int64
	sequence      int64
	machineID     int64

	// now is swappable in tests
	now func() time.Time
}

// NewGenerator creates a Generator with a machine ID drawn once from a
// cryptographically strong random source in [0, 32).
func NewGenerator() (*Generator, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<machineIDBits))
	if err != nil {
		return nil, fmt.Errorf("failed to pick machine id: %w", err)
	}

	return &Generator{
		lastTimestamp: -1,
		machineID:     n.Int64(),
		now:           time.Now,
	}, nil
}

// MachineID returns the randomly assigned machine ID of this generator.
func (g *Generator) MachineID() int64 {
	return g.machineID
}

// NextID returns the next unique ID for the given datacenter ID (0-31).
//
// If more than 4096 IDs are requested within a single millisecond the
// sequence counter wraps and NextID spins until the clock advances to the
// next millisecond before issuing the ID.
func (g *Generator) NextID(datacenterID int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	timestamp := g.now().UnixMilli()
	if timestamp == g.lastTimestamp {
		g.sequence = (g.sequence + 1) & MaxSequence
		if g.sequence == 0 {
			// Sequence exhausted for this millisecond, spin until the
			// clock moves past it.
			timestamp = g.waitNextMillis(timestamp)
		}
	} else {
		g.sequence = 0
	}
	g.lastTimestamp = timestamp

	return ((timestamp - Epoch) << timestampShift) |
		((datacenterID & MaxDatacenterID) << datacenterIDShift) |
		(g.machineID << machineIDShift) |
		g.sequence
}

// waitNextMillis busy-waits until the clock reads strictly after the last
// issued timestamp. Must be called with g.mu held.
func (g *Generator) waitNextMillis(timestamp int64) int64 {
	for timestamp <= g.lastTimestamp {
		timestamp = g.now().UnixMilli()
	}
	return timestamp
}

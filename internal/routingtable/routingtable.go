// Package routingtable implements the downward routing table of spec §4.3:
// a bounded mapping from descendant NodeIdentity to the direct neighbor
// (nextHop) through which it is reached, built entirely from upward DAO
// advertisements and pruned by staleness, never by LRU.
package routingtable

import (
	"time"

	"DodagMesh/internal/domain"
	"DodagMesh/internal/logger"
)

// PutResult reports how Put changed the table.
type PutResult int

const (
	// Inserted indicates the destination was not previously present and has
	// been inserted.
	Inserted PutResult = iota
	// Updated indicates the destination already existed; nextHop, role and
	// lastHeard were refreshed.
	Updated
	// Full indicates the table is at capacity and the destination was not
	// already present, so the entry was rejected (spec §7 CapacityExceeded).
	// Put also returns Full when nextHop is the table's own node.
	Full
)

// RoutingTable is the per-node downward routing table. It is owned by a
// single mote's event loop; per spec §5 the loop is single-threaded and
// cooperative, so no internal locking is required.
type RoutingTable struct {
	logger   logger.Logger
	self     domain.NodeIdentity
	capacity int
	entries  map[domain.NodeIdentity]domain.RoutingEntry
}

// New creates an empty RoutingTable for self, bounded at capacity entries
// (must be >= 16 per spec §3).
func New(self domain.NodeIdentity, capacity int, opts ...Option) *RoutingTable {
	rt := &RoutingTable{
		logger:   &logger.NopLogger{},
		self:     self,
		capacity: capacity,
		entries:  make(map[domain.NodeIdentity]domain.RoutingEntry, capacity),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.logger.Debug("routing table initialized", logger.F("capacity", capacity))
	return rt
}

// Put inserts or refreshes the entry for dest, reached through nextHop
// (which must be a direct radio neighbor; nextHop == self is never valid
// and is rejected defensively, see spec §8 invariant 3).
func (rt *RoutingTable) Put(dest domain.NodeIdentity, role domain.RoleType, nextHop domain.NodeIdentity, now time.Time) PutResult {
	if nextHop == rt.self {
		rt.logger.Warn("Put: refusing self as nextHop", logger.FIdentity("dest", dest))
		return Full
	}
	existing, ok := rt.entries[dest]
	if !ok {
		if len(rt.entries) >= rt.capacity {
			rt.logger.Warn("Put: routing table full", logger.F("capacity", rt.capacity))
			return Full
		}
		rt.entries[dest] = domain.RoutingEntry{
			Destination: dest,
			NextHop:     nextHop,
			Role:        role,
			LastHeard:   now,
		}
		rt.logger.Debug("Put: new entry",
			logger.FIdentity("dest", dest), logger.FIdentity("nextHop", nextHop), logger.F("role", role.String()))
		return Inserted
	}

	existing.NextHop = nextHop
	existing.Role = role
	existing.LastHeard = now
	rt.entries[dest] = existing
	rt.logger.Debug("Put: updated entry",
		logger.FIdentity("dest", dest), logger.FIdentity("nextHop", nextHop), logger.F("role", role.String()))
	return Updated
}

// Get returns the entry for dest and true, or the zero value and false on
// a miss.
func (rt *RoutingTable) Get(dest domain.NodeIdentity) (domain.RoutingEntry, bool) {
	e, ok := rt.entries[dest]
	return e, ok
}

// Delete removes the entry for dest, if present.
func (rt *RoutingTable) Delete(dest domain.NodeIdentity) {
	delete(rt.entries, dest)
}

// Len reports the number of entries currently stored.
func (rt *RoutingTable) Len() int {
	return len(rt.entries)
}

// Clear empties the table, used by detach() (spec §4.2).
func (rt *RoutingTable) Clear() {
	rt.entries = make(map[domain.NodeIdentity]domain.RoutingEntry, rt.capacity)
	rt.logger.Debug("routing table cleared")
}

// Iterate calls fn for every entry whose Role equals roleFilter, in no
// particular order. It is used by multicast-by-role fan-out (spec §4.5.3).
// fn returning false stops the iteration early.
func (rt *RoutingTable) Iterate(roleFilter domain.RoleType, fn func(domain.RoutingEntry) bool) {
	for _, e := range rt.entries {
		if e.Role != roleFilter {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// All returns every entry, for diagnostics and testing.
func (rt *RoutingTable) All() []domain.RoutingEntry {
	out := make([]domain.RoutingEntry, 0, len(rt.entries))
	for _, e := range rt.entries {
		out = append(out, e)
	}
	return out
}

// EvictStale removes every entry whose LastHeard is older than timeout,
// relative to now. It reports whether any entry was removed.
func (rt *RoutingTable) EvictStale(now time.Time, timeout time.Duration) bool {
	removed := false
	for dest, e := range rt.entries {
		if now.Sub(e.LastHeard) > timeout {
			delete(rt.entries, dest)
			removed = true
			rt.logger.Debug("EvictStale: entry expired", logger.FIdentity("dest", dest))
		}
	}
	return removed
}

// DebugLog emits a structured DEBUG-level snapshot of the table.
func (rt *RoutingTable) DebugLog() {
	entries := make([]map[string]any, 0, len(rt.entries))
	for dest, e := range rt.entries {
		entries = append(entries, map[string]any{
			"dest":    dest.String(),
			"nextHop": e.NextHop.String(),
			"role":    e.Role.String(),
		})
	}
	rt.logger.Debug("routing table snapshot", logger.F("entries", entries))
}

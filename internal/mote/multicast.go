package mote

import "DodagMesh/internal/domain"

// fanOutByRole implements spec §4.5.3: collect the distinct nextHops of
// every routing entry whose role equals targetRole and send one copy of
// bytes to each, deduplicating when several destinations share a link.
// Falls back to forwarding upward when no matching entry is known
// locally (spec §4.5.2 TURNON, ErrNoNextHop compensation).
func (m *Mote) fanOutByRole(targetRole domain.RoleType, bytes []byte) {
	seen := make(map[domain.NodeIdentity]bool)
	sent := false
	m.rt.Iterate(targetRole, func(e domain.RoutingEntry) bool {
		if !seen[e.NextHop] {
			seen[e.NextHop] = true
			m.link.Send(e.NextHop, bytes)
			sent = true
		}
		return true
	})
	if !sent {
		m.forwardToParent(bytes)
	}
}

// forwardByRoleFirstMatch implements the MAINT routing rule of spec
// §4.5.2: route towards a single known actuator of the probed role
// rather than fanning out to every match, since a maintenance probe has
// exactly one intended responder.
func (m *Mote) forwardByRoleFirstMatch(targetRole domain.RoleType, bytes []byte) {
	var nextHop domain.NodeIdentity
	found := false
	m.rt.Iterate(targetRole, func(e domain.RoutingEntry) bool {
		nextHop = e.NextHop
		found = true
		return false // stop at first match
	})
	if found {
		m.link.Send(nextHop, bytes)
		return
	}
	m.forwardToParent(bytes)
}

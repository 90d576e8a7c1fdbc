package mote

import "DodagMesh/internal/domain"

// ChooseResult is the outcome of evaluating a candidate parent
// advertisement against the current state (spec §4.2 choose_parent).
type ChooseResult int

const (
	ChooseUnchanged ChooseResult = iota
	ChooseNew
	ChooseChanged
)

func (r ChooseResult) String() string {
	switch r {
	case ChooseNew:
		return "NEW"
	case ChooseChanged:
		return "CHANGED"
	default:
		return "UNCHANGED"
	}
}

// eligibleParentRole implements the role-constrained topology table of
// spec §4.2: forwarders may only attach to the root; leaves and the
// mobile terminal may attach to any non-root role; the root never
// attaches.
func eligibleParentRole(selfRole, candidateRole domain.RoleType) bool {
	switch selfRole {
	case domain.RoleRoot:
		return false
	case domain.RoleForwarder:
		return candidateRole == domain.RoleRoot
	default:
		return candidateRole != domain.RoleRoot
	}
}

// betterParent decides whether candidate should replace the current
// parent, per the deterministic total order fixed for this
// implementation (role ascending, rank ascending, rss descending), with
// the spec's rss-threshold hysteresis applied when the role is unchanged
// so that a marginal RSS fluctuation does not cause flapping.
func (m *Mote) betterParent(candidate domain.ParentInfo) bool {
	cur := *m.parent
	if candidate.Role == cur.Role {
		if candidate.Rank < cur.Rank {
			return true
		}
		return candidate.Rank == cur.Rank && candidate.RSS > cur.RSS+m.cfg.Radio.RSSThreshold
	}
	return candidate.Role < cur.Role
}

// ChooseParent evaluates an advertisement from a neighbor not currently
// acting as parent (spec §4.2). Ineligible candidates are always
// UNCHANGED.
func (m *Mote) ChooseParent(candidate domain.ParentInfo) ChooseResult {
	if !eligibleParentRole(m.role, candidate.Role) {
		return ChooseUnchanged
	}
	if !m.inDodag {
		m.attach(candidate)
		return ChooseNew
	}
	if m.betterParent(candidate) {
		m.attach(candidate)
		return ChooseChanged
	}
	return ChooseUnchanged
}

func (m *Mote) attach(p domain.ParentInfo) {
	pi := p
	m.parent = &pi
	m.inDodag = true
	m.rank = p.Rank + 1
}

// UpdateParent applies a fresh advertisement heard from the current
// parent (spec §4.2 update_parent): rss and role are always refreshed; a
// rank change propagates to self's own rank and is reported so the
// caller can re-advertise and reset the trickle timer.
func (m *Mote) UpdateParent(rank domain.Rank, rss int8, role domain.RoleType) (rankChanged bool) {
	if m.parent == nil {
		return false
	}
	m.parent.RSS = rss
	m.parent.Role = role
	if rank != m.parent.Rank {
		m.parent.Rank = rank
		m.rank = rank + 1
		return true
	}
	return false
}

// Detach drops the parent and resets DODAG membership to the boot state
// (spec §4.2 detach, invariant 4). Idempotent: detaching twice is
// equivalent to detaching once.
func (m *Mote) Detach() {
	m.parent = nil
	m.inDodag = false
	m.rank = domain.InfiniteRank
	m.rt.Clear()
}

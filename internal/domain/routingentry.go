package domain

import "time"

// RoutingEntry maps one descendant address to the direct neighbor through
// which it is reached. Invariant: NextHop is always a direct radio
// neighbor of the owning node; multiple destinations may share a NextHop.
type RoutingEntry struct {
	Destination NodeIdentity
	NextHop     NodeIdentity
	Role        RoleType
	LastHeard   time.Time
}

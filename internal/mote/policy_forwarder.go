package mote

// forwarderPolicy implements spec §4.6 FORWARDER: no application-layer
// behavior of its own, it only ever relays. Eligibility (root-only
// parent) lives in eligibleParentRole, not here, since it is consulted
// before a Policy even exists for a candidate.
type forwarderPolicy struct{ basePolicy }

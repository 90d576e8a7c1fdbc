package mote

import (
	"DodagMesh/internal/codec"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/logger"
)

// maintTargetRole is the actuator class a maintenance round probes.
// Spec §8 S6 only ever names "a known actuator D" without fixing its
// role; this implementation fixes it at ACTUATOR_SPRINKLER, the role
// spec §4.6 also uses as the WATER command's target, since nothing in
// the spec distinguishes the two actuator classes for maintenance
// purposes.
const maintTargetRole = domain.RoleActuatorSprinkler

// maintRoundSize is the number of MAINT probes a mobile terminal sends
// back-to-back on attaching (redundancy against drops, spec §4.6).
const maintRoundSize = 3

// mobilePolicy implements spec §4.6 MOBILE_OPERATOR: on attaching to a
// new parent it fires a burst of MAINT probes and counts the matching
// MAINTACKs, declaring success once all three are accounted for. Per the
// open-question decision recorded in SPEC_FULL.md §13.4, the beacon timer
// here is re-armed exactly like every other role's — the engine never
// special-cases MOBILE_OPERATOR's trickle timer.
type mobilePolicy struct{ basePolicy }

func (mobilePolicy) ArmApplicationTimers(m *Mote) {
	m.maintCount = 0
	for i := 0; i < maintRoundSize; i++ {
		m.forwardByRoleFirstMatch(maintTargetRole,
			codec.Encode(codec.Message{Type: codec.MsgMaint, Src: m.self, Role: maintTargetRole}))
	}
}

func (mobilePolicy) DeliverMaintAck(m *Mote, responder domain.NodeIdentity) {
	m.maintCount++
	m.log.Info("maintenance ack received",
		logger.FIdentity("responder", responder), logger.F("count", m.maintCount))
	if m.maintCount >= maintRoundSize {
		m.log.Info("maintenance round complete", logger.F("expected", maintRoundSize))
	}
}

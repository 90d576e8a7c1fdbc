package mote

import (
	"DodagMesh/internal/codec"
	"DodagMesh/internal/domain"
)

// actuatorPolicy implements spec §4.6 ACTUATOR_*: perform the local
// action (no GPIO collaborator lives in this module, see §6) and
// acknowledge upward. Both actuator roles share the same reaction; only
// the role tag carried on the ACK differs, and that comes from self.role.
type actuatorPolicy struct{ basePolicy }

func (actuatorPolicy) HandleTurnOnLocal(m *Mote, requester domain.NodeIdentity) {
	m.forwardToParent(codec.Encode(codec.Message{Type: codec.MsgACK, Role: m.role}))
}

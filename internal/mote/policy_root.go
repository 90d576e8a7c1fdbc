package mote

import (
	"fmt"

	"DodagMesh/internal/codec"
	"DodagMesh/internal/domain"
)

// rootPolicy implements spec §4.6 ROOT: never solicits, forwards nothing
// upward (there is no upward), and bridges application traffic to the
// supervisory serial host.
type rootPolicy struct{ basePolicy }

func (rootPolicy) DeliverACK(m *Mote, role domain.RoleType) {
	m.hostf("Ack received from:\n%d", role)
}

func (rootPolicy) DeliverLight(m *Mote, level uint16) {
	m.hostf("LIGHTSENSOR%d\nLIGHTSENSOR", level)
}

func (rootPolicy) DeliverMaintAck(*Mote, domain.NodeIdentity) {
	// MAINTACKs destined elsewhere pass through ROOT's routing table
	// lookup in dispatch.go; ROOT itself is never a maintenance target.
}

// HandleHostCommand recognizes the two textual commands of spec §6 and
// turns them into a TURNON broadcast-by-role fan-out.
func (rootPolicy) HandleHostCommand(m *Mote, line string) {
	var targetRole domain.RoleType
	switch line {
	case "WATER":
		targetRole = domain.RoleActuatorSprinkler
	case "LIGHTBULBS":
		targetRole = domain.RoleActuatorLight
	default:
		return
	}
	bytes := codec.Encode(codec.Message{Type: codec.MsgTurnOn, TargetRole: targetRole})
	m.fanOutByRole(targetRole, bytes)
}

func (m *Mote) hostf(format string, args ...any) {
	if m.serialOut == nil {
		return
	}
	m.serialOut(fmt.Sprintf(format, args...))
}

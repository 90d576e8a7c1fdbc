package mote

import (
	"time"

	"DodagMesh/internal/domain"
	"DodagMesh/internal/randsrc"
)

// Policy is the per-role specialization of spec §4.6: the shared engine
// calls into it at the points where roles diverge, rather than branching
// on role throughout the dispatcher (spec §9: "Role specialization by
// separate binaries -> one engine with a role-parameterized policy
// object").
type Policy interface {
	// ArmApplicationTimers starts whichever application-level activity
	// this role has (periodic sensing for LIGHT_SENSOR; the one-shot MAINT
	// burst for MOBILE_OPERATOR; none for the others) once the mote first
	// attaches.
	ArmApplicationTimers(m *Mote)

	// OnDetach runs any role-specific cleanup before the engine clears
	// DODAG state.
	OnDetach(m *Mote)

	// OnSensingTick fires periodically for LIGHT_SENSOR; a no-op for
	// every other role.
	OnSensingTick(m *Mote)

	// HandleTurnOnLocal runs when a TURNON addressed to this mote's own
	// role arrives: actuators perform the action and ACK upward; the
	// light sensor samples immediately and reports.
	HandleTurnOnLocal(m *Mote, requester domain.NodeIdentity)

	// DeliverACK is called only at ROOT, when an ACK reaches the top of
	// the DODAG.
	DeliverACK(m *Mote, role domain.RoleType)

	// DeliverLight is called only at ROOT, when a LIGHT reading reaches
	// the top of the DODAG.
	DeliverLight(m *Mote, level uint16)

	// DeliverMaintAck is called when a MAINTACK addressed to this mote
	// arrives (only the MOBILE_OPERATOR whose address matches acts on
	// it).
	DeliverMaintAck(m *Mote, responder domain.NodeIdentity)

	// HandleHostCommand is called only at ROOT, for each line read from
	// the serial host.
	HandleHostCommand(m *Mote, line string)
}

// basePolicy implements every Policy method as a no-op, so each concrete
// role only overrides what it actually specializes.
type basePolicy struct{}

func (basePolicy) ArmApplicationTimers(*Mote)                   {}
func (basePolicy) OnDetach(*Mote)                               {}
func (basePolicy) OnSensingTick(*Mote)                          {}
func (basePolicy) HandleTurnOnLocal(*Mote, domain.NodeIdentity) {}
func (basePolicy) DeliverACK(*Mote, domain.RoleType)            {}
func (basePolicy) DeliverLight(*Mote, uint16)                   {}
func (basePolicy) DeliverMaintAck(*Mote, domain.NodeIdentity)   {}
func (basePolicy) HandleHostCommand(*Mote, string)              {}

// policyFor returns the Policy implementation for role.
func policyFor(role domain.RoleType) Policy {
	switch role {
	case domain.RoleRoot:
		return &rootPolicy{}
	case domain.RoleForwarder:
		return &forwarderPolicy{}
	case domain.RoleLightSensor:
		return &sensorPolicy{}
	case domain.RoleActuatorSprinkler, domain.RoleActuatorLight:
		return &actuatorPolicy{}
	case domain.RoleMobileOperator:
		return &mobilePolicy{}
	default:
		return &forwarderPolicy{}
	}
}

func (m *Mote) sensingJitter() time.Duration {
	spread := m.cfg.Sensing.JitterSeconds
	signed := randsrc.JitterSeconds(m.rng, spread)
	return time.Duration(signed) * time.Second
}

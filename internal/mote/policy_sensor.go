package mote

import (
	"DodagMesh/internal/codec"
	"DodagMesh/internal/domain"
)

// sensorPolicy implements spec §4.6 LIGHT_SENSOR: periodic sampling once
// attached, plus an on-demand sample when a TURNON addressed to its role
// arrives.
type sensorPolicy struct{ basePolicy }

func (sensorPolicy) ArmApplicationTimers(m *Mote) {
	m.armSensing()
}

func (sensorPolicy) OnDetach(m *Mote) {
	// the caller cancels the sensing timer (cancelApplicationTimers) right
	// after this returns; nothing further to do.
}

func (sensorPolicy) OnSensingTick(m *Mote) {
	m.emitLight()
}

func (sensorPolicy) HandleTurnOnLocal(m *Mote, requester domain.NodeIdentity) {
	m.emitLight()
}

// emitLight samples the ambient level and reports it upward. Sampling
// itself has no external collaborator in this module (spec §6 lists only
// LED/GPIO, serial host, clock, random and link as externals) so a
// pseudo-random reading in a plausible lux range stands in for the
// physical sensor read.
func (m *Mote) emitLight() {
	level := uint16(60 + m.rng.IntN(120))
	m.forwardToParent(codec.Encode(codec.Message{Type: codec.MsgLight, Level: level}))
}

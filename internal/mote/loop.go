package mote

import (
	"context"

	"DodagMesh/internal/domain"
)

// Run is the single event loop of spec §5: it is driven exclusively by
// frame arrivals and timer expiries delivered on channels, so MoteState
// is only ever touched from this goroutine. It returns when ctx is
// cancelled.
func (m *Mote) Run(ctx context.Context) {
	defer close(m.done)

	if m.role != domain.RoleRoot {
		m.sendDIS()
	}
	m.armBeacon()

	for {
		select {
		case <-ctx.Done():
			return
		case f := <-m.frames:
			m.handleFrame(ctx, f)
		case tk := <-m.ticks:
			m.handleTick(tk)
		case line := <-m.hostLines:
			m.policy.HandleHostCommand(m, line)
		}
	}
}

// HandleHostLine feeds one line read from the serial host (ROOT only)
// into the loop. Safe to call from another goroutine; it is serialized
// through the loop's own host-line channel, read by the same select as
// frames and ticks.
func (m *Mote) HandleHostLine(line string) {
	select {
	case m.hostLines <- line:
	case <-m.done:
	}
}

func (m *Mote) handleTick(kind tickKind) {
	switch kind {
	case tickBeacon:
		m.fireBeacon()
	case tickDAO:
		m.fireDAO()
	case tickParentLoss:
		m.fireParentLoss()
	case tickChildrenEvict:
		m.fireChildrenEvict()
	case tickSensing:
		m.policy.OnSensingTick(m)
		m.armSensing()
	}
}

// fireBeacon implements the trickle timer's interval-elapsed behavior
// (spec §4.1): if the redundancy constant has not been satisfied by
// overheard consistent traffic, emit; either way, double the interval
// and reset the counter, then schedule the next fire.
func (m *Mote) fireBeacon() {
	if !m.inDodag {
		m.sendDIS()
	} else if m.trickle.ShouldFire() {
		m.sendDIO()
	}
	m.trickle.Expire()
	m.armBeacon()
}

// fireDAO re-advertises this mote's own destination periodically
// (SPEC_FULL §12.3 DAO_PERIOD), refreshing ancestors' routing state even
// absent a topology change.
func (m *Mote) fireDAO() {
	if m.inDodag && m.role != domain.RoleRoot {
		m.sendDAO()
	}
	m.armDAO()
}

// fireParentLoss implements spec §4.2's parent-loss detector: no DIO
// heard from the current parent within TIMEOUT_PARENT triggers a detach
// and resumes DIS-based re-solicitation.
func (m *Mote) fireParentLoss() {
	m.policy.OnDetach(m)
	m.Detach()
	m.cancelApplicationTimers()
	m.trickle.Reset()
	m.armBeacon()
}

func (m *Mote) fireChildrenEvict() {
	m.rt.EvictStale(m.clk.Now(), m.cfg.Timeouts.ChildrenTimeout())
	m.armChildrenEvict()
}

package mote

import "DodagMesh/internal/clock"

// tickKind identifies which of the mote's periodic activities fired,
// turning callback-heavy timer logic into the event enum spec §9
// recommends ("Tick(kind) ... dispatched by a single loop").
type tickKind int

const (
	tickBeacon tickKind = iota
	tickDAO
	tickParentLoss
	tickChildrenEvict
	tickSensing
)

// timerSet holds the one outstanding clock.Timer per activity, so each
// can be individually cancelled and re-armed (spec §5 cancellation
// model).
type timerSet struct {
	beacon, dao, parentLoss, childrenEvict, sensing clock.Timer
}

func (m *Mote) post(kind tickKind) {
	select {
	case m.ticks <- kind:
	case <-m.done:
	}
}

func cancel(t clock.Timer) {
	if t != nil {
		t.Stop()
	}
}

// armBeacon (re)arms the trickle-driven beacon timer using the current
// interval's next fire delay.
func (m *Mote) armBeacon() {
	cancel(m.timers.beacon)
	d := m.trickle.NextFireDelay()
	m.timers.beacon = m.clk.AfterFunc(d, func() { m.post(tickBeacon) })
}

func (m *Mote) armDAO() {
	cancel(m.timers.dao)
	m.timers.dao = m.clk.AfterFunc(m.cfg.Timeouts.DAOPeriod(), func() { m.post(tickDAO) })
}

func (m *Mote) armParentLoss() {
	cancel(m.timers.parentLoss)
	m.timers.parentLoss = m.clk.AfterFunc(m.cfg.Timeouts.ParentTimeout(), func() { m.post(tickParentLoss) })
}

func (m *Mote) armChildrenEvict() {
	cancel(m.timers.childrenEvict)
	m.timers.childrenEvict = m.clk.AfterFunc(m.cfg.Timeouts.ChildrenTimeout(), func() { m.post(tickChildrenEvict) })
}

func (m *Mote) armSensing() {
	cancel(m.timers.sensing)
	d := m.cfg.Sensing.Period() + m.sensingJitter()
	m.timers.sensing = m.clk.AfterFunc(d, func() { m.post(tickSensing) })
}

func (m *Mote) cancelApplicationTimers() {
	cancel(m.timers.dao)
	cancel(m.timers.parentLoss)
	cancel(m.timers.childrenEvict)
	cancel(m.timers.sensing)
	m.timers.dao = nil
	m.timers.parentLoss = nil
	m.timers.childrenEvict = nil
	m.timers.sensing = nil
}

// armFullTimerSet starts the complete timer set on first successful
// attachment (spec §4.5.1, DIO-from-new-neighbor handling).
func (m *Mote) armFullTimerSet() {
	m.armDAO()
	m.armParentLoss()
	m.armChildrenEvict()
	m.policy.ArmApplicationTimers(m)
}

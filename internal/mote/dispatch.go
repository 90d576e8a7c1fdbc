package mote

import (
	"context"

	"DodagMesh/internal/codec"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/link"
	"DodagMesh/internal/logger"
	"DodagMesh/internal/routingtable"
	"DodagMesh/internal/telemetry/messagetrace"
)

// handleFrame is the single input callback of spec §4.5: it decodes the
// frame and dispatches by message type. Decode failures map directly to
// the InvalidFrame / UnknownMessageType error kinds of spec §7: logged
// and dropped, never propagated. ctx carries no deadline — the engine
// never blocks on dispatch — only the trace span handleFrame opens to
// let a single message's handling show up as one unit in a trace.
func (m *Mote) handleFrame(ctx context.Context, f link.Frame) {
	msg, err := codec.Decode(f.Bytes)
	if err != nil {
		m.log.Warn("drop frame", logger.FIdentity("src", f.Src), logger.F("error", err.Error()))
		return
	}

	_, span := messagetrace.StartDispatch(ctx, m.self, f.Src, msg.Type)
	defer span.End()

	switch msg.Type {
	case codec.MsgDIS:
		m.handleDIS()
	case codec.MsgDIO:
		m.handleDIO(f, msg)
	case codec.MsgDAO:
		m.handleDAO(f, msg)
	case codec.MsgTurnOn:
		m.handleTurnOn(f, msg)
	case codec.MsgACK:
		m.handleACK(f, msg)
	case codec.MsgLight:
		m.handleLight(f, msg)
	case codec.MsgMaint:
		m.handleMaint(f, msg)
	case codec.MsgMaintAck:
		m.handleMaintAck(f, msg)
	}
}

// handleDIS implements spec §4.5.1: a node answers a DIS with a DIO only if
// it is itself attached (or is the root, which is always "attached").
func (m *Mote) handleDIS() {
	if m.inDodag {
		m.sendDIO()
	}
}

// handleDIO implements spec §4.5.1's two branches: advertisements from
// the current parent refresh liveness and may change self's own rank;
// advertisements from any other neighbor are evaluated as a candidate
// parent.
func (m *Mote) handleDIO(f link.Frame, msg codec.Message) {
	rss := m.link.RSSIOfLast()

	if m.parent != nil && f.Src == m.parent.Addr {
		if msg.Rank == domain.InfiniteRank {
			m.policy.OnDetach(m)
			m.Detach()
			m.cancelApplicationTimers()
			m.armBeacon()
			return
		}
		m.armParentLoss()
		if m.UpdateParent(msg.Rank, rss, msg.Role) {
			m.sendDIO()
			m.trickle.Reset()
			m.armBeacon()
		} else {
			m.trickle.Observe()
		}
		return
	}

	candidate := domain.ParentInfo{Addr: f.Src, Rank: msg.Rank, RSS: rss, Role: msg.Role}
	switch m.ChooseParent(candidate) {
	case ChooseNew:
		m.trickle.Reset()
		m.armBeacon()
		m.sendDAO()
		m.armFullTimerSet()
	case ChooseChanged:
		m.sendDIO()
		m.sendDAO()
		m.trickle.Reset()
		m.armBeacon()
	}
}

// handleDAO implements spec §4.5.2: install/refresh the descendant route
// and, unless this node is the root (the top of the storing-mode chain),
// propagate it further upward. A fresh destination resets the trickle
// timer, since it represents topology growth.
func (m *Mote) handleDAO(f link.Frame, msg codec.Message) {
	res := m.rt.Put(msg.Src, msg.Role, f.Src, m.clk.Now())
	switch res {
	case routingtable.Inserted:
		m.trickle.Reset()
		m.armBeacon()
		if m.role != domain.RoleRoot {
			m.forwardToParent(f.Bytes)
		}
	case routingtable.Updated:
		if m.role != domain.RoleRoot {
			m.forwardToParent(f.Bytes)
		}
	case routingtable.Full:
		m.log.Warn("drop DAO: routing table full", logger.FIdentity("dest", msg.Src))
	}
}

// handleTurnOn implements spec §4.5.2's TURNON branch: a node whose own
// role matches the target acts locally; otherwise it fans the command
// out to every distinct next hop serving that role.
func (m *Mote) handleTurnOn(f link.Frame, msg codec.Message) {
	if m.role == msg.TargetRole {
		m.policy.HandleTurnOnLocal(m, f.Src)
		return
	}
	m.fanOutByRole(msg.TargetRole, f.Bytes)
}

// handleACK implements spec §4.5.2: delivered to the host at ROOT,
// otherwise forwarded upward.
func (m *Mote) handleACK(f link.Frame, msg codec.Message) {
	if m.role == domain.RoleRoot {
		m.policy.DeliverACK(m, msg.Role)
		return
	}
	m.forwardToParent(f.Bytes)
}

// handleLight implements spec §4.5.2: delivered to the host at ROOT,
// otherwise forwarded upward.
func (m *Mote) handleLight(f link.Frame, msg codec.Message) {
	if m.role == domain.RoleRoot {
		m.policy.DeliverLight(m, msg.Level)
		return
	}
	m.forwardToParent(f.Bytes)
}

// handleMaint implements spec §4.5.2: route towards a known actuator of
// the probed role, or answer locally if this mote is that actuator.
func (m *Mote) handleMaint(f link.Frame, msg codec.Message) {
	if m.role == msg.Role {
		m.send(msg.Src, codec.Message{Type: codec.MsgMaintAck, Dst: msg.Src})
		return
	}
	m.forwardByRoleFirstMatch(msg.Role, f.Bytes)
}

// handleMaintAck implements spec §4.5.2: route towards the probing
// mobile terminal by address, or consume it when this mote is that
// terminal.
func (m *Mote) handleMaintAck(f link.Frame, msg codec.Message) {
	if msg.Dst == m.self {
		m.policy.DeliverMaintAck(m, f.Src)
		return
	}
	if e, ok := m.rt.Get(msg.Dst); ok {
		m.link.Send(e.NextHop, f.Bytes)
		return
	}
	m.forwardToParent(f.Bytes)
}

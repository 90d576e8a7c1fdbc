package mote

import (
	"context"
	"testing"

	"DodagMesh/internal/codec"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/link"
)

func decodeSent(t *testing.T, fl *fakeLink, i int) codec.Message {
	t.Helper()
	if i >= len(fl.sent) {
		t.Fatalf("sent[%d] out of range (len=%d)", i, len(fl.sent))
	}
	msg, err := codec.Decode(fl.sent[i].bytes)
	if err != nil {
		t.Fatalf("decode sent[%d]: %v", i, err)
	}
	return msg
}

// TestScenarioS1Join reproduces spec §8 S1 literally: A is ROOT(addr=1),
// B is FORWARDER(addr=2). B solicits, A answers, B attaches and
// advertises itself upward; A's routing table gains the single entry.
func TestScenarioS1Join(t *testing.T) {
	a, aLink := newTestMote(t, addr(1), domain.RoleRoot)
	b, bLink := newTestMote(t, addr(2), domain.RoleForwarder)

	b.sendDIS() // B boots detached and solicits
	dis := decodeSent(t, bLink, 0)
	if dis.Type != codec.MsgDIS {
		t.Fatalf("B's first send = %v, want DIS", dis.Type)
	}

	a.handleFrame(context.Background(), link.Frame{Src: addr(2), Dst: domain.NullIdentity, Bytes: codec.Encode(dis)})
	dio := decodeSent(t, aLink, 0)
	if dio.Type != codec.MsgDIO || dio.Rank != 0 || dio.Role != domain.RoleRoot {
		t.Fatalf("A's reply = %+v, want DIO rank=0 role=ROOT", dio)
	}

	b.handleFrame(context.Background(), link.Frame{Src: addr(1), Dst: domain.NullIdentity, Bytes: codec.Encode(dio)})
	if !b.inDodag || b.rank != 1 {
		t.Fatalf("B after DIO: inDodag=%v rank=%v, want true/1", b.inDodag, b.rank)
	}
	dao := decodeSent(t, bLink, 1)
	if dao.Type != codec.MsgDAO || dao.Src != addr(2) || dao.Role != domain.RoleForwarder {
		t.Fatalf("B's DAO = %+v, want DAO src=2 role=FORWARDER", dao)
	}

	a.handleFrame(context.Background(), link.Frame{Src: addr(2), Dst: addr(1), Bytes: codec.Encode(dao)})
	entry, ok := a.rt.Get(addr(2))
	if !ok || entry.NextHop != addr(2) || entry.Role != domain.RoleForwarder {
		t.Fatalf("A's routing table entry = %+v (ok=%v), want nextHop=2 role=FORWARDER", entry, ok)
	}
}

// TestScenarioS3CommandFanOut reproduces spec §8 S3: a forwarder with two
// distinct actuator children of the requested role sends one TURNON per
// distinct next hop, and none to an actuator of the other role.
func TestScenarioS3CommandFanOut(t *testing.T) {
	b, bLink := newTestMote(t, addr(2), domain.RoleForwarder)

	now := b.clk.Now()
	b.rt.Put(addr(4), domain.RoleActuatorSprinkler, addr(4), now) // D, direct child
	b.rt.Put(addr(5), domain.RoleActuatorSprinkler, addr(7), now) // E, via a different next hop
	b.rt.Put(addr(6), domain.RoleActuatorLight, addr(6), now)     // F, wrong role

	turnOn := codec.Encode(codec.Message{Type: codec.MsgTurnOn, TargetRole: domain.RoleActuatorSprinkler})
	b.handleFrame(context.Background(), link.Frame{Src: addr(1), Dst: addr(2), Bytes: turnOn})

	if len(bLink.sent) != 2 {
		t.Fatalf("fan-out sent %d frames, want 2 (one per distinct next hop)", len(bLink.sent))
	}
	dests := map[domain.NodeIdentity]bool{}
	for _, s := range bLink.sent {
		dests[s.dest] = true
	}
	if !dests[addr(4)] || !dests[addr(7)] {
		t.Fatalf("fan-out targets = %v, want {4,7}", dests)
	}
	if dests[addr(6)] {
		t.Fatal("fan-out must not reach F's next hop (wrong role)")
	}
}

func TestActuatorHandlesTurnOnLocally(t *testing.T) {
	d, dLink := newTestMote(t, addr(4), domain.RoleActuatorSprinkler)
	d.ChooseParent(domain.ParentInfo{Addr: addr(2), Rank: 1, RSS: -50, Role: domain.RoleForwarder})
	dLink.sent = nil // start from an empty send log (ChooseParent itself sends nothing)

	turnOn := codec.Encode(codec.Message{Type: codec.MsgTurnOn, TargetRole: domain.RoleActuatorSprinkler})
	d.handleFrame(context.Background(), link.Frame{Src: addr(2), Dst: addr(4), Bytes: turnOn})

	ack := decodeSent(t, dLink, 0)
	if ack.Type != codec.MsgACK || ack.Role != domain.RoleActuatorSprinkler {
		t.Fatalf("actuator reply = %+v, want ACK role=ACTUATOR_SPRINKLER", ack)
	}
	if dLink.sent[0].dest != addr(2) {
		t.Fatalf("ACK sent to %v, want parent addr(2)", dLink.sent[0].dest)
	}
}

func TestRootDeliversACKAndLightToHost(t *testing.T) {
	a, _ := newTestMote(t, addr(1), domain.RoleRoot)
	var lines []string
	a.SetSerialOutput(func(line string) { lines = append(lines, line) })

	a.handleFrame(context.Background(), link.Frame{Src: addr(2), Dst: addr(1), Bytes: codec.Encode(codec.Message{Type: codec.MsgACK, Role: domain.RoleActuatorSprinkler})})
	a.handleFrame(context.Background(), link.Frame{Src: addr(2), Dst: addr(1), Bytes: codec.Encode(codec.Message{Type: codec.MsgLight, Level: 120})})

	if len(lines) != 2 {
		t.Fatalf("host lines = %v, want 2", lines)
	}
	if lines[0] != "Ack received from:\n3" {
		t.Fatalf("ACK line = %q, want %q", lines[0], "Ack received from:\n3")
	}
	if lines[1] != "LIGHTSENSOR120\nLIGHTSENSOR" {
		t.Fatalf("LIGHT line = %q", lines[1])
	}
}

func TestNonRootForwardsACKAndLightToParent(t *testing.T) {
	b, bLink := newTestMote(t, addr(2), domain.RoleForwarder)
	b.ChooseParent(domain.ParentInfo{Addr: addr(1), Rank: 0, RSS: -50, Role: domain.RoleRoot})
	bLink.sent = nil

	b.handleFrame(context.Background(), link.Frame{Src: addr(4), Dst: addr(2), Bytes: codec.Encode(codec.Message{Type: codec.MsgACK, Role: domain.RoleActuatorSprinkler})})
	if len(bLink.sent) != 1 || bLink.sent[0].dest != addr(1) {
		t.Fatalf("forwarded ACK = %+v, want one frame to parent addr(1)", bLink.sent)
	}

	b.handleFrame(context.Background(), link.Frame{Src: addr(3), Dst: addr(2), Bytes: codec.Encode(codec.Message{Type: codec.MsgLight, Level: 120})})
	if len(bLink.sent) != 2 || bLink.sent[1].dest != addr(1) {
		t.Fatalf("forwarded LIGHT = %+v, want a second frame to parent addr(1)", bLink.sent)
	}
}

func TestDAODropsWhenRoutingTableFull(t *testing.T) {
	b, bLink := newTestMote(t, addr(2), domain.RoleForwarder)
	b.ChooseParent(domain.ParentInfo{Addr: addr(1), Rank: 0, RSS: -50, Role: domain.RoleRoot})
	bLink.sent = nil

	cap := b.cfg.Radio.RoutingTableCap
	now := b.clk.Now()
	for i := 0; i < cap; i++ {
		b.rt.Put(addr(uint16(100+i)), domain.RoleLightSensor, addr(uint16(100+i)), now)
	}

	dao := codec.Encode(codec.Message{Type: codec.MsgDAO, Src: addr(999), Role: domain.RoleLightSensor})
	b.handleFrame(context.Background(), link.Frame{Src: addr(999), Dst: addr(2), Bytes: dao})

	if len(bLink.sent) != 0 {
		t.Fatalf("DAO at full capacity forwarded %d frames, want 0 (dropped)", len(bLink.sent))
	}
}

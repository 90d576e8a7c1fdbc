package simmedium

import (
	"testing"

	"DodagMesh/internal/domain"
	"DodagMesh/internal/link"
)

func TestBroadcastReachesOnlyLinkedNeighbors(t *testing.T) {
	m := NewMedium()
	a := domain.NodeIdentityFromUint16(1)
	b := domain.NodeIdentityFromUint16(2)
	c := domain.NodeIdentityFromUint16(3)

	epA := m.Join(a)
	epB := m.Join(b)
	epC := m.Join(c)
	m.SetLink(a, b, -40)
	// c is unlinked: out of range of a.

	var gotB, gotC []link.Frame
	epB.OnFrame(func(f link.Frame) { gotB = append(gotB, f) })
	epC.OnFrame(func(f link.Frame) { gotC = append(gotC, f) })

	epA.Send(domain.NullIdentity, []byte("hello"))

	if len(gotB) != 1 {
		t.Fatalf("gotB = %d frames, want 1", len(gotB))
	}
	if !gotB[0].Broadcast() {
		t.Fatal("frame should be flagged broadcast")
	}
	if len(gotC) != 0 {
		t.Fatalf("gotC = %d frames, want 0 (unlinked)", len(gotC))
	}
	if epB.RSSIOfLast() != -40 {
		t.Fatalf("RSSIOfLast() = %d, want -40", epB.RSSIOfLast())
	}
}

func TestUnicastToUnreachableDestinationIsDropped(t *testing.T) {
	m := NewMedium()
	a := domain.NodeIdentityFromUint16(1)
	c := domain.NodeIdentityFromUint16(3)
	epA := m.Join(a)
	epC := m.Join(c)

	var got bool
	epC.OnFrame(func(link.Frame) { got = true })

	epA.Send(c, []byte("x"))
	if got {
		t.Fatal("frame delivered across a nonexistent link")
	}
}

func TestRemoveLinkStopsDelivery(t *testing.T) {
	m := NewMedium()
	a := domain.NodeIdentityFromUint16(1)
	b := domain.NodeIdentityFromUint16(2)
	epA := m.Join(a)
	epB := m.Join(b)
	m.SetLink(a, b, -50)

	count := 0
	epB.OnFrame(func(link.Frame) { count++ })

	epA.Send(domain.NullIdentity, []byte("1"))
	m.RemoveLink(a, b)
	epA.Send(domain.NullIdentity, []byte("2"))

	if count != 1 {
		t.Fatalf("count = %d, want 1 (second send after link removal must not deliver)", count)
	}
}

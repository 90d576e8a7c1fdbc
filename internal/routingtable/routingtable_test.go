package routingtable

import (
	"testing"
	"time"

	"DodagMesh/internal/domain"
)

func addr(n uint16) domain.NodeIdentity { return domain.NodeIdentityFromUint16(n) }

func TestPutNewThenUpdate(t *testing.T) {
	rt := New(addr(1), 16)
	now := time.Now()

	if got := rt.Put(addr(2), domain.RoleForwarder, addr(2), now); got != Inserted {
		t.Fatalf("first Put() = %v, want Inserted", got)
	}
	if got := rt.Put(addr(2), domain.RoleForwarder, addr(2), now.Add(time.Second)); got != Updated {
		t.Fatalf("second Put() = %v, want Updated", got)
	}
	if rt.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", rt.Len())
	}
}

func TestPutRefusesSelfAsNextHop(t *testing.T) {
	self := addr(1)
	rt := New(self, 16)
	if got := rt.Put(addr(2), domain.RoleForwarder, self, time.Now()); got != Full {
		t.Fatalf("Put() with self as nextHop = %v, want Full (rejected)", got)
	}
	if rt.Len() != 0 {
		t.Fatal("entry with self as nextHop must not be stored")
	}
}

func TestPutFullCapacity(t *testing.T) {
	rt := New(addr(1), 16)
	now := time.Now()
	for i := uint16(2); i < 2+16; i++ {
		if got := rt.Put(addr(i), domain.RoleForwarder, addr(i), now); got != Inserted {
			t.Fatalf("Put(%d) = %v, want Inserted", i, got)
		}
	}
	if got := rt.Put(addr(999), domain.RoleForwarder, addr(999), now); got != Full {
		t.Fatalf("Put() at capacity = %v, want Full", got)
	}
}

func TestGetMiss(t *testing.T) {
	rt := New(addr(1), 16)
	if _, ok := rt.Get(addr(2)); ok {
		t.Fatal("Get() on empty table should miss")
	}
}

func TestIterateByRole(t *testing.T) {
	rt := New(addr(1), 16)
	now := time.Now()
	rt.Put(addr(4), domain.RoleActuatorSprinkler, addr(2), now)
	rt.Put(addr(5), domain.RoleActuatorSprinkler, addr(2), now)
	rt.Put(addr(6), domain.RoleActuatorLight, addr(3), now)

	var nextHops []domain.NodeIdentity
	rt.Iterate(domain.RoleActuatorSprinkler, func(e domain.RoutingEntry) bool {
		nextHops = append(nextHops, e.NextHop)
		return true
	})
	if len(nextHops) != 2 {
		t.Fatalf("Iterate() found %d entries, want 2", len(nextHops))
	}
}

func TestEvictStale(t *testing.T) {
	rt := New(addr(1), 16)
	start := time.Now()
	rt.Put(addr(2), domain.RoleForwarder, addr(2), start)

	if rt.EvictStale(start.Add(10*time.Second), 50*time.Second) {
		t.Fatal("EvictStale() removed an entry within the timeout")
	}
	if !rt.EvictStale(start.Add(51*time.Second), 50*time.Second) {
		t.Fatal("EvictStale() should have removed the stale entry")
	}
	if rt.Len() != 0 {
		t.Fatalf("Len() after eviction = %d, want 0", rt.Len())
	}
}

func TestClear(t *testing.T) {
	rt := New(addr(1), 16)
	rt.Put(addr(2), domain.RoleForwarder, addr(2), time.Now())
	rt.Clear()
	if rt.Len() != 0 {
		t.Fatalf("Len() after Clear() = %d, want 0", rt.Len())
	}
}

package domain

import "testing"

func TestNodeIdentityRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		addr uint16
	}{
		{"zero", 0},
		{"one", 1},
		{"max", 0xFFFF},
		{"mid", 0x1234},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NodeIdentityFromUint16(tt.addr)
			if got := id.Uint16(); got != tt.addr {
				t.Fatalf("Uint16() = %#x, want %#x", got, tt.addr)
			}
		})
	}
}

func TestNodeIdentityIsNull(t *testing.T) {
	if !NullIdentity.IsNull() {
		t.Fatal("NullIdentity.IsNull() = false, want true")
	}
	if NodeIdentityFromUint16(1).IsNull() {
		t.Fatal("non-zero identity reported as null")
	}
}

func TestNodeIdentityLess(t *testing.T) {
	a := NodeIdentityFromUint16(1)
	b := NodeIdentityFromUint16(2)
	if !a.Less(b) {
		t.Fatal("1 should be less than 2")
	}
	if b.Less(a) == false && a.Less(b) == false {
		t.Fatal("Less must be a strict total order")
	}
	if a.Less(a) {
		t.Fatal("Less must be irreflexive")
	}
}

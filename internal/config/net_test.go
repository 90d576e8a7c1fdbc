package config

import (
	"testing"

	"DodagMesh/internal/domain"
)

func TestParseIdentityRoundTrip(t *testing.T) {
	id, err := ParseIdentity("0004")
	if err != nil {
		t.Fatalf("ParseIdentity() error = %v", err)
	}
	if want := domain.NodeIdentityFromUint16(4); id != want {
		t.Fatalf("ParseIdentity(%q) = %v, want %v", "0004", id, want)
	}
}

func TestParseIdentityRejectsWrongWidth(t *testing.T) {
	if _, err := ParseIdentity("4"); err == nil {
		t.Fatal("expected error for short identity string")
	}
}

func TestParseRoleKnownNames(t *testing.T) {
	tests := map[string]domain.RoleType{
		"ROOT":               domain.RoleRoot,
		"FORWARDER":          domain.RoleForwarder,
		"LIGHT_SENSOR":       domain.RoleLightSensor,
		"ACTUATOR_SPRINKLER": domain.RoleActuatorSprinkler,
		"ACTUATOR_LIGHT":     domain.RoleActuatorLight,
		"MOBILE_OPERATOR":    domain.RoleMobileOperator,
	}
	for name, want := range tests {
		got, err := ParseRole(name)
		if err != nil {
			t.Fatalf("ParseRole(%q) error = %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	if _, err := ParseRole("ROUTER"); err == nil {
		t.Fatal("expected error for unknown role name")
	}
}

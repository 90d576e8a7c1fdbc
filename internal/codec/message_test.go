package codec

import (
	"testing"

	"DodagMesh/internal/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := domain.NodeIdentityFromUint16(7)
	dst := domain.NodeIdentityFromUint16(42)

	tests := []struct {
		name string
		msg  Message
	}{
		{"DIS", Message{Type: MsgDIS}},
		{"DIO", Message{Type: MsgDIO, Rank: 3, Role: domain.RoleForwarder}},
		{"DAO", Message{Type: MsgDAO, Src: src, Role: domain.RoleLightSensor}},
		{"TURNON", Message{Type: MsgTurnOn, TargetRole: domain.RoleActuatorSprinkler}},
		{"ACK", Message{Type: MsgACK, Role: domain.RoleActuatorLight}},
		{"LIGHT", Message{Type: MsgLight, Level: 120}},
		{"MAINT", Message{Type: MsgMaint, Src: src, Role: domain.RoleActuatorSprinkler}},
		{"MAINTACK", Message{Type: MsgMaintAck, Dst: dst}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Encode(tt.msg)
			got, err := Decode(frame)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.msg {
				t.Fatalf("round trip mismatch: got %+v, want %+v", got, tt.msg)
			}
		})
	}
}

func TestDecodeEmptyFrameIsInvalid(t *testing.T) {
	if _, err := Decode(nil); err != domain.ErrInvalidFrame {
		t.Fatalf("Decode(nil) error = %v, want ErrInvalidFrame", err)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	if _, err := Decode([]byte{200}); err != domain.ErrUnknownMessageType {
		t.Fatalf("Decode() error = %v, want ErrUnknownMessageType", err)
	}
}

func TestDecodeShortPayload(t *testing.T) {
	if _, err := Decode([]byte{byte(MsgDIO), 1}); err != domain.ErrInvalidFrame {
		t.Fatalf("Decode() error = %v, want ErrInvalidFrame", err)
	}
}

func TestACKTagIsSix(t *testing.T) {
	if MsgACK != 6 {
		t.Fatalf("MsgACK = %d, want 6 (spec open question 1)", MsgACK)
	}
}

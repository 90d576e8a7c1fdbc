// Package codec implements the fixed-layout typed message records of
// spec §4.4: every message begins with a 1-octet type tag from a closed
// set, followed by a fixed payload. Numeric fields are host-order on the
// wire, since every mote in this network shares architecture.
package codec

import (
	"encoding/binary"

	"DodagMesh/internal/domain"
)

// MsgType is the 1-octet type tag.
type MsgType uint8

const (
	MsgDIS      MsgType = 2
	MsgDIO      MsgType = 3
	MsgDAO      MsgType = 4
	MsgTurnOn   MsgType = 5
	MsgACK      MsgType = 6 // spec §9 open question 1: fixed at 6, not 10.
	MsgLight    MsgType = 7
	MsgMaint    MsgType = 8
	MsgMaintAck MsgType = 9
)

func (t MsgType) String() string {
	switch t {
	case MsgDIS:
		return "DIS"
	case MsgDIO:
		return "DIO"
	case MsgDAO:
		return "DAO"
	case MsgTurnOn:
		return "TURNON"
	case MsgACK:
		return "ACK"
	case MsgLight:
		return "LIGHT"
	case MsgMaint:
		return "MAINT"
	case MsgMaintAck:
		return "MAINTACK"
	default:
		return "UNKNOWN"
	}
}

// IsKnown reports whether t is one of the eight message types the protocol
// defines.
func (t MsgType) IsKnown() bool {
	switch t {
	case MsgDIS, MsgDIO, MsgDAO, MsgTurnOn, MsgACK, MsgLight, MsgMaint, MsgMaintAck:
		return true
	default:
		return false
	}
}

// Message is the decoded form of any frame on the wire: a type tag plus
// whichever of the following fields that type carries.
type Message struct {
	Type MsgType

	// DIO
	Rank domain.Rank
	Role domain.RoleType

	// DAO
	Src domain.NodeIdentity

	// TURNON
	TargetRole domain.RoleType

	// LIGHT
	Level uint16

	// MAINTACK
	Dst domain.NodeIdentity
}

// MAINT carries Src (the probing mote's address, so the responder knows
// where to address its MAINTACK) and reuses Role as the target actuator
// class being probed, letting intermediate nodes route it by role the
// same way they route TURNON, rather than requiring every node to already
// know the specific actuator's address.

// Encode serializes msg into a freshly allocated byte slice. The link
// facade hands this buffer to the radio layer synchronously, so a single
// reusable buffer per send is sufficient (spec §9 re-architecture note);
// callers that send frequently may reuse the returned slice's backing
// array via Encode's sibling EncodeInto.
func Encode(msg Message) []byte {
	buf := make([]byte, maxFrameLen)
	n := EncodeInto(buf, msg)
	return buf[:n]
}

const maxFrameLen = 1 + domain.IdentityLen + 2 // worst case: tag + id + u16

// EncodeInto writes msg into buf (which must be at least maxFrameLen
// bytes) and returns the number of bytes written.
func EncodeInto(buf []byte, msg Message) int {
	buf[0] = byte(msg.Type)
	switch msg.Type {
	case MsgDIS:
		return 1
	case MsgDIO:
		buf[1] = byte(msg.Rank)
		buf[2] = byte(msg.Role)
		return 3
	case MsgDAO:
		copy(buf[1:], msg.Src[:])
		buf[1+domain.IdentityLen] = byte(msg.Role)
		return 1 + domain.IdentityLen + 1
	case MsgTurnOn:
		buf[1] = byte(msg.TargetRole)
		return 2
	case MsgACK:
		buf[1] = byte(msg.Role)
		return 2
	case MsgLight:
		binary.LittleEndian.PutUint16(buf[1:], msg.Level)
		return 3
	case MsgMaint:
		copy(buf[1:], msg.Src[:])
		buf[1+domain.IdentityLen] = byte(msg.Role)
		return 1 + domain.IdentityLen + 1
	case MsgMaintAck:
		copy(buf[1:], msg.Dst[:])
		return 1 + domain.IdentityLen
	default:
		return 1
	}
}

// Decode parses a received frame. It returns domain.ErrInvalidFrame for a
// zero-length frame or a payload too short for its declared type, and
// domain.ErrUnknownMessageType for a tag outside the closed set.
func Decode(frame []byte) (Message, error) {
	if len(frame) < 1 {
		return Message{}, domain.ErrInvalidFrame
	}
	t := MsgType(frame[0])
	if !t.IsKnown() {
		return Message{}, domain.ErrUnknownMessageType
	}
	msg := Message{Type: t}
	switch t {
	case MsgDIS:
		return msg, nil
	case MsgDIO:
		if len(frame) < 3 {
			return Message{}, domain.ErrInvalidFrame
		}
		msg.Rank = domain.Rank(frame[1])
		msg.Role = domain.RoleType(frame[2])
		return msg, nil
	case MsgDAO:
		if len(frame) < 1+domain.IdentityLen+1 {
			return Message{}, domain.ErrInvalidFrame
		}
		copy(msg.Src[:], frame[1:1+domain.IdentityLen])
		msg.Role = domain.RoleType(frame[1+domain.IdentityLen])
		return msg, nil
	case MsgTurnOn:
		if len(frame) < 2 {
			return Message{}, domain.ErrInvalidFrame
		}
		msg.TargetRole = domain.RoleType(frame[1])
		return msg, nil
	case MsgACK:
		if len(frame) < 2 {
			return Message{}, domain.ErrInvalidFrame
		}
		msg.Role = domain.RoleType(frame[1])
		return msg, nil
	case MsgLight:
		if len(frame) < 3 {
			return Message{}, domain.ErrInvalidFrame
		}
		msg.Level = binary.LittleEndian.Uint16(frame[1:3])
		return msg, nil
	case MsgMaint:
		if len(frame) < 1+domain.IdentityLen+1 {
			return Message{}, domain.ErrInvalidFrame
		}
		copy(msg.Src[:], frame[1:1+domain.IdentityLen])
		msg.Role = domain.RoleType(frame[1+domain.IdentityLen])
		return msg, nil
	case MsgMaintAck:
		if len(frame) < 1+domain.IdentityLen {
			return Message{}, domain.ErrInvalidFrame
		}
		copy(msg.Dst[:], frame[1:1+domain.IdentityLen])
		return msg, nil
	default:
		return Message{}, domain.ErrUnknownMessageType
	}
}

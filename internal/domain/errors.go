package domain

import "errors"

// Error kinds from the dispatcher's error model (spec §7). None of these
// propagate to an external caller: the dispatcher logs and drops.
var (
	// ErrCapacityExceeded names the condition of a full routing table that
	// does not already hold the destination. RoutingTable.Put reports it as
	// routingtable.Full rather than returning this error.
	ErrCapacityExceeded = errors.New("routing table capacity exceeded")

	// ErrUnknownMessageType is returned by the codec for a type tag outside
	// the closed set.
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrNoNextHop indicates a message could not be forwarded because
	// neither a matching routing entry nor a parent exists.
	ErrNoNextHop = errors.New("no next hop available")

	// ErrInvalidFrame indicates a frame shorter than one octet, or whose
	// type tag decodes but whose payload is short for that type.
	ErrInvalidFrame = errors.New("invalid frame")
)

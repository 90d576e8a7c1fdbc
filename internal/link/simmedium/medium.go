// Package simmedium implements an in-memory broadcast medium standing in
// for the radio layer (spec §6), grounded on the kind of discrete radio
// model used by network simulators (e.g. OpenThread's ot-ns radiomodel):
// a shared medium with an explicit per-pair reachability/RSSI table,
// dispatching frames synchronously so that test scenarios (spec §8 S1-S6)
// are deterministic and require no real time or sockets.
package simmedium

import (
	"DodagMesh/internal/domain"
	"DodagMesh/internal/link"
)

// Medium is a shared broadcast/unicast transport connecting any number of
// simulated radio endpoints.
type Medium struct {
	nodes map[domain.NodeIdentity]*Endpoint
	// rss[a][b] is the RSSI node b would measure from a transmission by a.
	// Absence of an entry means a and b cannot hear each other.
	rss map[domain.NodeIdentity]map[domain.NodeIdentity]int8
}

// NewMedium returns an empty medium with no registered endpoints and no
// reachability links.
func NewMedium() *Medium {
	return &Medium{
		nodes: make(map[domain.NodeIdentity]*Endpoint),
		rss:   make(map[domain.NodeIdentity]map[domain.NodeIdentity]int8),
	}
}

// SetLink declares that a's transmissions reach b at the given RSSI, and
// symmetrically that b's transmissions reach a at the same RSSI. Radio
// links are modeled as symmetric, matching the simple link-quality model
// the underlying protocol assumes.
func (m *Medium) SetLink(a, b domain.NodeIdentity, rss int8) {
	m.addDirected(a, b, rss)
	m.addDirected(b, a, rss)
}

func (m *Medium) addDirected(from, to domain.NodeIdentity, rss int8) {
	if m.rss[from] == nil {
		m.rss[from] = make(map[domain.NodeIdentity]int8)
	}
	m.rss[from][to] = rss
}

// RemoveLink severs reachability between a and b in both directions, used
// to simulate a node going out of range or powering off.
func (m *Medium) RemoveLink(a, b domain.NodeIdentity) {
	delete(m.rss[a], b)
	delete(m.rss[b], a)
}

// Join registers a new endpoint for id and returns it. Calling Join twice
// for the same id replaces the previous endpoint.
func (m *Medium) Join(id domain.NodeIdentity) *Endpoint {
	ep := &Endpoint{medium: m, self: id}
	m.nodes[id] = ep
	return ep
}

// Endpoint is this medium's link.Link implementation for one registered
// node.
type Endpoint struct {
	medium   *Medium
	self     domain.NodeIdentity
	onFrame  func(link.Frame)
	lastRSSI int8
}

// Send broadcasts bytes to every neighbor reachable from self (dest ==
// domain.NullIdentity), or unicasts them to dest alone when dest is
// reachable, per the medium's reachability table.
func (e *Endpoint) Send(dest domain.NodeIdentity, bytes []byte) {
	neighbors := e.medium.rss[e.self]
	if dest.IsNull() {
		for to := range neighbors {
			e.deliver(to, domain.NullIdentity, bytes)
		}
		return
	}
	if _, reachable := neighbors[dest]; !reachable {
		return // best-effort: silently dropped, as spec §6 requires
	}
	e.deliver(dest, dest, bytes)
}

func (e *Endpoint) deliver(to, logicalDst domain.NodeIdentity, bytes []byte) {
	dst := e.medium.nodes[to]
	if dst == nil || dst.onFrame == nil {
		return
	}
	rss := e.medium.rss[e.self][to]
	dst.lastRSSI = rss
	// Copy so the receiver cannot observe mutation of the sender's buffer.
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	dst.onFrame(link.Frame{Src: e.self, Dst: logicalDst, Bytes: cp})
}

// OnFrame registers the callback invoked for every frame this endpoint
// receives.
func (e *Endpoint) OnFrame(fn func(link.Frame)) {
	e.onFrame = fn
}

// RSSIOfLast returns the RSSI of the most recently delivered frame.
func (e *Endpoint) RSSIOfLast() int8 {
	return e.lastRSSI
}

// Package simulate wires multiple motes together over an in-memory
// simmedium, for cmd/testbed and for exercising multi-hop topologies
// without real sockets or hardware.
package simulate

import (
	"context"
	"sync"

	"DodagMesh/internal/clock"
	"DodagMesh/internal/config"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/link/simmedium"
	"DodagMesh/internal/logger"
	"DodagMesh/internal/mote"
)

// NodeSpec describes one simulated mote to create.
type NodeSpec struct {
	Addr domain.NodeIdentity
	Role domain.RoleType
}

// LinkSpec declares a symmetric radio link between two nodes at a given
// RSSI, mirroring Medium.SetLink.
type LinkSpec struct {
	A, B domain.NodeIdentity
	RSS  int8
}

// Network is a running collection of simulated motes sharing one medium.
type Network struct {
	medium *simmedium.Medium
	motes  map[domain.NodeIdentity]*mote.Mote
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Build constructs a Network from the given nodes and links, wiring each
// mote to cfg and log. It does not start the event loops; call Run for
// that.
func Build(nodes []NodeSpec, links []LinkSpec, cfg *config.Config, log logger.Logger) *Network {
	medium := simmedium.NewMedium()
	net := &Network{medium: medium, motes: make(map[domain.NodeIdentity]*mote.Mote, len(nodes))}

	for _, n := range nodes {
		ep := medium.Join(n.Addr)
		m := mote.New(n.Addr, n.Role, ep, cfg,
			mote.WithLogger(log.Named(n.Addr.String())),
			mote.WithClock(clock.NewReal()))
		net.motes[n.Addr] = m
	}
	for _, l := range links {
		medium.SetLink(l.A, l.B, l.RSS)
	}
	return net
}

// Mote returns the mote registered at addr, or nil.
func (n *Network) Mote(addr domain.NodeIdentity) *mote.Mote {
	return n.motes[addr]
}

// Run starts every mote's event loop and returns once Stop is called.
func (n *Network) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	for _, m := range n.motes {
		n.wg.Add(1)
		go func(m *mote.Mote) {
			defer n.wg.Done()
			m.Run(ctx)
		}(m)
	}
}

// Stop cancels every mote's loop and waits for them to return.
func (n *Network) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
	n.wg.Wait()
}

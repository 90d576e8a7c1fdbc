// Package mote implements the DODAG engine, routing/forwarding
// dispatcher, and per-role policy of spec §4.2-§4.6 as a single
// event-driven state machine (spec §5, §9 re-architecture guidance:
// "Shared mutable globals -> a single Node value owned by the event
// loop"). A Mote owns its MoteState, RoutingTable and TrickleState and is
// only ever touched by the goroutine running its Run loop — every external
// input (received frames, timer expiries) is funneled through channels
// so no field needs a lock.
package mote

import (
	"golang.org/x/time/rate"

	"DodagMesh/internal/clock"
	"DodagMesh/internal/codec"
	"DodagMesh/internal/config"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/link"
	"DodagMesh/internal/logger"
	"DodagMesh/internal/randsrc"
	"DodagMesh/internal/routingtable"
	"DodagMesh/internal/trickle"
)

// Mote is one node's local state and behavior.
type Mote struct {
	log    logger.Logger
	clk    clock.Clock
	rng    randsrc.Source
	link   link.Link
	cfg    *config.Config
	self   domain.NodeIdentity
	role   domain.RoleType
	policy Policy

	inDodag bool
	rank    domain.Rank
	parent  *domain.ParentInfo
	rt      *routingtable.RoutingTable
	trickle *trickle.State

	timers timerSet

	disLimiter *rate.Limiter

	maintCount int

	serialOut func(line string)

	frames    chan link.Frame
	ticks     chan tickKind
	hostLines chan string
	done      chan struct{}
}

// SetSerialOutput registers the callback used to emit ASCII lines to the
// supervisory host (spec §6, ROOT only). Other roles never call it.
func (m *Mote) SetSerialOutput(fn func(line string)) {
	m.serialOut = fn
}

// Option configures a Mote at construction, mirroring the functional
// options used throughout this codebase's collaborators.
type Option func(*Mote)

func WithLogger(l logger.Logger) Option  { return func(m *Mote) { m.log = l } }
func WithClock(c clock.Clock) Option     { return func(m *Mote) { m.clk = c } }
func WithRandom(r randsrc.Source) Option { return func(m *Mote) { m.rng = r } }

// New constructs a Mote for self/role, wired to link for transport and
// cfg for tuning. The role determines both the DODAG eligibility rule
// and the Policy specialization (spec §4.6).
func New(self domain.NodeIdentity, role domain.RoleType, lnk link.Link, cfg *config.Config, opts ...Option) *Mote {
	m := &Mote{
		log:  &logger.NopLogger{},
		clk:  clock.NewReal(),
		rng:  randsrc.NewReal(),
		link: lnk,
		cfg:  cfg,
		self: self,
		role: role,
		rank: domain.InfiniteRank,
		rt:   routingtable.New(self, cfg.Radio.RoutingTableCap),

		frames:    make(chan link.Frame, 32),
		ticks:     make(chan tickKind, 8),
		hostLines: make(chan string, 4),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.trickle = trickle.New(cfg.Trickle.Imin(), cfg.Trickle.Imax, cfg.Trickle.K, m.rng)
	m.disLimiter = rate.NewLimiter(rate.Limit(float64(cfg.Radio.DISRateLimitPerMin)/60.0), 1)
	m.policy = policyFor(role)

	if role == domain.RoleRoot {
		m.inDodag = true
		m.rank = 0
	}

	m.link.OnFrame(func(f link.Frame) {
		select {
		case m.frames <- f:
		case <-m.done:
		}
	})

	return m
}

// Self returns this mote's own identity.
func (m *Mote) Self() domain.NodeIdentity { return m.self }

// Role returns this mote's role tag.
func (m *Mote) Role() domain.RoleType { return m.role }

// InDodag reports whether this mote currently has a path to the root.
func (m *Mote) InDodag() bool { return m.inDodag }

// Rank returns the current rank (domain.InfiniteRank when detached).
func (m *Mote) Rank() domain.Rank { return m.rank }

// Parent returns the current parent, or nil if detached.
func (m *Mote) Parent() *domain.ParentInfo { return m.parent }

// RoutingTable exposes the downward routing table, for tests and
// diagnostics.
func (m *Mote) RoutingTable() *routingtable.RoutingTable { return m.rt }

func (m *Mote) send(dest domain.NodeIdentity, msg codec.Message) {
	m.link.Send(dest, codec.Encode(msg))
}

// sendDIS solicits a DIO. It is rate-limited (spec §3 radio.disRateLimitPerMinute):
// a detached node re-solicits on every beacon timer expiry, and without a
// ceiling that devolves into a DIS storm as the interval collapses back to
// IMIN on every failed attach.
func (m *Mote) sendDIS() {
	if !m.disLimiter.Allow() {
		return
	}
	m.send(domain.NullIdentity, codec.Message{Type: codec.MsgDIS})
}

func (m *Mote) sendDIO() {
	m.send(domain.NullIdentity, codec.Message{Type: codec.MsgDIO, Rank: m.rank, Role: m.role})
}

func (m *Mote) sendDAO() {
	if m.parent == nil {
		return
	}
	m.send(m.parent.Addr, codec.Message{Type: codec.MsgDAO, Src: m.self, Role: m.role})
}

// forwardToParent re-emits bytes already on the wire towards the current
// parent, or drops them (ErrNoNextHop) when detached.
func (m *Mote) forwardToParent(bytes []byte) {
	if m.parent == nil {
		m.log.Warn("drop: no next hop", logger.F("reason", domain.ErrNoNextHop.Error()))
		return
	}
	m.link.Send(m.parent.Addr, bytes)
}

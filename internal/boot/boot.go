// Package boot holds the process bootstrap steps shared by every cmd/*
// role binary: load the embedded protocol tuning plus a per-node network
// topology file, stand up the configured logger, and wire a netlink.UDPLink
// from the topology's peer list. Each binary's main still owns its own
// flag parsing and shutdown sequencing; this only factors out the part
// that would otherwise be copy-pasted six times.
package boot

import (
	"fmt"

	"DodagMesh/internal/config"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/link/netlink"
	"DodagMesh/internal/logger"
	zapfactory "DodagMesh/internal/logger/zap"
)

// Node bundles everything a role main needs to construct its mote.Mote.
type Node struct {
	Cfg     *config.Config
	Net     *config.NetConfig
	Log     logger.Logger
	Self    domain.NodeIdentity
	Role    domain.RoleType
	Link    *netlink.UDPLink
	LogSync func() error
}

// Load reads the embedded mote.yaml plus the network topology file at
// netConfigPath, applies environment overrides, validates, builds the
// configured logger, opens the UDP socket and registers every configured
// peer.
func Load(netConfigPath string) (*Node, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load default config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	net, err := config.LoadNetConfig(netConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load network config %q: %w", netConfigPath, err)
	}

	self, err := config.ParseIdentity(net.Identity)
	if err != nil {
		return nil, fmt.Errorf("network config %q: %w", netConfigPath, err)
	}
	role, err := config.ParseRole(net.Role)
	if err != nil {
		return nil, fmt.Errorf("network config %q: %w", netConfigPath, err)
	}

	var lgr logger.Logger
	var sync func() error
	if cfg.Logger.Active {
		zapLog, err := zapfactory.New(cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("initialize logger: %w", err)
		}
		sync = zapLog.Sync
		lgr = zapfactory.NewZapAdapter(zapLog)
	} else {
		lgr = &logger.NopLogger{}
		sync = func() error { return nil }
	}
	lgr = lgr.Named(net.Role).With(logger.FIdentity("self", self))
	cfg.LogConfig(lgr)

	lnk, err := netlink.Listen(net.Listen, lgr.Named("netlink"))
	if err != nil {
		return nil, fmt.Errorf("listen on %q: %w", net.Listen, err)
	}
	for _, p := range net.Peers {
		peerID, err := config.ParseIdentity(p.Identity)
		if err != nil {
			_ = lnk.Close()
			return nil, fmt.Errorf("peer %+v: %w", p, err)
		}
		lnk.AddPeer(netlink.Peer{Identity: peerID, Addr: p.Addr, RSSI: p.RSSI})
	}

	return &Node{Cfg: cfg, Net: net, Log: lgr, Self: self, Role: role, Link: lnk, LogSync: sync}, nil
}

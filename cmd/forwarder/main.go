// Command forwarder runs a FORWARDER mote: relays the DODAG between the
// root and its descendants, eligible to attach only to ROOT (spec §4.2).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"DodagMesh/internal/boot"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/logger"
	"DodagMesh/internal/mote"
	"DodagMesh/internal/telemetry"
)

func main() {
	netConfigPath := flag.String("net-config", "config/forwarder.yaml", "path to this node's network topology file")
	flag.Parse()

	n, err := boot.Load(*netConfigPath)
	if err != nil {
		log.Fatalf("forwarder: %v", err)
	}
	defer func() { _ = n.LogSync() }()
	defer func() { _ = n.Link.Close() }()

	if n.Role != domain.RoleForwarder {
		n.Log.Error("net config role mismatch", logger.F("want", "FORWARDER"), logger.F("got", n.Net.Role))
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracer(n.Cfg.Telemetry, "dodagmesh-forwarder", n.Self)
	if err != nil {
		n.Log.Error("failed to initialize tracing", logger.F("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	m := mote.New(n.Self, domain.RoleForwarder, n.Link, n.Cfg,
		mote.WithLogger(n.Log.Named("mote")))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := n.Link.Serve(); err != nil {
			n.Log.Warn("netlink stopped", logger.F("err", err.Error()))
		}
	}()

	m.Run(ctx)
}

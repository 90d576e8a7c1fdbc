// Command root runs the ROOT mote: the single sink of the DODAG, bridging
// application traffic to a supervisory serial host (spec §6) instead of
// any application layer above it.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"DodagMesh/internal/boot"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/logger"
	"DodagMesh/internal/mote"
	"DodagMesh/internal/serialhost"
	"DodagMesh/internal/serialhost/wsmirror"
	"DodagMesh/internal/telemetry"
)

func main() {
	netConfigPath := flag.String("net-config", "config/root.yaml", "path to this node's network topology file")
	dashboardAddr := flag.String("dashboard-addr", "", "if set, serve a websocket mirror of the serial host on this address (e.g. :8090)")
	flag.Parse()

	n, err := boot.Load(*netConfigPath)
	if err != nil {
		log.Fatalf("root: %v", err)
	}
	defer func() { _ = n.LogSync() }()
	defer func() { _ = n.Link.Close() }()

	if n.Role != domain.RoleRoot {
		n.Log.Error("net config role mismatch", logger.F("want", "ROOT"), logger.F("got", n.Net.Role))
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracer(n.Cfg.Telemetry, "dodagmesh-root", n.Self)
	if err != nil {
		n.Log.Error("failed to initialize tracing", logger.F("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	m := mote.New(n.Self, domain.RoleRoot, n.Link, n.Cfg,
		mote.WithLogger(n.Log.Named("mote")))

	host := serialhost.New(n.Log.Named("serialhost"), m.HandleHostLine)
	m.SetSerialOutput(host.Print)

	if *dashboardAddr != "" {
		hub := wsmirror.NewHub(n.Log.Named("wsmirror"))
		host.AddSink(hub.Sink())
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.HandleWS)
		go func() {
			if err := http.ListenAndServe(*dashboardAddr, mux); err != nil {
				n.Log.Error("dashboard server stopped", logger.F("err", err.Error()))
			}
		}()
		n.Log.Info("dashboard mirror listening", logger.F("addr", *dashboardAddr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := n.Link.Serve(); err != nil {
			n.Log.Warn("netlink stopped", logger.F("err", err.Error()))
		}
	}()

	moteDone := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(moteDone)
	}()

	hostErr := make(chan error, 1)
	go func() { hostErr <- host.Run() }()

	select {
	case <-ctx.Done():
		n.Log.Info("shutdown signal received")
	case err := <-hostErr:
		n.Log.Info("serial host closed", logger.F("err", err))
		stop()
	}
	<-moteDone
	_ = host.Close()
}

// Command light-sensor runs a LIGHT_SENSOR mote: periodically samples
// and reports a light level upward (spec §4.6). Once attached it also
// advertises DIOs, so other leaf roles may choose it as their parent.
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
	netConfigPath := flag.String("net-config", "config/light-sensor.yaml", "path to this node's network topology file")
	flag.Parse()

	n, err := boot.Load(*netConfigPath)
	if err != nil {
		log.Fatalf("light-sensor: %v", err)
	}
	defer func() { _ = n.LogSync() }()
	defer func() { _ = n.Link.Close() }()

	if n.Role != domain.RoleLightSensor {
		n.Log.Error("net config role mismatch", logger.F("want", "LIGHT_SENSOR"), logger.F("got", n.Net.Role))
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracer(n.Cfg.Telemetry, "dodagmesh-light-sensor", n.Self)
	if err != nil {
		n.Log.Error("failed to initialize tracing", logger.F("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	m := mote.New(n.Self, domain.RoleLightSensor, n.Link, n.Cfg,
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

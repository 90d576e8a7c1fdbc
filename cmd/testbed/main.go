// Command testbed runs a six-node mesh entirely in-process over the
// simulated radio medium (internal/simulate, internal/link/simmedium),
// for exercising the protocol end-to-end without real sockets or
// hardware. It exposes the same WATER/LIGHTBULBS commands a real serial
// host would (spec §6), plus a couple of diagnostic extras, over an
// interactive prompt.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	"DodagMesh/internal/config"
	"DodagMesh/internal/domain"
	"DodagMesh/internal/logger"
	zapfactory "DodagMesh/internal/logger/zap"
	"DodagMesh/internal/simulate"
	"DodagMesh/internal/telemetry"
)

const (
	addrRoot              = 1
	addrForwarder         = 2
	addrLightSensor       = 3
	addrActuatorSprinkler = 4
	addrActuatorLight     = 6
	addrMobile            = 9
)

func defaultTopology() ([]simulate.NodeSpec, []simulate.LinkSpec) {
	a := domain.NodeIdentityFromUint16(addrRoot)
	b := domain.NodeIdentityFromUint16(addrForwarder)
	c := domain.NodeIdentityFromUint16(addrLightSensor)
	d := domain.NodeIdentityFromUint16(addrActuatorSprinkler)
	e := domain.NodeIdentityFromUint16(addrActuatorLight)
	m := domain.NodeIdentityFromUint16(addrMobile)

	nodes := []simulate.NodeSpec{
		{Addr: a, Role: domain.RoleRoot},
		{Addr: b, Role: domain.RoleForwarder},
		{Addr: c, Role: domain.RoleLightSensor},
		{Addr: d, Role: domain.RoleActuatorSprinkler},
		{Addr: e, Role: domain.RoleActuatorLight},
		{Addr: m, Role: domain.RoleMobileOperator},
	}
	links := []simulate.LinkSpec{
		{A: a, B: b, RSS: -45},
		{A: b, B: c, RSS: -50},
		{A: b, B: d, RSS: -55},
		{A: b, B: e, RSS: -55},
		{A: b, B: m, RSS: -60},
	}
	return nodes, links
}

func main() {
	netConfigPath := flag.String("net-config", "", "optional YAML file overriding mote.yaml's protocol tuning")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *netConfigPath != "" {
		cfg, err = config.LoadFile(*netConfigPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		log.Fatalf("testbed: load config: %v", err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("testbed: invalid configuration: %v", err)
	}

	var lgr logger.Logger
	if cfg.Logger.Active {
		zapLog, err := zapfactory.New(cfg.Logger)
		if err != nil {
			log.Fatalf("testbed: initialize logger: %v", err)
		}
		defer func() { _ = zapLog.Sync() }()
		lgr = zapfactory.NewZapAdapter(zapLog)
	} else {
		lgr = &logger.NopLogger{}
	}
	runID := uuid.NewString()
	lgr = lgr.Named("testbed").With(logger.F("run_id", runID))
	cfg.LogConfig(lgr)

	shutdownTracer, err := telemetry.InitTracer(cfg.Telemetry, "dodagmesh-testbed", domain.NodeIdentityFromUint16(0))
	if err != nil {
		log.Fatalf("testbed: initialize tracing: %v", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	nodes, links := defaultTopology()
	net := simulate.Build(nodes, links, cfg, lgr)

	root := net.Mote(domain.NodeIdentityFromUint16(addrRoot))
	var hostLines []string
	root.SetSerialOutput(func(line string) {
		hostLines = append(hostLines, line)
		fmt.Println(line)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	net.Run(ctx)

	prompt := liner.NewLiner()
	defer prompt.Close()
	prompt.SetCtrlCAborts(true)

	fmt.Println("testbed: six-node simulated mesh running (root=1 forwarder=2 lightSensor=3 actuatorSprinkler=4 actuatorLight=6 mobile=9)")
	fmt.Println("commands: WATER, LIGHTBULBS, STATUS, QUIT")

	for {
		line, err := prompt.Prompt("testbed> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				break
			}
			break
		}
		prompt.AppendHistory(line)
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch cmd {
		case "":
			continue
		case "QUIT", "EXIT":
			goto shutdown
		case "STATUS":
			printStatus(net, nodes)
		default:
			root.HandleHostLine(cmd)
		}
	}

shutdown:
	stop()
	net.Stop()
}

func printStatus(net *simulate.Network, nodes []simulate.NodeSpec) {
	for _, n := range nodes {
		m := net.Mote(n.Addr)
		status := "detached"
		if m.InDodag() {
			status = fmt.Sprintf("rank=%d", m.Rank())
			if p := m.Parent(); p != nil {
				status += fmt.Sprintf(" parent=%s", p.Addr)
			}
		}
		fmt.Printf("  %s (%s): %s\n", n.Addr, n.Role, status)
	}
}

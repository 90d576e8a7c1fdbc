package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"DodagMesh/internal/domain"
)

// PeerConfig names one neighbor reachable over the network transport:
// its protocol address and the fixed RSSI this node should report for
// frames arriving from it, standing in for a real radio's measured
// signal strength (netlink.Peer has no IP-network equivalent to derive
// one from).
type PeerConfig struct {
	Identity string `yaml:"identity"` // hex, e.g. "0002"
	Addr     string `yaml:"addr"`     // host:port
	RSSI     int8   `yaml:"rssi"`
}

// NetConfig describes one mote's place in a statically-addressed
// deployment: its own identity and role, the local socket to listen on,
// and the neighbors it may exchange frames with. This is the per-process
// counterpart to mote.yaml's protocol tuning, loaded separately so the
// same tuning file can be shared by every role binary while the topology
// differs per node.
type NetConfig struct {
	Identity string       `yaml:"identity"`
	Role     string       `yaml:"role"`
	Listen   string       `yaml:"listen"`
	Peers    []PeerConfig `yaml:"peers"`
}

// LoadNetConfig reads a NetConfig from an external YAML file (the
// top-level config/ directory holds one example per role).
func LoadNetConfig(path string) (*NetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var nc NetConfig
	if err := yaml.Unmarshal(data, &nc); err != nil {
		return nil, err
	}
	return &nc, nil
}

// ParseIdentity decodes a hex-encoded identity string ("0002") into a
// domain.NodeIdentity.
func ParseIdentity(hex string) (domain.NodeIdentity, error) {
	if len(hex) != domain.IdentityLen*2 {
		return domain.NodeIdentity{}, fmt.Errorf("identity %q must be %d hex digits", hex, domain.IdentityLen*2)
	}
	n, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return domain.NodeIdentity{}, fmt.Errorf("identity %q: %w", hex, err)
	}
	return domain.NodeIdentityFromUint16(uint16(n)), nil
}

// ParseRole maps a role's textual name (as used in NetConfig.Role) to its
// domain.RoleType tag.
func ParseRole(name string) (domain.RoleType, error) {
	switch name {
	case "ROOT":
		return domain.RoleRoot, nil
	case "FORWARDER":
		return domain.RoleForwarder, nil
	case "LIGHT_SENSOR":
		return domain.RoleLightSensor, nil
	case "ACTUATOR_SPRINKLER":
		return domain.RoleActuatorSprinkler, nil
	case "ACTUATOR_LIGHT":
		return domain.RoleActuatorLight, nil
	case "MOBILE_OPERATOR":
		return domain.RoleMobileOperator, nil
	default:
		return 0, fmt.Errorf("unknown role %q", name)
	}
}

package composer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Role names, in dependency order.
const (
	RoleZookeeper   = "zookeeper"
	RoleMesosMaster = "mesos-master"
	RoleMesosSlave  = "mesos-slave"
	RoleMarathon    = "marathon"
)

// Roles lists every role in the order their fragments are emitted.
var Roles = []string{RoleZookeeper, RoleMesosMaster, RoleMesosSlave, RoleMarathon}

// quoted is a scalar that always serializes double-quoted. Port mappings
// use it so a YAML 1.1 reader cannot take "5050:5050" for a number.
type quoted string

// MarshalYAML implements yaml.Marshaler.
func (q quoted) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: string(q)}, nil
}

// Service is one docker-compose service definition. Struct field order is
// the order the fields serialize in.
type Service struct {
	Image       string   `yaml:"image,omitempty"`
	Build       string   `yaml:"build,omitempty"`
	Restart     string   `yaml:"restart,omitempty"`
	Privileged  bool     `yaml:"privileged,omitempty"`
	DependsOn   []string `yaml:"depends_on,omitempty"`
	Environment []string `yaml:"environment,omitempty"`
	Entrypoint  []string `yaml:"entrypoint,omitempty"`
	Command     []string `yaml:"command,omitempty"`
	Ports       []quoted `yaml:"ports,omitempty"`
	Tmpfs       []string `yaml:"tmpfs,omitempty"`
	Volumes     []string `yaml:"volumes,omitempty"`
}

// Fragment is one named service entry in the assembled manifest.
type Fragment struct {
	Name    string
	Service Service
}

// FragmentName derives the unique service name for a replica: the role
// name followed by the 1-based replica index.
func FragmentName(role string, index int) string {
	return fmt.Sprintf("%s%d", role, index+1)
}

// Names returns the fragment names for every replica of a role.
func Names(role string, count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = FragmentName(role, i)
	}
	return names
}

func portMapping(host, container int) quoted {
	return quoted(fmt.Sprintf("%d:%d", host, container))
}

// imageRef joins an image name with its version tag; an unset version
// leaves the reference untouched.
func imageRef(image, version string) string {
	if version == "" {
		return image
	}
	return image + ":" + version
}

// stateMounts adds the log and work-dir bind mounts a Mesos process
// expects, honoring the mount feature flags. Paths are relative to the
// manifest so the engine resolves them inside the working directory.
func stateMounts(cfg *Config, volumes []string, role, name string) []string {
	if cfg.Bool("log_mount") {
		volumes = append(volumes, fmt.Sprintf("./log/%s/%s:/var/log/mesos", role, name))
	}
	if cfg.Bool("workdir_mount") {
		volumes = append(volumes, fmt.Sprintf("./var/%s/%s:/var/lib/mesos", role, name))
	}
	return volumes
}

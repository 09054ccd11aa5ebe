package composer

import (
	"fmt"
	"strings"
)

const mesosMasterPort = 5050

// respawnScript wraps a command in a crash-recovery loop. After every exit
// the loop sleeps a cool-down before respawning: 30 seconds, or whatever
// the sentinel file /tmp/respawn-delay holds. The restart policy alone
// would respawn immediately, which floods a broken cluster with restarts.
func respawnScript(command string, preSpawn ...string) string {
	var script strings.Builder
	script.WriteString("while true; do\n")
	for _, line := range preSpawn {
		script.WriteString("  " + line + "\n")
	}
	script.WriteString("  " + command + "\n")
	script.WriteString("  delay=30\n")
	script.WriteString("  if [ -f /tmp/respawn-delay ]; then delay=$(cat /tmp/respawn-delay); fi\n")
	script.WriteString("  echo \"process exited, respawning in ${delay}s\"\n")
	script.WriteString("  sleep \"$delay\"\n")
	script.WriteString("done")
	return script.String()
}

// MesosMasterFragment builds the manifest fragment for one master replica.
// Masters start after the whole ZooKeeper ensemble and advertise a quorum
// equal to the full master count.
func MesosMasterFragment(cfg *Config, index int) (Fragment, error) {
	name := FragmentName(RoleMesosMaster, index)
	command := strings.TrimSpace("mesos-master " + cfg.ExtraArgs("mesos_master_args", index))

	service := Service{
		Image:     imageRef(cfg.String("mesos_master_image"), cfg.String("mesos_version")),
		Restart:   "always",
		DependsOn: Names(RoleZookeeper, cfg.Count("zookeeper_nodes")),
		Environment: []string{
			"MESOS_ZK=" + zkConnect(cfg, "mesos"),
			fmt.Sprintf("MESOS_QUORUM=%d", cfg.Count("mesos_masters")),
			"MESOS_HOSTNAME=" + name,
			"MESOS_WORK_DIR=/var/lib/mesos",
			"MESOS_LOG_DIR=/var/log/mesos",
		},
		Entrypoint: []string{"bash", "-c", respawnScript(command)},
	}

	if port, ok := HostPort(cfg, "mesos_master_port", index); ok {
		service.Ports = append(service.Ports, portMapping(port, mesosMasterPort))
	}

	service.Volumes = stateMounts(cfg, service.Volumes, RoleMesosMaster, name)
	hacks, err := hackMountsFor(cfg, "mesos_master_hacks")
	if err != nil {
		return Fragment{}, err
	}
	service.Volumes = append(service.Volumes, hacks...)

	return Fragment{Name: name, Service: service}, nil
}

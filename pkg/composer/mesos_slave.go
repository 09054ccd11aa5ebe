package composer

import (
	"strings"
)

const (
	mesosSlavePort = 5051

	// a stale agent identity makes the binary refuse to start after a crash
	mesosAgentIDMarker = "/var/lib/mesos/meta/slaves/latest"
)

// resourceOverrides composes the MESOS_RESOURCES value from the resource
// keys that are actually set, in the fixed order cpus, gpus, mem, disk.
func resourceOverrides(cfg *Config) string {
	fields := []struct{ key, name string }{
		{"mesos_slave_cpus", "cpus"},
		{"mesos_slave_gpus", "gpus"},
		{"mesos_slave_mem", "mem"},
		{"mesos_slave_disk", "disk"},
	}
	var parts []string
	for _, field := range fields {
		if value := cfg.String(field.key); value != "" {
			parts = append(parts, field.name+":"+value)
		}
	}
	return strings.Join(parts, ";")
}

// MesosSlaveFragment builds the manifest fragment for one agent replica.
// Agents run privileged and always see the host container-engine socket,
// since the tasks they launch are containers themselves.
func MesosSlaveFragment(cfg *Config, index int) (Fragment, error) {
	name := FragmentName(RoleMesosSlave, index)
	command := strings.TrimSpace("mesos-slave " + cfg.ExtraArgs("mesos_slave_args", index))

	service := Service{
		Image:      imageRef(cfg.String("mesos_slave_image"), cfg.String("mesos_version")),
		Restart:    "always",
		Privileged: true,
		DependsOn:  Names(RoleMesosMaster, cfg.Count("mesos_masters")),
		Environment: []string{
			"MESOS_MASTER=" + zkConnect(cfg, "mesos"),
			"MESOS_HOSTNAME=" + name,
			"MESOS_WORK_DIR=/var/lib/mesos",
			"MESOS_LOG_DIR=/var/log/mesos",
		},
		Entrypoint: []string{"bash", "-c", respawnScript(command, "rm -f "+mesosAgentIDMarker)},
		Volumes:    []string{"/var/run/docker.sock:/var/run/docker.sock"},
	}

	if cfg.Bool("mesos_slave_docker") {
		service.Environment = append(service.Environment,
			"MESOS_CONTAINERIZERS=docker,mesos",
			"MESOS_ISOLATION=docker/runtime,filesystem/linux,cgroups/cpu,cgroups/mem",
		)
	} else {
		service.Environment = append(service.Environment,
			"MESOS_CONTAINERIZERS=mesos",
			"MESOS_LAUNCHER=posix",
		)
	}

	if resources := resourceOverrides(cfg); resources != "" {
		service.Environment = append(service.Environment, "MESOS_RESOURCES="+resources)
	}

	if port, ok := HostPort(cfg, "mesos_slave_port", index); ok {
		service.Ports = append(service.Ports, portMapping(port, mesosSlavePort))
	}

	service.Volumes = stateMounts(cfg, service.Volumes, RoleMesosSlave, name)
	hacks, err := hackMountsFor(cfg, "mesos_slave_hacks")
	if err != nil {
		return Fragment{}, err
	}
	service.Volumes = append(service.Volumes, hacks...)

	return Fragment{Name: name, Service: service}, nil
}

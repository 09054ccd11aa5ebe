package composer

import (
	"fmt"
	"strconv"

	shellwords "github.com/mattn/go-shellwords"
)

const (
	marathonHTTPPort  = 8080
	marathonDebugPort = 5005
	marathonJMXPort   = 9010
)

// MarathonFragment builds the manifest fragment for one scheduler replica.
// Schedulers start after the ensemble and all masters. When a build
// directory is configured the fragment requests an image build from that
// path instead of naming a tag.
func MarathonFragment(cfg *Config, index int) (Fragment, error) {
	name := FragmentName(RoleMarathon, index)
	service := Service{
		Restart: "always",
		DependsOn: append(
			Names(RoleZookeeper, cfg.Count("zookeeper_nodes")),
			Names(RoleMesosMaster, cfg.Count("mesos_masters"))...,
		),
		Environment: []string{
			"MARATHON_MASTER=" + zkConnect(cfg, "mesos"),
			"MARATHON_ZK=" + zkConnect(cfg, "marathon"),
		},
	}

	if buildDir := cfg.String("marathon_build_dir"); buildDir != "" {
		source, err := absPath(buildDir)
		if err != nil {
			return Fragment{}, err
		}
		service.Build = source
	} else {
		service.Image = imageRef(cfg.String("marathon_image"), cfg.String("marathon_version"))
	}

	if args := cfg.String("marathon_args"); args != "" {
		tokens, err := shellwords.Parse(args)
		if err != nil {
			return Fragment{}, fmt.Errorf("marathon_args: cannot tokenize %q: %v", args, err)
		}
		service.Command = append(service.Command, tokens...)
	}

	if port, ok := HostPort(cfg, "marathon_port", index); ok {
		service.Ports = append(service.Ports, portMapping(port, marathonHTTPPort))
	}

	if port, ok := HostPort(cfg, "marathon_debug_port", index); ok {
		service.Command = append(service.Command, "--jvm-debug", strconv.Itoa(marathonDebugPort))
		service.Ports = append(service.Ports, portMapping(port, marathonDebugPort))
	}

	if port, ok := HostPort(cfg, "marathon_jmx_port", index); ok {
		host := expandIndex(cfg.String("marathon_jmx_host"), index)
		service.Command = append(service.Command,
			"-Dcom.sun.management.jmxremote",
			fmt.Sprintf("-Dcom.sun.management.jmxremote.port=%d", marathonJMXPort),
			fmt.Sprintf("-Dcom.sun.management.jmxremote.rmi.port=%d", marathonJMXPort),
			"-Dcom.sun.management.jmxremote.local.only=false",
			"-Dcom.sun.management.jmxremote.authenticate=false",
			"-Djava.rmi.server.hostname="+host,
		)
		service.Ports = append(service.Ports, portMapping(port, marathonJMXPort))
	}

	hacks, err := hackMountsFor(cfg, "marathon_hacks")
	if err != nil {
		return Fragment{}, err
	}
	service.Volumes = append(service.Volumes, hacks...)

	return Fragment{Name: name, Service: service}, nil
}

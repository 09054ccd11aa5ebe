package composer

import (
	"fmt"
	"strings"
)

const (
	zookeeperClientPort = 2181
	zookeeperPeerPorts  = "2888:3888"
)

// zkConnect builds the connection string every Mesos and Marathon replica
// points at, e.g. zk://zookeeper1:2181,zookeeper2:2181/mesos.
func zkConnect(cfg *Config, chroot string) string {
	count := cfg.Count("zookeeper_nodes")
	hosts := make([]string, count)
	for i := range hosts {
		hosts[i] = fmt.Sprintf("%s:%d", FragmentName(RoleZookeeper, i), zookeeperClientPort)
	}
	return fmt.Sprintf("zk://%s/%s", strings.Join(hosts, ","), chroot)
}

// zooServers enumerates every ensemble member for the ZOO_SERVERS setting.
func zooServers(count int) string {
	servers := make([]string, count)
	for i := range servers {
		servers[i] = fmt.Sprintf("server.%d=%s:%s", i+1, FragmentName(RoleZookeeper, i), zookeeperPeerPorts)
	}
	return strings.Join(servers, " ")
}

// ZookeeperFragment builds the manifest fragment for one ensemble member.
// The member id is the 1-based replica index, and every member carries the
// full peer list.
func ZookeeperFragment(cfg *Config, index int) (Fragment, error) {
	name := FragmentName(RoleZookeeper, index)
	service := Service{
		Image:   imageRef(cfg.String("zookeeper_image"), cfg.String("zookeeper_version")),
		Restart: "always",
		Environment: []string{
			fmt.Sprintf("ZOO_MY_ID=%d", index+1),
			"ZOO_SERVERS=" + zooServers(cfg.Count("zookeeper_nodes")),
		},
	}

	if port, ok := HostPort(cfg, "zookeeper_port", index); ok {
		service.Ports = append(service.Ports, portMapping(port, zookeeperClientPort))
	}

	if cfg.Bool("zookeeper_ephemeral") {
		service.Tmpfs = []string{"/data", "/datalog"}
	} else if cfg.Bool("workdir_mount") {
		service.Volumes = append(service.Volumes,
			fmt.Sprintf("./var/%s/%s/data:/data", RoleZookeeper, name),
			fmt.Sprintf("./var/%s/%s/datalog:/datalog", RoleZookeeper, name),
		)
	}

	if folder := cfg.String("share_folder"); folder != "" {
		source, err := absPath(folder)
		if err != nil {
			return Fragment{}, err
		}
		service.Volumes = append(service.Volumes, source+":"+cfg.String("share_folder_target"))
	}

	hacks, err := hackMountsFor(cfg, "zookeeper_hacks")
	if err != nil {
		return Fragment{}, err
	}
	service.Volumes = append(service.Volumes, hacks...)

	return Fragment{Name: name, Service: service}, nil
}

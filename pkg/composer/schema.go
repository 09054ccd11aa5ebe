package composer

// Kind tells how a configuration value is interpreted.
type Kind int

// Value kinds for schema entries.
const (
	String Kind = iota
	Bool
)

// Entry describes one recognized configuration key: the kind of its value
// and its default. Keys without a default start unset.
type Entry struct {
	Kind       Kind
	Default    string
	HasDefault bool
}

func str(def string) Entry { return Entry{Kind: String, Default: def, HasDefault: true} }

func unset() Entry { return Entry{Kind: String} }

func boolean(def bool) Entry {
	value := ""
	if def {
		value = "true"
	}
	return Entry{Kind: Bool, Default: value, HasDefault: true}
}

// Schema maps every recognized configuration key to its entry. Keys not
// listed here pass through unchanged and are never coerced, which is how
// the per-replica argument overrides like mesos_master_args_0 travel.
var Schema = map[string]Entry{
	// global
	"docker_network":      unset(),
	"custom_services":     unset(),
	"share_folder":        unset(),
	"share_folder_target": str("/share"),
	"log_mount":           boolean(true),
	"workdir_mount":       boolean(true),

	// zookeeper
	"zookeeper_image":     str("zookeeper"),
	"zookeeper_version":   unset(),
	"zookeeper_nodes":     str("1"),
	"zookeeper_port":      unset(),
	"zookeeper_ephemeral": boolean(false),
	"zookeeper_hacks":     unset(),

	// mesos
	"mesos_master_image": str("mesosphere/mesos-master"),
	"mesos_slave_image":  str("mesosphere/mesos-slave"),
	"mesos_version":      unset(),
	"mesos_masters":      str("1"),
	"mesos_slaves":       str("1"),
	"mesos_master_port":  unset(),
	"mesos_slave_port":   unset(),
	"mesos_slave_cpus":   unset(),
	"mesos_slave_gpus":   unset(),
	"mesos_slave_mem":    unset(),
	"mesos_slave_disk":   unset(),
	"mesos_master_args":  unset(),
	"mesos_slave_args":   unset(),
	"mesos_slave_docker": boolean(false),
	"mesos_master_hacks": unset(),
	"mesos_slave_hacks":  unset(),

	// marathon
	"marathon_image":      str("mesosphere/marathon"),
	"marathon_version":    unset(),
	"marathon_nodes":      str("1"),
	"marathon_port":       unset(),
	"marathon_build_dir":  unset(),
	"marathon_args":       unset(),
	"marathon_debug_port": unset(),
	"marathon_jmx_port":   unset(),
	"marathon_jmx_host":   unset(),
	"marathon_hacks":      unset(),
}

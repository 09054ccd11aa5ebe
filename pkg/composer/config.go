package composer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// IndexPlaceholder is the literal token replaced by the 0-based replica
// index in extra-argument strings and the management host identity.
const IndexPlaceholder = "{{index}}"

var truthy = map[string]bool{"true": true, "yes": true, "1": true}

func parseBool(value string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(value))]
}

func expandIndex(value string, index int) string {
	return strings.Replace(value, IndexPlaceholder, strconv.Itoa(index), -1)
}

// Config is the resolved configuration: the schema defaults overlaid with
// the file contents and the explicit CLI overrides, in that order. It is
// immutable after Resolve returns.
type Config struct {
	strings map[string]string
	bools   map[string]bool
	extras  map[string]string
}

// Resolve reads the key=value file at path and merges it over the schema
// defaults, then applies the explicit overrides on top. Blank lines and
// #-prefixed lines are skipped; a remaining line without a = is a fatal
// configuration error.
func Resolve(path string, overrides map[string]string) (*Config, error) {
	cfg := &Config{
		strings: map[string]string{},
		bools:   map[string]bool{},
		extras:  map[string]string{},
	}
	for key, entry := range Schema {
		if entry.Kind == Bool {
			cfg.bools[key] = parseBool(entry.Default)
		} else if entry.HasDefault {
			cfg.strings[key] = entry.Default
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("configuration file '%s' not found", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%s:%d: malformed line %q, expected key = value", path, lineNo, line)
		}
		cfg.set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for key, value := range overrides {
		cfg.set(key, value)
	}

	return cfg, nil
}

func (c *Config) set(key, value string) {
	entry, known := Schema[key]
	switch {
	case known && entry.Kind == Bool:
		c.bools[key] = parseBool(value)
	case known:
		c.strings[key] = value
	default:
		c.extras[key] = value
	}
}

// String returns the value for a schema key, or "" when it is unset.
func (c *Config) String(key string) string {
	return c.strings[key]
}

// Bool returns the coerced value of a boolean schema key.
func (c *Config) Bool(key string) bool {
	return c.bools[key]
}

// Extra returns a pass-through key that is not part of the schema.
func (c *Config) Extra(key string) (string, bool) {
	value, ok := c.extras[key]
	return value, ok
}

// Count returns a replica count. Validate guarantees the value parses.
func (c *Config) Count(key string) int {
	n, _ := strconv.Atoi(c.strings[key])
	return n
}

// PortBase returns the configured base port for key. ok is false when the
// key is unset, meaning the role publishes no ports.
func (c *Config) PortBase(key string) (int, bool) {
	value := c.strings[key]
	if value == "" {
		return 0, false
	}
	port, _ := strconv.Atoi(value)
	return port, true
}

// ExtraArgs returns the extra-argument string for one replica: the
// per-index key <key>_<index> when present, the global key otherwise,
// with the index placeholder expanded either way.
func (c *Config) ExtraArgs(key string, index int) string {
	if value, ok := c.extras[fmt.Sprintf("%s_%d", key, index)]; ok {
		return expandIndex(value, index)
	}
	return expandIndex(c.strings[key], index)
}

var countKeys = []string{"zookeeper_nodes", "mesos_masters", "mesos_slaves", "marathon_nodes"}

var portKeys = []string{
	"zookeeper_port", "mesos_master_port", "mesos_slave_port",
	"marathon_port", "marathon_debug_port", "marathon_jmx_port",
}

// Validate enforces the cross-key invariants the fragment builders rely
// on: mandatory versions, numeric counts and ports, and an odd master
// count so the quorum can elect a leader.
func (c *Config) Validate() error {
	if c.String("mesos_version") == "" {
		return errors.New("mesos_version must be set")
	}
	if c.String("marathon_version") == "" {
		return errors.New("marathon_version must be set")
	}
	for _, key := range countKeys {
		n, err := strconv.Atoi(c.strings[key])
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive number, got %q", key, c.strings[key])
		}
	}
	if masters := c.Count("mesos_masters"); masters%2 == 0 {
		return fmt.Errorf("mesos_masters must be odd to form a quorum, got %d", masters)
	}
	for _, key := range portKeys {
		if value := c.strings[key]; value != "" {
			if _, err := strconv.Atoi(value); err != nil {
				return fmt.Errorf("%s must be a port number, got %q", key, value)
			}
		}
	}
	return nil
}

package composer

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the assembled orchestration document: every fragment in
// dependency order plus the optional network override and custom-services
// block.
type Manifest struct {
	fragments []Fragment
	network   string
	custom    string
}

// BuildManifest synthesizes all fragments from the resolved configuration.
// Synthesis is all-or-nothing: the first builder error aborts the run
// before anything is written.
func BuildManifest(cfg *Config) (*Manifest, error) {
	manifest := &Manifest{network: cfg.String("docker_network")}

	groups := []struct {
		count int
		build func(*Config, int) (Fragment, error)
	}{
		{cfg.Count("zookeeper_nodes"), ZookeeperFragment},
		{cfg.Count("mesos_masters"), MesosMasterFragment},
		{cfg.Count("mesos_slaves"), MesosSlaveFragment},
		{cfg.Count("marathon_nodes"), MarathonFragment},
	}
	for _, group := range groups {
		for i := 0; i < group.count; i++ {
			fragment, err := group.build(cfg, i)
			if err != nil {
				return nil, err
			}
			manifest.fragments = append(manifest.fragments, fragment)
		}
	}

	if path := cfg.String("custom_services"); path != "" {
		source, err := absPath(path)
		if err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("custom_services: %v", err)
		}
		manifest.custom = Reindent(string(raw), 2)
	}

	return manifest, nil
}

// Fragments exposes the fragments in emission order.
func (m *Manifest) Fragments() []Fragment {
	return m.fragments
}

// Serialize renders the document once. Fragments encode through a yaml
// node tree so the services mapping keeps dependency order instead of the
// alphabetical order a plain map would give.
func (m *Manifest) Serialize() (string, error) {
	services := &yaml.Node{Kind: yaml.MappingNode}
	for _, fragment := range m.fragments {
		var node yaml.Node
		if err := node.Encode(fragment.Service); err != nil {
			return "", err
		}
		services.Content = append(services.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: fragment.Name},
			&node,
		)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "version"},
		{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: "2"},
		{Kind: yaml.ScalarNode, Value: "services"},
		services,
	}}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}

	out := buf.String()
	if m.custom != "" {
		// custom entries are services too, so they must land inside the
		// services mapping, ahead of any further top-level stanza
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += strings.TrimRight(m.custom, "\n") + "\n"
	}
	if m.network != "" {
		out += networkStanza(m.network)
	}
	return out, nil
}

func networkStanza(name string) string {
	return fmt.Sprintf("networks:\n  default:\n    external:\n      name: %s\n", name)
}

// Write serializes the manifest into the working directory, replacing any
// previous version. Regeneration from the same configuration is
// byte-identical.
func (m *Manifest) Write(workdir Workdir) error {
	text, err := m.Serialize()
	if err != nil {
		return err
	}
	return os.WriteFile(workdir.ManifestPath(), []byte(text), 0644)
}

// Reindent normalizes a verbatim block so the minimum indentation over
// its non-empty lines becomes exactly width spaces, preserving relative
// structure. Blank lines come out empty.
func Reindent(block string, width int) string {
	lines := strings.Split(block, "\n")
	min := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if min < 0 || indent < min {
			min = indent
		}
	}
	if min < 0 {
		return block
	}
	prefix := strings.Repeat(" ", width)
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		out[i] = prefix + line[min:]
	}
	return strings.Join(out, "\n")
}

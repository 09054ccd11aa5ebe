package composer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magiconair/properties/assert"
)

func resolveString(t *testing.T, content string, overrides map[string]string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.cfg")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Resolve(path, overrides)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

const validConfig = `
# versions
mesos_version = 1.7.1
marathon_version = 1.8.222
`

func TestResolveDefaults(t *testing.T) {
	cfg := resolveString(t, validConfig, nil)

	assert.Equal(t, cfg.String("zookeeper_image"), "zookeeper")
	assert.Equal(t, cfg.String("share_folder_target"), "/share")
	assert.Equal(t, cfg.Count("mesos_masters"), 1)
	assert.Equal(t, cfg.Bool("log_mount"), true)
	assert.Equal(t, cfg.Bool("zookeeper_ephemeral"), false)
	assert.Equal(t, cfg.String("mesos_master_port"), "")
}

func TestResolveFileParsing(t *testing.T) {
	cfg := resolveString(t, `
# a comment
   # an indented comment

mesos_version = 1.7.1
marathon_version=1.8.222
mesos_master_args =   --registry=in_memory --ip=0.0.0.0
some_unknown = key=with=equals
`, nil)

	assert.Equal(t, cfg.String("mesos_version"), "1.7.1")
	assert.Equal(t, cfg.String("marathon_version"), "1.8.222")
	assert.Equal(t, cfg.String("mesos_master_args"), "--registry=in_memory --ip=0.0.0.0")

	value, ok := cfg.Extra("some_unknown")
	if !ok {
		t.Fatal("unknown key was not passed through")
	}
	assert.Equal(t, value, "key=with=equals")
}

func TestResolveMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cfg")
	if err := os.WriteFile(path, []byte("mesos_version = 1.7.1\nthis is not a pair\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve(path, nil)
	if err == nil {
		t.Fatal("expected an error for a line without =")
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.cfg"), nil); err == nil {
		t.Fatal("expected an error for a missing configuration file")
	}
}

func TestBooleanCoercion(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"yes", true},
		{"1", true},
		{"TRUE", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"anything", false},
	}
	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			cfg := resolveString(t, validConfig+"zookeeper_ephemeral = "+test.value+"\n", nil)
			assert.Equal(t, cfg.Bool("zookeeper_ephemeral"), test.want)
		})
	}
}

func TestOverridesWinAndCoerce(t *testing.T) {
	cfg := resolveString(t, validConfig+"mesos_masters = 3\nlog_mount = true\n", map[string]string{
		"mesos_masters": "5",
		"log_mount":     "0",
	})

	assert.Equal(t, cfg.Count("mesos_masters"), 5)
	assert.Equal(t, cfg.Bool("log_mount"), false)
}

func TestExtraArgsPerIndexOverride(t *testing.T) {
	cfg := resolveString(t, validConfig+`
mesos_master_args = --global-flag
mesos_master_args_1 = --replica {{index}}
`, nil)

	assert.Equal(t, cfg.ExtraArgs("mesos_master_args", 0), "--global-flag")
	assert.Equal(t, cfg.ExtraArgs("mesos_master_args", 1), "--replica 1")
	assert.Equal(t, cfg.ExtraArgs("mesos_master_args", 2), "--global-flag")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"ok", validConfig, ""},
		{"missing mesos version", "marathon_version = 1.8.222\n", "mesos_version"},
		{"missing marathon version", "mesos_version = 1.7.1\n", "marathon_version"},
		{"even masters", validConfig + "mesos_masters = 2\n", "odd"},
		{"bad count", validConfig + "zookeeper_nodes = many\n", "zookeeper_nodes"},
		{"zero count", validConfig + "mesos_slaves = 0\n", "mesos_slaves"},
		{"bad port", validConfig + "marathon_port = http\n", "marathon_port"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := resolveString(t, test.content, nil)
			err := cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}

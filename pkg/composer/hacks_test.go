package composer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHackMounts(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, file := range []string{filepath.Join("a", "b.conf"), "c.conf"} {
		if err := os.WriteFile(filepath.Join(root, file), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	mounts, err := HackMounts(root)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{
		filepath.Join(root, "a", "b.conf") + ":/a/b.conf": true,
		filepath.Join(root, "c.conf") + ":/c.conf":        true,
	}
	if len(mounts) != len(want) {
		t.Fatalf("expected %d mounts, got %v", len(want), mounts)
	}
	for _, mount := range mounts {
		if !want[mount] {
			t.Errorf("unexpected mount %q", mount)
		}
	}
}

func TestHackMountsSkipsNonRegularFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "real.conf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "real.conf"), filepath.Join(root, "link.conf")); err != nil {
		t.Fatal(err)
	}

	mounts, err := HackMounts(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(mounts) != 1 {
		t.Fatalf("expected only the regular file, got %v", mounts)
	}
}

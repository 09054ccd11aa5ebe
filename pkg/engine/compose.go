package engine

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

// window the child gets to exit voluntarily after an interrupt
const stopGracePeriod = 10 * time.Second

// Compose drives the external docker-compose binary for one cluster
// working directory.
type Compose struct {
	Binary   string
	Dir      string
	Manifest string
}

// NewCompose returns a wrapper around the engine binary operating on the
// manifest inside dir.
func NewCompose(binary, dir, manifest string) *Compose {
	return &Compose{Binary: binary, Dir: dir, Manifest: manifest}
}

// Check verifies the engine binary is installed.
func (c *Compose) Check() error {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return fmt.Errorf("'%s' not found in PATH, please install it first", c.Binary)
	}
	return nil
}

func (c *Compose) command(args ...string) *exec.Cmd {
	cmd := exec.Command(c.Binary, append([]string{"-f", c.Manifest}, args...)...)
	cmd.Dir = c.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Run executes one engine invocation and returns its outcome, including
// *exec.ExitError when the engine itself exits non-zero.
func (c *Compose) Run(args ...string) error {
	return c.command(args...).Run()
}

// Kill hard-stops all containers of the cluster.
func (c *Compose) Kill() error {
	return c.Run("kill")
}

// Down removes the cluster's containers and networks.
func (c *Compose) Down() error {
	return c.Run("down")
}

// Teardown guarantees no orphaned containers remain. Errors are swallowed:
// the working directory or the containers may already be gone, and that is
// exactly the state teardown wants.
func (c *Compose) Teardown() {
	_ = c.Kill()
	_ = c.Down()
}

// Up starts the cluster and blocks until the engine exits. The one child
// handle is owned here and captured by the interrupt handling below, no
// package state involved. A first interrupt restores default signal
// handling (so a second one is not intercepted), forwards the interrupt to
// the child, waits out the grace period, kills if it elapses, and always
// finishes with a hard stop and a teardown.
func (c *Compose) Up(detach bool) error {
	args := []string{"up"}
	if detach {
		args = append(args, "-d")
	}
	cmd := c.command(args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-interrupts:
		signal.Reset(os.Interrupt, syscall.SIGTERM)
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(stopGracePeriod):
			_ = cmd.Process.Kill()
			<-done
		}
		c.Teardown()
		return nil
	}
}

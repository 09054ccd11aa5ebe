package cmd

import (
	"fmt"
	"os"
	"os/exec"
)

// FatalOnError is an helper function to print the error and exit non-zero
func FatalOnError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// exitWith terminates the process mirroring the engine's own exit code.
func exitWith(err error) {
	if err == nil {
		os.Exit(0)
	}
	if exit, ok := err.(*exec.ExitError); ok {
		os.Exit(exit.ExitCode())
	}
	fmt.Println(err)
	os.Exit(1)
}

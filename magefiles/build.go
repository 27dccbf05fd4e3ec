//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// binaryPath is where Build writes the todos binary.
func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}

// Build compiles the todos binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binaryDir, err)
	}
	return sh.RunV(binGo, "build", "-trimpath", "-o", binaryPath(), cmdDir)
}

// Install runs go install for the todos command.
func Install() error {
	return sh.RunV(binGo, "install", "-trimpath", cmdDir)
}

// Clean removes the bin/ directory and the coverage profile.
func Clean() error {
	for _, path := range []string{binaryDir, coverFile} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}

// Serve builds the binary and runs the Snapshot Store server in the
// foreground. PORT and TODOS_* variables pass through.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath(), "serve")
}

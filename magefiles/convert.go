//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and runs "retitle convert" with the configured paths
// (retitle.yaml or RETITLE_* variables).
func Convert() error {
	mg.Deps(Build)
	fmt.Println("[convert] Adding titles to the configured conversation CSV.")
	return sh.RunV(binPath, "convert")
}

// Index builds the CLI, converts, and loads the result into the title index.
func Index() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "convert", "--index")
}

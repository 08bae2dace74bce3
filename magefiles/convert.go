//go:build mage

package main

import "github.com/magefile/mage/mg"

// Convert transforms every unconverted PDF under papers/raw/ into
// Markdown. See prd002-conversion for full requirements.
func Convert() error {
	mg.Deps(Build)
	return runCLI("convert", "--batch")
}

//go:build mage

package main

import "github.com/magefile/mage/mg"

// Analyze syncs metadata into the paper index and classifies every
// pending paper. See prd007-classification and prd008-analysis for full
// requirements.
func Analyze() error {
	mg.Deps(Build)

	if err := runCLI("store", "sync"); err != nil {
		return err
	}
	return runCLI("analyze", "pending")
}

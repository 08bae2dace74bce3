//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Download acquires papers listed in papers/queue.txt, one identifier per
// line. See prd001-acquisition for full requirements.
func Download() error {
	mg.Deps(Build)

	identifiers, err := readQueue(filepath.Join("papers", "queue.txt"))
	if err != nil {
		return err
	}
	if len(identifiers) == 0 {
		fmt.Println("[acquire] papers/queue.txt is empty; nothing to download.")
		return nil
	}

	args := append([]string{"acquire"}, identifiers...)
	return runCLI(args...)
}

// readQueue reads non-blank lines from path, returning nil if it is absent.
func readQueue(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var ids []string
	for _, line := range splitLines(data) {
		if line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}

// runCLI executes the built binary with the given arguments.
func runCLI(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

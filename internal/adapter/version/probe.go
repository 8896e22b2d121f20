// Package version reads the version reported by a Biome binary.
package version

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const probeTimeout = 5 * time.Second

var semverRe = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?`)

// Probe runs "<command> --version" and returns the semantic version it prints,
// for example "1.9.4" from "Version: 1.9.4".
func Probe(ctx context.Context, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, command, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("probe version of %s: %w", command, err)
	}
	return Parse(string(out))
}

// Parse extracts the first semantic version from --version output.
func Parse(output string) (string, error) {
	v := semverRe.FindString(output)
	if v == "" {
		return "", fmt.Errorf("no version in output %q", strings.TrimSpace(output))
	}
	return v, nil
}

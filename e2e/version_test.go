package e2e

import (
	"fmt"
	"strings"
	"testing"
)

func TestVersionFlagOutputsInjectedVersion(t *testing.T) {
	t.Parallel()

	injectedVersion := "e2e-smoke"
	ldflags := fmt.Sprintf("-X github.com/getlawrence/brkset/cmd.Version=%s", injectedVersion)
	repoRoot, binaryPath := buildCLIBinary(t, ldflags)

	for _, args := range [][]string{{"--version"}, {"version"}} {
		stdout, stderr, code := runBinary(t, repoRoot, binaryPath, args...)
		if code != 0 {
			t.Fatalf("%v exited with %d", args, code)
		}
		if output := stdout + stderr; !strings.Contains(output, injectedVersion) {
			t.Fatalf("expected version output to contain %q, got: %q", injectedVersion, output)
		}
	}
}

package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/fibnum into a temporary directory. go test runs
// in the package directory, so the module root is two levels up.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binName := "fibnum"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/fibnum")
	cmd.Dir = filepath.Join("..", "..")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build fibnum: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary end to end.
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)
	profile := filepath.Join(t.TempDir(), "profile.json")

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string // substring match, case-insensitive
		wantCode int
	}{
		{"Basic Calculation", []string{"-n", "10"}, "", "F(10) = 55", 0},
		{"Help", []string{"--help"}, "", "usage", 0},
		{"All Algorithms Comparison", []string{"-n", "100", "-algo", "all"}, "", "Global Status: Success", 0},
		{"Quiet Mode", []string{"-n", "10", "-q"}, "", "55", 0},
		{"Hex Output", []string{"-n", "10", "-q", "-hex"}, "", "0x37", 0},
		{"Narrow Limbs With Cross-Check", []string{"-n", "1000", "-limb", "8", "-c"}, "", "F(1000)", 0},
		{"Golden Ratio Ring", []string{"-n", "500", "-algo", "zphi-u64", "-karatsuba", "4"}, "", "F(500)", 0},
		{"Zero", []string{"-n", "0"}, "", "F(0) = 0", 0},
		{"Very Short Timeout", []string{"-n", "50000000", "-limb", "8", "-timeout", "1ms"}, "", "", 2},
		{"Invalid Limb Width", []string{"-limb", "12"}, "", "unsupported limb width", 4},
		{"Unknown Algorithm", []string{"-algo", "bogus"}, "", "unrecognized algorithm", 4},
		{"Native Overflow", []string{"-n", "200", "-algo", "native"}, "", "", 1},
		{"Completion", []string{"-completion", "fish"}, "", "complete -c fibnum", 0},
		{"Version Flag", []string{"--version"}, "", "fibnum", 0},
		{"REPL", []string{"-interactive", "-limb", "16"}, "mul 256 256\nexit\n", "65536", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-calibration-profile", profile}, tt.args...)
			if tt.name == "Version Flag" || tt.name == "Help" {
				args = tt.args
			}
			cmd := exec.Command(binPath, args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			if tt.stdin != "" {
				cmd.Stdin = strings.NewReader(tt.stdin)
			}
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running fibnum: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}

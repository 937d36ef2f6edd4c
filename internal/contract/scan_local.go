package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalScanClient implements the ScanClient interface by executing a secret
// scanner binary installed on the machine. The default arguments target
// gitleaks, but any scanner that prints a JSON findings array works.
type LocalScanClient struct {
	Binary string
	Args   []string
}

var _ ScanClient = &LocalScanClient{} // Compile-time check

// NewLocalScanClient creates a scan client for the given binary and arguments.
func NewLocalScanClient(binary string, args []string) *LocalScanClient {
	return &LocalScanClient{Binary: binary, Args: args}
}

// Available implements the ScanClient interface.
func (c *LocalScanClient) Available() bool {
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

// Scan implements the ScanClient interface. Scanners conventionally exit
// non-zero when they find leaks, so a non-zero exit that produced a report
// on stdout is a successful scan; only a silent failure is an error.
func (c *LocalScanClient) Scan(_ context.Context, repoPath string) ([]byte, error) {
	cmd := exec.Command(c.Binary, c.Args...)
	cmd.Dir = repoPath
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if len(out) > 0 {
			return out, nil
		}
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("scanner %q failed in %q: %s", c.Binary, repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("scanner %q failed: %w. Ensure it is installed and available on your PATH", c.Binary, err)
	}
	return out, nil
}

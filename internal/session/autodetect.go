package session

import (
	"fmt"
	"os"
	"os/exec"
)

// DetectShell finds the shell to spawn, in order of preference:
// 1. the configured shell passed by the caller
// 2. $SHELL environment variable
// 3. /bin/bash, /bin/zsh, /bin/sh
// Returns an error if none of them is executable.
func DetectShell(preferred string) (string, error) {
	candidates := make([]string, 0, 5)
	if preferred != "" {
		candidates = append(candidates, preferred)
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		candidates = append(candidates, shell)
	}
	candidates = append(candidates, "/bin/bash", "/bin/zsh", "/bin/sh")

	for _, candidate := range candidates {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no shell found: checked %v", candidates)
}

// isExecutable checks if a file exists, is regular and is executable.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.Mode().IsRegular() || info.Mode()&0111 == 0 {
		return false
	}
	_, err = exec.LookPath(path)
	return err == nil
}

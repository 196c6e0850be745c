package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir returns the directory holding the running program, with
// symlinks resolved. The overlay image and its config live here.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Resolve expands a leading ~ and joins relative paths onto base.
// Absolute paths are returned cleaned.
func Resolve(base, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(base, path), nil
}

// InExecutableDir resolves name against ExecutableDir.
func InExecutableDir(name string) (string, error) {
	dir, err := ExecutableDir()
	if err != nil {
		return "", err
	}
	return Resolve(dir, name)
}

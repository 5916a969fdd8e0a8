// Package rpaths resolves the on-disk config directory shared by the server
// and client binaries, the Go analogue of the Rust original's
// rrp::project_dir (core/src/lib.rs), which uses the "directories" crate's
// ProjectDirs. Go has no single standard equivalent, so this uses
// os.UserConfigDir, the standard library's own per-OS config directory
// resolver, exactly the kind of job ProjectDirs did.
package rpaths

import (
	"os"
	"path/filepath"
)

const appName = "rrp"

// ConfigDir returns the directory this system's config files live in,
// creating it if necessary.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

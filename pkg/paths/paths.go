// Package paths resolves the directories jbsync reads and writes: the
// user's JetBrains directory and the project-local backup and license
// archive roots.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/ideutil/jbsync/pkg/config"
	jberrors "github.com/ideutil/jbsync/pkg/errors"
)

// UserJetBrainsDir returns the directory holding the per-product
// configuration directories. The config value wins when set; otherwise
// the platform's conventional location is used.
func UserJetBrainsDir(cfg *config.Config) (string, error) {
	if cfg.JetBrainsDir != "" {
		return cfg.JetBrainsDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", jberrors.Wrap(err, jberrors.ErrEnumerate, "resolving user home directory")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "JetBrains"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "JetBrains"), nil
	default:
		return filepath.Join(xdg.ConfigHome, "JetBrains"), nil
	}
}

// BackupRoot returns the backup tree root, anchored at the working
// directory when the configured value is relative.
func BackupRoot(cfg *config.Config) string {
	return anchored(cfg.BackupDir)
}

// ArchiveRoot returns the license archive root, anchored the same way.
func ArchiveRoot(cfg *config.Config) string {
	return anchored(cfg.ArchiveDir)
}

func anchored(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return dir
	}
	return filepath.Join(wd, dir)
}

// Package backup keeps a bounded, dated history of every target file
// jbsync overwrites. A copy is taken immediately before a write and
// the per-product archive is trimmed to a fixed retention count.
package backup

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	jberrors "github.com/ideutil/jbsync/pkg/errors"
	"github.com/ideutil/jbsync/pkg/logging"
	"github.com/ideutil/jbsync/pkg/types"
)

// timestampLayout gives second resolution and sorts lexicographically
// in chronological order, which the prune pass relies on.
const timestampLayout = "20060102150405"

// Rotator copies targets into the backup tree and prunes old entries.
type Rotator struct {
	fs   types.FS
	root string
	keep int
	now  func() time.Time
}

// New creates a Rotator archiving under root and retaining keep
// backups per target.
func New(fsys types.FS, root string, keep int) *Rotator {
	return &Rotator{
		fs:   fsys,
		root: root,
		keep: keep,
		now:  time.Now,
	}
}

// Rotate backs up the target before an overwrite and prunes the
// product's archive. It is a no-op when the target does not exist yet
// (nothing to back up). Directory creation and copy failures are fatal
// for this target and propagate; prune failures never do. Returns the
// backup path, or "" for the no-op case.
func (r *Rotator) Rotate(target types.SyncTarget) (string, error) {
	logger := logging.GetLogger("backup")

	if _, err := r.fs.Stat(target.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", jberrors.Wrapf(err, jberrors.ErrBackupCopy, "stat %s", target.Path)
	}

	productDir := filepath.Join(r.root, target.Product)
	if err := r.fs.MkdirAll(productDir, 0755); err != nil {
		return "", jberrors.Wrapf(err, jberrors.ErrBackupDir, "create backup directory %s", productDir)
	}

	suffix := r.now().Format(timestampLayout)
	backupPath := filepath.Join(productDir, target.FileName()+"_"+suffix)

	// Same-second collisions overwrite the previous copy; backups are
	// best-effort history, not a journal.
	data, err := r.fs.ReadFile(target.Path)
	if err != nil {
		return "", jberrors.Wrapf(err, jberrors.ErrBackupCopy, "read %s", target.Path)
	}
	if err := r.fs.WriteFile(backupPath, data, 0644); err != nil {
		return "", jberrors.Wrapf(err, jberrors.ErrBackupCopy, "copy %s to %s", target.Path, backupPath)
	}

	logger.Info().
		Str("product", target.Product).
		Str("backup", backupPath).
		Msg("target backed up")

	r.prune(productDir)
	return backupPath, nil
}

// prune deletes the oldest entries beyond the retention count.
// Entries are sorted by name before trimming: the timestamp suffix
// makes lexicographic order chronological, and directory listing order
// is not trusted. Failures are logged and swallowed; the backup that
// mattered has already been taken.
func (r *Rotator) prune(productDir string) {
	logger := logging.GetLogger("backup")

	entries, err := r.fs.ReadDir(productDir)
	if err != nil {
		err = jberrors.Wrapf(err, jberrors.ErrPrune, "list %s", productDir)
		logger.Warn().Err(err).Str("dir", productDir).Msg("cannot list backups, prune skipped")
		return
	}
	if len(entries) <= r.keep {
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names[:len(names)-r.keep] {
		stale := filepath.Join(productDir, name)
		if err := r.fs.Remove(stale); err != nil {
			err = jberrors.Wrapf(err, jberrors.ErrPrune, "delete %s", stale)
			logger.Warn().Err(err).Str("path", stale).Msg("cannot delete stale backup, remove it manually")
			return
		}
		logger.Info().Str("path", stale).Msg("stale backup deleted")
	}
}

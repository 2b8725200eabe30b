package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideutil/jbsync/pkg/filesystem"
	"github.com/ideutil/jbsync/pkg/testutil"
	"github.com/ideutil/jbsync/pkg/types"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// brokenPruneFS fails the calls the prune pass depends on while the
// backup copy itself goes through.
type brokenPruneFS struct {
	types.FS
	failReadDir bool
	failRemove  bool
}

func (b *brokenPruneFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if b.failReadDir {
		return nil, errors.New("listing failed")
	}
	return b.FS.ReadDir(name)
}

func (b *brokenPruneFS) Remove(name string) error {
	if b.failRemove {
		return errors.New("remove failed")
	}
	return b.FS.Remove(name)
}

func TestRotate(t *testing.T) {
	target := types.SyncTarget{
		Product: "GoLand",
		Path:    "/jetbrains/GoLand2024.3/goland64.exe.vmoptions",
	}

	t.Run("absent target is a no-op", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		rotator := New(fsys, "/backups", 5)

		backupPath, err := rotator.Rotate(target)
		require.NoError(t, err)
		assert.Equal(t, "", backupPath)
	})

	t.Run("backup carries the dated suffix and content", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		testutil.WriteFile(t, fsys, target.Path, "-Xmx1024m\n")

		rotator := New(fsys, "/backups", 5)
		rotator.now = fixedClock(time.Date(2026, 8, 23, 10, 45, 0, 0, time.UTC))

		backupPath, err := rotator.Rotate(target)
		require.NoError(t, err)

		assert.Equal(t, "/backups/GoLand/goland64.exe.vmoptions_20260823104500", backupPath)
		assert.Equal(t, "-Xmx1024m\n", testutil.ReadFile(t, fsys, backupPath))
	})

	t.Run("same second overwrites the previous copy", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		rotator := New(fsys, "/backups", 5)
		rotator.now = fixedClock(time.Date(2026, 8, 23, 10, 45, 0, 0, time.UTC))

		testutil.WriteFile(t, fsys, target.Path, "first\n")
		first, err := rotator.Rotate(target)
		require.NoError(t, err)

		testutil.WriteFile(t, fsys, target.Path, "second\n")
		second, err := rotator.Rotate(target)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "second\n", testutil.ReadFile(t, fsys, second))
		assert.Len(t, testutil.ListDir(t, fsys, "/backups/GoLand"), 1)
	})

	t.Run("prune keeps the newest five", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		testutil.WriteFile(t, fsys, target.Path, "-Xmx1024m\n")

		// Seven pre-existing backups from earlier runs.
		for i := 0; i < 7; i++ {
			name := fmt.Sprintf("/backups/GoLand/goland64.exe.vmoptions_2026081710450%d", i)
			testutil.WriteFile(t, fsys, name, "old\n")
		}

		rotator := New(fsys, "/backups", 5)
		rotator.now = fixedClock(time.Date(2026, 8, 23, 10, 45, 0, 0, time.UTC))

		backupPath, err := rotator.Rotate(target)
		require.NoError(t, err)

		names := testutil.ListDir(t, fsys, "/backups/GoLand")
		assert.Len(t, names, 5)
		assert.Contains(t, names, "goland64.exe.vmoptions_20260823104500")
		// The three oldest are gone.
		assert.NotContains(t, names, "goland64.exe.vmoptions_20260817104500")
		assert.NotContains(t, names, "goland64.exe.vmoptions_20260817104501")
		assert.NotContains(t, names, "goland64.exe.vmoptions_20260817104502")
		assert.Equal(t, "-Xmx1024m\n", testutil.ReadFile(t, fsys, backupPath))
	})

	t.Run("prune listing failure does not fail the rotation", func(t *testing.T) {
		memory := filesystem.NewMemory()
		testutil.WriteFile(t, memory, target.Path, "-Xmx1024m\n")

		rotator := New(&brokenPruneFS{FS: memory, failReadDir: true}, "/backups", 5)
		rotator.now = fixedClock(time.Date(2026, 8, 23, 10, 45, 0, 0, time.UTC))

		backupPath, err := rotator.Rotate(target)
		require.NoError(t, err, "the backup that mattered was taken, prune trouble stays non-fatal")
		assert.Equal(t, "/backups/GoLand/goland64.exe.vmoptions_20260823104500", backupPath)
		assert.Equal(t, "-Xmx1024m\n", testutil.ReadFile(t, memory, backupPath))
	})

	t.Run("prune delete failure does not fail the rotation", func(t *testing.T) {
		memory := filesystem.NewMemory()
		testutil.WriteFile(t, memory, target.Path, "-Xmx1024m\n")
		for i := 0; i < 7; i++ {
			name := fmt.Sprintf("/backups/GoLand/goland64.exe.vmoptions_2026081710450%d", i)
			testutil.WriteFile(t, memory, name, "old\n")
		}

		rotator := New(&brokenPruneFS{FS: memory, failRemove: true}, "/backups", 5)
		rotator.now = fixedClock(time.Date(2026, 8, 23, 10, 45, 0, 0, time.UTC))

		backupPath, err := rotator.Rotate(target)
		require.NoError(t, err)
		assert.Equal(t, "-Xmx1024m\n", testutil.ReadFile(t, memory, backupPath))

		// Nothing was deleted, the stale entries wait for the next run.
		assert.Len(t, testutil.ListDir(t, memory, "/backups/GoLand"), 8)
	})

	t.Run("no prune below the retention count", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		testutil.WriteFile(t, fsys, target.Path, "-Xmx1024m\n")
		testutil.WriteFile(t, fsys, "/backups/GoLand/goland64.exe.vmoptions_20260817104500", "old\n")

		rotator := New(fsys, "/backups", 5)
		rotator.now = fixedClock(time.Date(2026, 8, 23, 10, 45, 0, 0, time.UTC))

		_, err := rotator.Rotate(target)
		require.NoError(t, err)

		assert.Len(t, testutil.ListDir(t, fsys, "/backups/GoLand"), 2)
	})
}

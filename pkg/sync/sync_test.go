package sync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideutil/jbsync/pkg/backup"
	"github.com/ideutil/jbsync/pkg/filesystem"
	"github.com/ideutil/jbsync/pkg/resources"
	"github.com/ideutil/jbsync/pkg/testutil"
	"github.com/ideutil/jbsync/pkg/types"
)

var toolboxPrefixes = []string{
	"-Dide.managed.by.toolbox",
	"-Dtoolbox.notification.token",
	"-Dtoolbox.notification.portFile",
}

func testProvider() *resources.MapProvider {
	return &resources.MapProvider{
		Specifics: map[string][]byte{
			"goland": []byte("-Xmx2048m"),
			"idea":   []byte("-Xmx4096m"),
		},
		General: []byte("-XX:+UseG1GC"),
		Comment: []byte("# Toolbox-managed properties below"),
	}
}

func golandTarget() types.SyncTarget {
	return types.SyncTarget{
		Product: "GoLand",
		Path:    "/jetbrains/GoLand2024.3/goland64.exe.vmoptions",
	}
}

func newTestOrchestrator(fsys types.FS, provider resources.Provider, opts Options) *Orchestrator {
	return New(fsys, provider, backup.New(fsys, "/backups", 5), toolboxPrefixes, opts)
}

func TestRunWritesAbsentTarget(t *testing.T) {
	fsys := filesystem.NewMemory()
	testutil.MkDir(t, fsys, "/jetbrains/GoLand2024.3")

	orchestrator := newTestOrchestrator(fsys, testProvider(), Options{})
	summary := orchestrator.Run([]types.SyncTarget{golandTarget()})

	require.Len(t, summary.Results, 1)
	result := summary.Results[0]

	assert.Equal(t, types.StatusWritten, result.Status)
	assert.Equal(t, "", result.BackupPath, "nothing to back up for a fresh install")
	require.NotNil(t, result.Diff)
	assert.Equal(t, 1, result.Diff.DeltaCount)

	assert.Equal(t, "-Xmx2048m\n-XX:+UseG1GC\n", testutil.ReadFile(t, fsys, golandTarget().Path))
	assert.Equal(t, 1, summary.Written)
	assert.Equal(t, 1, summary.Configured())
}

func TestRunOverwritesChangedTarget(t *testing.T) {
	fsys := filesystem.NewMemory()
	target := golandTarget()
	testutil.WriteFile(t, fsys, target.Path, "-Xmx1024m\n-XX:+UseG1GC\n")

	orchestrator := newTestOrchestrator(fsys, testProvider(), Options{})
	summary := orchestrator.Run([]types.SyncTarget{target})

	require.Len(t, summary.Results, 1)
	result := summary.Results[0]

	assert.Equal(t, types.StatusWritten, result.Status)
	require.NotNil(t, result.Diff)
	assert.Equal(t, 1, result.Diff.DeltaCount)

	// Old content survives in the backup, new content is on disk.
	require.NotEmpty(t, result.BackupPath)
	assert.Equal(t, "-Xmx1024m\n-XX:+UseG1GC\n", testutil.ReadFile(t, fsys, result.BackupPath))
	assert.Equal(t, "-Xmx2048m\n-XX:+UseG1GC\n", testutil.ReadFile(t, fsys, target.Path))
}

func TestRunIsIdempotent(t *testing.T) {
	fsys := filesystem.NewMemory()
	target := golandTarget()
	testutil.MkDir(t, fsys, "/jetbrains/GoLand2024.3")

	orchestrator := newTestOrchestrator(fsys, testProvider(), Options{})

	first := orchestrator.Run([]types.SyncTarget{target})
	require.Equal(t, 1, first.Written)

	second := orchestrator.Run([]types.SyncTarget{target})
	require.Len(t, second.Results, 1)
	assert.Equal(t, types.StatusSkipped, second.Results[0].Status)
	assert.Equal(t, 0, second.Written)
	assert.Equal(t, 1, second.Configured())

	// The skipped pass must not touch the backup tree.
	_, err := fsys.Stat("/backups/GoLand")
	assert.Error(t, err)
}

func TestRunCarriesPresetsForward(t *testing.T) {
	fsys := filesystem.NewMemory()
	target := golandTarget()
	testutil.WriteFile(t, fsys, target.Path,
		"-Xmx1024m\n-Dide.managed.by.toolbox=true\n-Dtoolbox.notification.token=abc123\n")

	orchestrator := newTestOrchestrator(fsys, testProvider(), Options{})
	summary := orchestrator.Run([]types.SyncTarget{target})

	require.Equal(t, 1, summary.Written)
	assert.Equal(t,
		"-Xmx2048m\n-XX:+UseG1GC\n# Toolbox-managed properties below\n"+
			"-Dide.managed.by.toolbox=true\n-Dtoolbox.notification.token=abc123\n",
		testutil.ReadFile(t, fsys, target.Path))
}

func TestRunDryRunWritesNothing(t *testing.T) {
	fsys := filesystem.NewMemory()
	target := golandTarget()
	testutil.WriteFile(t, fsys, target.Path, "-Xmx1024m\n")

	orchestrator := newTestOrchestrator(fsys, testProvider(), Options{DryRun: true})
	summary := orchestrator.Run([]types.SyncTarget{target})

	require.Len(t, summary.Results, 1)
	assert.Equal(t, types.StatusWritten, summary.Results[0].Status)
	assert.Equal(t, "", summary.Results[0].BackupPath)

	assert.Equal(t, "-Xmx1024m\n", testutil.ReadFile(t, fsys, target.Path))
	_, err := fsys.Stat("/backups/GoLand")
	assert.Error(t, err)
}

func TestRunUnconfiguredProduct(t *testing.T) {
	fsys := filesystem.NewMemory()
	target := types.SyncTarget{
		Product: "RubyMine",
		Path:    "/jetbrains/RubyMine2024.3/rubymine64.exe.vmoptions",
	}
	testutil.MkDir(t, fsys, "/jetbrains/RubyMine2024.3")

	orchestrator := newTestOrchestrator(fsys, testProvider(), Options{})
	summary := orchestrator.Run([]types.SyncTarget{target})

	require.Len(t, summary.Results, 1)
	assert.Equal(t, types.StatusUnconfigured, summary.Results[0].Status)
	assert.Equal(t, 1, summary.Unconfigured)
	assert.Equal(t, 0, summary.Configured())
	assert.False(t, testutil.FileExists(fsys, target.Path))
}

func TestRunContainsFailures(t *testing.T) {
	fsys := filesystem.NewMemory()
	testutil.MkDir(t, fsys, "/jetbrains/GoLand2024.3")

	provider := &resources.MapProvider{Err: errors.New("fragment store corrupt")}
	orchestrator := newTestOrchestrator(fsys, provider, Options{})

	targets := []types.SyncTarget{
		golandTarget(),
		{Product: "IntelliJIdea", Path: "/jetbrains/IntelliJIdea2024.3/idea64.exe.vmoptions"},
	}
	summary := orchestrator.Run(targets)

	require.Len(t, summary.Results, 2, "one bad target must not abort the batch")
	assert.Equal(t, 2, summary.Failed)
	for _, result := range summary.Results {
		assert.Equal(t, types.StatusFailed, result.Status)
		assert.NotEmpty(t, result.Error)
	}
}

func TestRunMixedBatch(t *testing.T) {
	fsys := filesystem.NewMemory()
	golandPath := "/jetbrains/GoLand2024.3/goland64.exe.vmoptions"
	ideaPath := "/jetbrains/IntelliJIdea2024.3/idea64.exe.vmoptions"
	testutil.WriteFile(t, fsys, golandPath, "-Xmx2048m\n-XX:+UseG1GC\n")
	testutil.MkDir(t, fsys, "/jetbrains/IntelliJIdea2024.3")
	testutil.MkDir(t, fsys, "/jetbrains/RubyMine2024.3")

	orchestrator := newTestOrchestrator(fsys, testProvider(), Options{})
	summary := orchestrator.Run([]types.SyncTarget{
		{Product: "GoLand", Path: golandPath},
		{Product: "IntelliJIdea", Path: ideaPath},
		{Product: "RubyMine", Path: "/jetbrains/RubyMine2024.3/rubymine64.exe.vmoptions"},
	})

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Written)
	assert.Equal(t, 1, summary.Unconfigured)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Configured())

	assert.Equal(t, "-Xmx4096m\n-XX:+UseG1GC\n", testutil.ReadFile(t, fsys, ideaPath))
}

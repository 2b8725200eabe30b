// Package sync drives the per-target pipeline: recover presets,
// compose candidate content, diff against the current file, back up
// and overwrite only when something actually changed.
package sync

import (
	"github.com/rs/zerolog"

	"github.com/ideutil/jbsync/pkg/backup"
	"github.com/ideutil/jbsync/pkg/compose"
	"github.com/ideutil/jbsync/pkg/diff"
	jberrors "github.com/ideutil/jbsync/pkg/errors"
	"github.com/ideutil/jbsync/pkg/logging"
	"github.com/ideutil/jbsync/pkg/preset"
	"github.com/ideutil/jbsync/pkg/products"
	"github.com/ideutil/jbsync/pkg/resources"
	"github.com/ideutil/jbsync/pkg/types"
)

// Options tune one run.
type Options struct {
	// DryRun reports what would be written without touching anything.
	DryRun bool
}

// Orchestrator runs the synchronization pass over a target list.
type Orchestrator struct {
	fs       types.FS
	provider resources.Provider
	rotator  *backup.Rotator
	prefixes []string
	opts     Options
	logger   zerolog.Logger
}

// New wires an Orchestrator. prefixes is the closed set of recognized
// preset-variable keys carried forward across rewrites.
func New(fsys types.FS, provider resources.Provider, rotator *backup.Rotator, prefixes []string, opts Options) *Orchestrator {
	return &Orchestrator{
		fs:       fsys,
		provider: provider,
		rotator:  rotator,
		prefixes: prefixes,
		opts:     opts,
		logger:   logging.GetLogger("sync"),
	}
}

// Run processes every target and aggregates the outcomes. A single
// target's failure never aborts the batch; its result is recorded as
// failed and the loop moves on.
func (o *Orchestrator) Run(targets []types.SyncTarget) types.RunSummary {
	var summary types.RunSummary

	o.logger.Info().Int("targets", len(targets)).Msg("synchronization started")

	for _, target := range targets {
		result := o.processTarget(target)
		summary.Add(result)

		event := o.logger.Info()
		if result.Status == types.StatusFailed {
			event = o.logger.Error().Err(result.Err)
		}
		event.
			Str("product", target.Product).
			Str("file", target.FileName()).
			Str("status", string(result.Status)).
			Msg("target processed")
	}

	o.logger.Info().
		Int("configured", summary.Configured()).
		Int("unconfigured", summary.Unconfigured).
		Int("failed", summary.Failed).
		Msg("synchronization finished")
	return summary
}

// processTarget is the state machine for one target: extract presets,
// compose, diff, then either skip or back up and write.
func (o *Orchestrator) processTarget(target types.SyncTarget) types.TargetResult {
	presetBlock := preset.FromFile(o.fs, target.Path, o.prefixes)

	frags, ok, err := o.provider.Fragments(products.Stem(target.FileName()))
	if err != nil {
		return types.TargetResult{
			Target: target,
			Status: types.StatusFailed,
			Err:    jberrors.Wrapf(err, jberrors.ErrFragmentRead, "fragments for %s", target.Product),
		}
	}
	if !ok {
		// No specific fragment packaged for this product; by design,
		// not a failure.
		return types.TargetResult{Target: target, Status: types.StatusUnconfigured}
	}

	content := compose.Content(frags.Specific, frags.General, frags.Comment, presetBlock)

	diffResult, err := diff.Compare(o.fs, target.Path, content)
	if err != nil {
		return types.TargetResult{Target: target, Status: types.StatusFailed, Err: err}
	}
	if !diffResult.HasDiff {
		return types.TargetResult{Target: target, Status: types.StatusSkipped, Diff: &diffResult}
	}

	if o.opts.DryRun {
		o.logger.Info().
			Str("product", target.Product).
			Int("deltas", diffResult.DeltaCount).
			Msg("dry-run, write withheld")
		return types.TargetResult{Target: target, Status: types.StatusWritten, Diff: &diffResult}
	}

	backupPath, err := o.rotator.Rotate(target)
	if err != nil {
		return types.TargetResult{Target: target, Status: types.StatusFailed, Diff: &diffResult, Err: err}
	}

	// The parent directory exists by construction: the target was
	// enumerated from it. The file itself may not, and is created.
	if err := o.fs.WriteFile(target.Path, []byte(content), 0644); err != nil {
		return types.TargetResult{
			Target:     target,
			Status:     types.StatusFailed,
			Diff:       &diffResult,
			BackupPath: backupPath,
			Err:        jberrors.Wrapf(err, jberrors.ErrTargetWrite, "write %s", target.Path),
		}
	}

	return types.TargetResult{
		Target:     target,
		Status:     types.StatusWritten,
		Diff:       &diffResult,
		BackupPath: backupPath,
	}
}

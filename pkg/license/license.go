// Package license mirrors JetBrains license artifacts (*.key,
// *.license) between the user directory and a project-local archive.
// The archive pass saves whatever exists today; the restore pass puts
// archived licenses back into freshly installed products. Copies go
// through the same diff gate as vmoptions writes, so identical files
// are never rewritten.
package license

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ideutil/jbsync/pkg/diff"
	jberrors "github.com/ideutil/jbsync/pkg/errors"
	"github.com/ideutil/jbsync/pkg/logging"
	"github.com/ideutil/jbsync/pkg/products"
	"github.com/ideutil/jbsync/pkg/types"
)

// licenseFile recognizes the artifact files worth mirroring.
func licenseFile(name string) bool {
	return strings.HasSuffix(name, ".key") || strings.HasSuffix(name, ".license")
}

// Options tune one mirror pass.
type Options struct {
	// DryRun reports what would be copied without touching anything.
	DryRun bool
}

// Mirror synchronizes license artifacts in both directions.
type Mirror struct {
	fs          types.FS
	registry    *products.Registry
	archiveRoot string
	opts        Options
	logger      zerolog.Logger
}

// NewMirror wires a Mirror archiving under archiveRoot.
func NewMirror(fsys types.FS, registry *products.Registry, archiveRoot string, opts Options) *Mirror {
	return &Mirror{
		fs:          fsys,
		registry:    registry,
		archiveRoot: archiveRoot,
		opts:        opts,
		logger:      logging.GetLogger("license"),
	}
}

// Run archives current licenses and then restores archived ones.
func (m *Mirror) Run(userDir string) (types.MirrorSummary, error) {
	var total types.MirrorSummary

	archived, err := m.Archive(userDir)
	if err != nil {
		return total, err
	}
	total.Copied += archived.Copied
	total.Skipped += archived.Skipped
	total.Failed += archived.Failed

	restored, err := m.Restore(userDir)
	if err != nil {
		return total, err
	}
	total.Copied += restored.Copied
	total.Skipped += restored.Skipped
	total.Failed += restored.Failed
	return total, nil
}

// Archive copies license files from every recognized product directory
// into the archive. Archiving must not lose material, so any listing
// or copy failure aborts with an error instead of being swallowed.
func (m *Mirror) Archive(userDir string) (types.MirrorSummary, error) {
	var summary types.MirrorSummary

	userEntries, err := m.fs.ReadDir(userDir)
	if err != nil {
		return summary, jberrors.Wrapf(err, jberrors.ErrEnumerate, "cannot list user directory %s", userDir)
	}

	for _, userEntry := range userEntries {
		if !userEntry.IsDir() {
			continue
		}
		product := products.StripVersion(userEntry.Name())
		if !m.registry.IsProduct(product) {
			continue
		}

		productDir := filepath.Join(userDir, userEntry.Name())
		files, err := m.fs.ReadDir(productDir)
		if err != nil {
			return summary, jberrors.Wrapf(err, jberrors.ErrLicenseArchive, "cannot list %s", productDir)
		}

		for _, file := range files {
			if file.IsDir() || !licenseFile(file.Name()) {
				continue
			}

			archiveDir := filepath.Join(m.archiveRoot, product)
			sourcePath := filepath.Join(productDir, file.Name())
			archivePath := filepath.Join(archiveDir, file.Name())

			changed, err := diff.CompareFiles(m.fs, sourcePath, archivePath)
			if err != nil {
				return summary, jberrors.Wrapf(err, jberrors.ErrLicenseArchive, "compare %s", sourcePath)
			}
			if !changed {
				summary.Skipped++
				continue
			}

			if m.opts.DryRun {
				summary.Copied++
				m.logger.Info().Str("product", product).Str("file", file.Name()).Msg("dry-run, archive copy withheld")
				continue
			}

			if err := m.fs.MkdirAll(archiveDir, 0755); err != nil {
				return summary, jberrors.Wrapf(err, jberrors.ErrLicenseArchive, "create archive directory %s", archiveDir)
			}
			if err := m.copyFile(sourcePath, archivePath); err != nil {
				return summary, jberrors.Wrapf(err, jberrors.ErrLicenseArchive, "archive %s", sourcePath)
			}
			summary.Copied++
			m.logger.Info().Str("product", product).Str("file", file.Name()).Msg("license archived")
		}
	}
	return summary, nil
}

// Restore copies archived license files back into every user product
// directory whose name matches the archived product. Per-file failures
// are contained so one bad file never blocks the rest; listing
// failures abort since nothing downstream can proceed.
func (m *Mirror) Restore(userDir string) (types.MirrorSummary, error) {
	var summary types.MirrorSummary

	archiveEntries, err := m.fs.ReadDir(m.archiveRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Nothing archived yet.
			return summary, nil
		}
		return summary, jberrors.Wrapf(err, jberrors.ErrLicenseRestore, "cannot list archive %s", m.archiveRoot)
	}

	userEntries, err := m.fs.ReadDir(userDir)
	if err != nil {
		return summary, jberrors.Wrapf(err, jberrors.ErrEnumerate, "cannot list user directory %s", userDir)
	}

	for _, archiveEntry := range archiveEntries {
		if !archiveEntry.IsDir() {
			continue
		}
		product := archiveEntry.Name()

		for _, userEntry := range userEntries {
			// GoLand2024.3 matches the archived GoLand directory.
			if !userEntry.IsDir() || !strings.HasPrefix(userEntry.Name(), product) {
				continue
			}

			partial := m.restoreProduct(
				filepath.Join(m.archiveRoot, product),
				filepath.Join(userDir, userEntry.Name()),
			)
			summary.Copied += partial.Copied
			summary.Skipped += partial.Skipped
			summary.Failed += partial.Failed

			m.logger.Info().
				Str("product", userEntry.Name()).
				Int("files", partial.Total()).
				Int("copied", partial.Copied).
				Int("skipped", partial.Skipped).
				Int("failed", partial.Failed).
				Msg("licenses restored")
		}
	}
	return summary, nil
}

// restoreProduct copies every archived regular file of one product
// into one user product directory, skipping identical files.
func (m *Mirror) restoreProduct(archiveDir, userProductDir string) types.MirrorSummary {
	var summary types.MirrorSummary

	files, err := m.fs.ReadDir(archiveDir)
	if err != nil {
		m.logger.Error().Err(err).Str("dir", archiveDir).Msg("cannot list archived licenses")
		summary.Failed++
		return summary
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		sourcePath := filepath.Join(archiveDir, file.Name())
		targetPath := filepath.Join(userProductDir, file.Name())

		changed, err := diff.CompareFiles(m.fs, sourcePath, targetPath)
		if err != nil {
			m.logger.Error().Err(err).Str("file", file.Name()).Msg("license comparison failed")
			summary.Failed++
			continue
		}
		if !changed {
			summary.Skipped++
			continue
		}

		if m.opts.DryRun {
			summary.Copied++
			m.logger.Info().Str("file", file.Name()).Msg("dry-run, restore copy withheld")
			continue
		}

		if err := m.copyFile(sourcePath, targetPath); err != nil {
			m.logger.Error().Err(err).Str("file", file.Name()).Msg("license restore failed")
			summary.Failed++
			continue
		}
		summary.Copied++
	}
	return summary
}

// copyFile copies bytes verbatim; license material is opaque.
func (m *Mirror) copyFile(sourcePath, targetPath string) error {
	data, err := m.fs.ReadFile(sourcePath)
	if err != nil {
		return err
	}
	return m.fs.WriteFile(targetPath, data, 0644)
}

// Package products maps JetBrains product directories to their
// vmoptions files and enumerates the sync targets in a user directory.
package products

import (
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	jberrors "github.com/ideutil/jbsync/pkg/errors"
	"github.com/ideutil/jbsync/pkg/logging"
	"github.com/ideutil/jbsync/pkg/types"
)

var (
	// Product directories carry a version suffix: IntelliJ IDEA
	// 2024.3.5 lives in IntelliJIdea2024.3. Stripping digits and dots
	// yields the registry key.
	versionPattern = regexp.MustCompile(`[\d.]+`)

	// A vmoptions file name maps to its fragment stem by dropping
	// everything from the first two-digit run: idea64.exe.vmoptions
	// becomes idea.
	stemPattern = regexp.MustCompile(`\d{2}.*`)
)

// StripVersion removes the version suffix from a product directory
// name: GoLand2024.3 becomes GoLand.
func StripVersion(dirName string) string {
	return versionPattern.ReplaceAllString(dirName, "")
}

// Stem derives the fragment stem from a vmoptions file name.
func Stem(fileName string) string {
	return stemPattern.ReplaceAllString(fileName, "")
}

// Registry is the immutable product-name to vmoptions-file-name
// lookup. It is built once from configuration at startup and passed by
// reference everywhere; nothing mutates it afterwards.
type Registry struct {
	fileNames map[string]string
}

// NewRegistry copies the mapping so later changes to the source map
// cannot leak in.
func NewRegistry(fileNames map[string]string) *Registry {
	copied := make(map[string]string, len(fileNames))
	for k, v := range fileNames {
		copied[k] = v
	}
	return &Registry{fileNames: copied}
}

// FileNameFor returns the vmoptions file name for a product.
func (r *Registry) FileNameFor(product string) (string, bool) {
	name, ok := r.fileNames[product]
	return name, ok
}

// IsProduct reports whether the name is a recognized product.
func (r *Registry) IsProduct(product string) bool {
	_, ok := r.fileNames[product]
	return ok
}

// Names returns the recognized product names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fileNames))
	for name := range r.fileNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnumerateTargets lists the user JetBrains directory and resolves one
// SyncTarget per recognized product directory. Unknown directories are
// ignored. Failure to list the directory is fatal for the whole run;
// nothing downstream can proceed without the target list.
func (r *Registry) EnumerateTargets(fsys types.FS, userDir string) ([]types.SyncTarget, error) {
	logger := logging.GetLogger("products")

	entries, err := fsys.ReadDir(userDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, jberrors.Wrapf(err, jberrors.ErrEnumerate, "user directory %s does not exist", userDir)
		}
		return nil, jberrors.Wrapf(err, jberrors.ErrEnumerate, "cannot list user directory %s", userDir)
	}

	var targets []types.SyncTarget
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		product := StripVersion(entry.Name())
		fileName, ok := r.fileNames[product]
		if !ok {
			logger.Trace().Str("dir", entry.Name()).Msg("not a recognized product, skipping")
			continue
		}
		targets = append(targets, types.SyncTarget{
			Product: product,
			Path:    filepath.Join(userDir, entry.Name(), fileName),
		})
	}

	logger.Debug().Int("targets", len(targets)).Str("dir", userDir).Msg("targets enumerated")
	return targets, nil
}

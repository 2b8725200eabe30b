// Package preset recovers toolbox-injected variable lines from a
// target file before it is overwritten, so the rewrite carries them
// forward.
package preset

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/ideutil/jbsync/pkg/diff"
	"github.com/ideutil/jbsync/pkg/logging"
	"github.com/ideutil/jbsync/pkg/types"
)

// ReadLines reads the target and splits it into lines. found is false
// when the file does not exist; that is not an error, a missing file
// simply has no presets to carry forward.
func ReadLines(fsys types.FS, path string) (lines []string, found bool, err error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return diff.SplitLines(string(data)), true, nil
}

// Extract scans lines tail-to-head (injected variables are appended at
// file end by convention) and collects every whole line whose text
// before the first '=' is one of the recognized prefixes. Each prefix
// occurs at most once per file, so scanning stops after len(prefixes)
// matches. The returned block is in forward document order, each line
// newline-terminated; empty when nothing matched.
func Extract(lines []string, prefixes []string) string {
	remaining := len(prefixes)
	if remaining == 0 {
		return ""
	}

	recognized := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		recognized[p] = struct{}{}
	}

	var block string
	for i := len(lines) - 1; i >= 0 && remaining > 0; i-- {
		line := lines[i]
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		if _, ok := recognized[line[:eq]]; ok {
			block = line + "\n" + block
			remaining--
		}
	}
	return block
}

// FromFile is the orchestrator-facing convenience: any failure to read
// the target degrades to an empty preset block. A fresh install has no
// file yet and that must not stop the run.
func FromFile(fsys types.FS, path string, prefixes []string) string {
	logger := logging.GetLogger("preset")

	lines, found, err := ReadLines(fsys, path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("target unreadable, no presets carried forward")
		return ""
	}
	if !found {
		return ""
	}
	return Extract(lines, prefixes)
}

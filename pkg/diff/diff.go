// Package diff implements the line-oriented comparison that gates
// every write jbsync makes. A target is only overwritten when the
// candidate content actually differs from what is on disk.
//
// Two comparison modes exist and are deliberately kept apart:
// Compare treats contents as text (the vmoptions path), while
// CompareFiles compares raw bytes so that opaque license material
// round-trips untouched.
package diff

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	jberrors "github.com/ideutil/jbsync/pkg/errors"
	"github.com/ideutil/jbsync/pkg/types"
)

// SplitLines splits text into lines the way line-oriented tools do:
// \r\n and lone \r count as terminators, a trailing terminator does
// not produce an empty final line, and empty input has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Lines diffs two ordered line sequences. DeltaCount is the number of
// contiguous edit groups (one group may span several inserted, deleted
// or changed lines), and TotalLines counts the candidate. Inputs are
// never mutated.
func Lines(existing, candidate []string) types.DiffResult {
	matcher := difflib.NewMatcher(existing, candidate)

	deltas := 0
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'e' {
			deltas++
		}
	}

	result := types.DiffResult{
		HasDiff:    deltas > 0,
		TotalLines: len(candidate),
		DeltaCount: deltas,
	}
	if result.HasDiff {
		result.Message = fmt.Sprintf("%d delta(s) found, write allowed", deltas)
	} else {
		result.Message = "content identical, no write needed"
	}
	return result
}

// Compare diffs the file at path against the candidate content,
// decoded as text. A missing target is maximal difference: the result
// is forced to HasDiff=true so an initial write always goes through.
func Compare(fsys types.FS, path string, content string) (types.DiffResult, error) {
	candidate := SplitLines(content)

	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.DiffResult{
				HasDiff:    true,
				TotalLines: len(candidate),
				DeltaCount: 1,
				Message:    "target does not exist, write allowed",
			}, nil
		}
		return types.DiffResult{}, jberrors.Wrapf(err, jberrors.ErrTargetRead, "stat %s", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return types.DiffResult{}, jberrors.Wrapf(err, jberrors.ErrTargetRead, "read %s", path)
	}

	return Lines(SplitLines(string(data)), candidate), nil
}

// CompareFiles reports whether the two files differ, comparing raw
// bytes line by line so that non-ASCII content is byte-transparent.
// A missing target means the source may always be copied over.
func CompareFiles(fsys types.FS, sourcePath, targetPath string) (bool, error) {
	if _, err := fsys.Stat(targetPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, jberrors.Wrapf(err, jberrors.ErrTargetRead, "stat %s", targetPath)
	}

	sourceData, err := fsys.ReadFile(sourcePath)
	if err != nil {
		return false, jberrors.Wrapf(err, jberrors.ErrTargetRead, "read %s", sourcePath)
	}
	targetData, err := fsys.ReadFile(targetPath)
	if err != nil {
		return false, jberrors.Wrapf(err, jberrors.ErrTargetRead, "read %s", targetPath)
	}

	result := Lines(SplitLines(string(targetData)), SplitLines(string(sourceData)))
	return result.HasDiff, nil
}

package types

import "io/fs"

// FS abstracts filesystem operations so components can run against the
// real OS filesystem or an in-memory one in tests.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// DiffResult is the outcome of one line-level comparison between a
// target's current content and its candidate replacement.
type DiffResult struct {
	// HasDiff is true when the candidate differs from the current
	// content. Always equals DeltaCount > 0.
	HasDiff bool `json:"hasDiff" yaml:"hasDiff"`

	// TotalLines is the line count of the candidate content, not of
	// the existing target.
	TotalLines int `json:"totalLines" yaml:"totalLines"`

	// DeltaCount is the number of contiguous edit groups, not the
	// number of changed lines.
	DeltaCount int `json:"deltaCount" yaml:"deltaCount"`

	Message string `json:"message" yaml:"message"`
}

// SyncTarget identifies one destination vmoptions file.
type SyncTarget struct {
	// Product is the version-stripped product name, e.g. "GoLand".
	// It keys fragment lookup and the per-product backup directory.
	Product string `json:"product" yaml:"product"`

	// Path is the absolute path of the destination file.
	Path string `json:"path" yaml:"path"`
}

// FileName returns the base name of the target file.
func (t SyncTarget) FileName() string {
	for i := len(t.Path) - 1; i >= 0; i-- {
		if t.Path[i] == '/' || t.Path[i] == '\\' {
			return t.Path[i+1:]
		}
	}
	return t.Path
}

// Status is the terminal state of one target in a run.
type Status string

const (
	// StatusWritten means the target differed, was backed up when it
	// existed, and was overwritten with the candidate content.
	StatusWritten Status = "written"

	// StatusSkipped means the candidate matched the current content
	// and nothing was touched.
	StatusSkipped Status = "skipped"

	// StatusUnconfigured means no specific fragment exists for the
	// product, so composition was never attempted.
	StatusUnconfigured Status = "unconfigured"

	// StatusFailed means an I/O step failed; the failure is recorded
	// and the run continues with the next target.
	StatusFailed Status = "failed"
)

// TargetResult records the outcome of one target.
type TargetResult struct {
	Target     SyncTarget  `json:"target" yaml:"target"`
	Status     Status      `json:"status" yaml:"status"`
	Diff       *DiffResult `json:"diff,omitempty" yaml:"diff,omitempty"`
	BackupPath string      `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
	Err        error       `json:"-" yaml:"-"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunSummary aggregates one full pass over the target list.
type RunSummary struct {
	Results      []TargetResult `json:"results" yaml:"results"`
	Written      int            `json:"written" yaml:"written"`
	Skipped      int            `json:"skipped" yaml:"skipped"`
	Unconfigured int            `json:"unconfigured" yaml:"unconfigured"`
	Failed       int            `json:"failed" yaml:"failed"`
}

// Add records a result and bumps the matching counter.
func (s *RunSummary) Add(r TargetResult) {
	if r.Err != nil {
		r.Error = r.Err.Error()
	}
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusWritten:
		s.Written++
	case StatusSkipped:
		s.Skipped++
	case StatusUnconfigured:
		s.Unconfigured++
	case StatusFailed:
		s.Failed++
	}
}

// Configured is the number of targets for which candidate content was
// composed, whether or not it needed writing.
func (s *RunSummary) Configured() int {
	return s.Written + s.Skipped
}

// MirrorSummary aggregates one license mirror pass.
type MirrorSummary struct {
	Copied  int `json:"copied" yaml:"copied"`
	Skipped int `json:"skipped" yaml:"skipped"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Total is the number of files the pass looked at.
func (s MirrorSummary) Total() int {
	return s.Copied + s.Skipped + s.Failed
}

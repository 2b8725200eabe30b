// Package types defines the core types shared across jbsync: the
// filesystem abstraction, diff results, sync targets and run summaries.
// It depends on nothing else in the module so every package can import it.
package types

// Package compose assembles the final vmoptions document from its
// source fragments. Pure string work, no I/O.
package compose

import "strings"

// Content merges the fragments in fixed order: the product-specific
// text, the shared general text (each followed by a newline), and,
// only when a non-empty preset block was recovered from the previous
// file, the toolbox comment followed by that block. CRLF pairs are
// folded to LF in the final output; vmoptions files tolerate only
// LF-terminated lines.
func Content(specific, general, comment []byte, presetVar string) string {
	needed := string(specific) + "\n" + string(general) + "\n"

	// No preset block means no comment fragment either; a dangling
	// separator must not appear.
	if presetVar == "" {
		return strings.ReplaceAll(needed, "\r\n", "\n")
	}
	return strings.ReplaceAll(needed+string(comment)+"\n"+presetVar, "\r\n", "\n")
}

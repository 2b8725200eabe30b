// Package resources supplies the packaged text fragments that jbsync
// composes into vmoptions files: one specific fragment per product,
// plus the general fragment and the toolbox comment shared by all.
package resources

import (
	"embed"
	"errors"
	"io/fs"
)

//go:embed vmoptions
var assets embed.FS

const (
	generalPath = "vmoptions/general.vmoptions"
	commentPath = "vmoptions/comment.vmoptions"
	specificDir = "vmoptions/specific"
)

// Fragments are the three raw text fragments for one product.
type Fragments struct {
	Specific []byte
	General  []byte
	Comment  []byte
}

// Provider resolves the fragments for a product stem. ok is false when
// no specific fragment is packaged for the stem; such a target is
// unconfigured, not an error.
type Provider interface {
	Fragments(stem string) (frags Fragments, ok bool, err error)
}

// EmbedProvider serves fragments from the binary's embedded assets.
type EmbedProvider struct {
	fsys fs.FS
}

// NewEmbedProvider returns the provider backed by the packaged assets.
func NewEmbedProvider() *EmbedProvider {
	return &EmbedProvider{fsys: assets}
}

// Fragments implements Provider.
func (p *EmbedProvider) Fragments(stem string) (Fragments, bool, error) {
	specific, err := fs.ReadFile(p.fsys, specificDir+"/"+stem+".vmoptions")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Fragments{}, false, nil
		}
		return Fragments{}, false, err
	}

	general, err := fs.ReadFile(p.fsys, generalPath)
	if err != nil {
		return Fragments{}, false, err
	}
	comment, err := fs.ReadFile(p.fsys, commentPath)
	if err != nil {
		return Fragments{}, false, err
	}

	return Fragments{Specific: specific, General: general, Comment: comment}, true, nil
}

// MapProvider serves fragments from memory; tests use it.
type MapProvider struct {
	Specifics map[string][]byte
	General   []byte
	Comment   []byte
	Err       error
}

// Fragments implements Provider.
func (p *MapProvider) Fragments(stem string) (Fragments, bool, error) {
	if p.Err != nil {
		return Fragments{}, false, p.Err
	}
	specific, ok := p.Specifics[stem]
	if !ok {
		return Fragments{}, false, nil
	}
	return Fragments{Specific: specific, General: p.General, Comment: p.Comment}, true, nil
}

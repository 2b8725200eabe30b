// Package topics provides a small topic-based help system for Cobra
// applications, loading help pages from an fs.FS (jbsync embeds them
// in the binary) and rendering markdown nicely in capable terminals.
package topics

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Topic is one help page.
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// Options configures loading.
type Options struct {
	// Extensions lists the file extensions treated as topics.
	// Defaults to [".md", ".txt"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the loaded topics.
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Load walks root inside fsys and collects every file with a
// supported extension as a topic named after its base name.
func Load(fsys fs.FS, root string, opts Options) (*Manager, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{".md", ".txt"}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = &PlainRenderer{}
	}

	m := &Manager{
		topics:   make(map[string]*Topic),
		renderer: renderer,
	}

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		supported := false
		for _, validExt := range extensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		m.topics[name] = &Topic{Name: name, Ext: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Names returns the available topic names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the formatted content of a topic, or false when the
// topic does not exist.
func (m *Manager) Render(name string) (string, bool) {
	topic, ok := m.topics[name]
	if !ok {
		return "", false
	}
	return m.renderer.Render(topic.Content, topic.Ext), true
}

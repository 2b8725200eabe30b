package topics

// Renderer formats topic content for display
type Renderer interface {
	// Render formats the content; format is the source file extension
	Render(content string, format string) string
}

// PlainRenderer returns content as-is without any formatting
type PlainRenderer struct{}

// Render implements Renderer
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

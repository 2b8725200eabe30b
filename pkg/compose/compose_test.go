package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContent(t *testing.T) {
	specific := []byte("-Xmx2048m")
	general := []byte("-XX:+UseG1GC")
	comment := []byte("# Toolbox-managed properties below")

	t.Run("fragments join in fixed order", func(t *testing.T) {
		got := Content(specific, general, comment, "")
		assert.Equal(t, "-Xmx2048m\n-XX:+UseG1GC\n", got)
	})

	t.Run("empty preset leaves out the comment", func(t *testing.T) {
		got := Content(specific, general, comment, "")
		assert.NotContains(t, got, string(comment))
	})

	t.Run("preset block follows the comment", func(t *testing.T) {
		preset := "-Dide.managed.by.toolbox=true\n"
		got := Content(specific, general, comment, preset)
		assert.Equal(t,
			"-Xmx2048m\n-XX:+UseG1GC\n# Toolbox-managed properties below\n-Dide.managed.by.toolbox=true\n",
			got)
	})

	t.Run("crlf fragments fold to lf", func(t *testing.T) {
		got := Content([]byte("-Xmx2048m\r\n-Xms512m"), general, comment, "")
		assert.Equal(t, "-Xmx2048m\n-Xms512m\n-XX:+UseG1GC\n", got)
	})

	t.Run("empty fragments still terminate lines", func(t *testing.T) {
		got := Content(nil, nil, nil, "")
		assert.Equal(t, "\n\n", got)
	})
}

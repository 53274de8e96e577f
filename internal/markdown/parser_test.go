package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Render(t *testing.T) {
	html, err := NewParser().Render([]byte("# Dreams\n\n**lucid** again"))
	require.NoError(t, err)

	assert.Contains(t, string(html), `<h1 id="dreams">Dreams</h1>`)
	assert.Contains(t, string(html), "<strong>lucid</strong>")
}

func TestParser_RenderOmitsRawHTML(t *testing.T) {
	html, err := NewParser().Render([]byte("<script>alert(1)</script>\n\ntext"))
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>")
}

func TestParser_ParseNote(t *testing.T) {
	source := "---\ntitle: Night terrors\ntags: [sleep, sleep, rem]\npinned: true\n---\n\nWoke at 3am.\n"

	meta, body, err := NewParser().ParseNote([]byte(source))
	require.NoError(t, err)

	assert.Equal(t, "Night terrors", meta.Title)
	assert.Equal(t, []string{"sleep", "sleep", "rem"}, meta.Tags)
	assert.True(t, meta.Pinned)
	assert.Equal(t, "Woke at 3am.\n", body)
}

func TestParser_ParseNoteWithoutFrontmatter(t *testing.T) {
	meta, body, err := NewParser().ParseNote([]byte("# Plain\n\nbody"))
	require.NoError(t, err)

	assert.Equal(t, NoteMeta{}, meta)
	assert.Equal(t, "# Plain\n\nbody", body)
}

func TestStripFrontmatter(t *testing.T) {
	assert.Equal(t, "body", StripFrontmatter("+++\ntitle = \"x\"\n+++\nbody"))
	assert.Equal(t, "---\nunterminated", StripFrontmatter("---\nunterminated"))
	assert.Equal(t, "", StripFrontmatter("---\ntitle: x\n---"))
}

func TestFirstHeading(t *testing.T) {
	assert.Equal(t, "Title here", FirstHeading("intro\n# Title here\n## Sub"))
	assert.Equal(t, "", FirstHeading("no heading"))
}

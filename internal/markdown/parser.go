package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// NoteMeta is the frontmatter recognized on imported notes.
type NoteMeta struct {
	Title  string   `yaml:"title" toml:"title"`
	Tags   []string `yaml:"tags" toml:"tags"`
	Pinned bool     `yaml:"pinned" toml:"pinned"`
}

type Parser struct {
	md goldmark.Markdown
}

// NewParser renders GitHub flavored markdown. Raw HTML in the source is
// omitted from the output since note content is user supplied.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseNote decodes the frontmatter of a markdown document and returns it
// together with the body that follows it.
func (p *Parser) ParseNote(source []byte) (NoteMeta, string, error) {
	var meta NoteMeta

	context := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(source), parser.WithContext(context))

	data := frontmatter.Get(context)
	if data != nil {
		err := data.Decode(&meta)
		if err != nil {
			return NoteMeta{}, "", err
		}
	}

	return meta, StripFrontmatter(string(source)), nil
}

// StripFrontmatter removes a leading YAML (---) or TOML (+++) block.
// Documents without a closed block are returned unchanged.
func StripFrontmatter(source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")

	for _, delim := range []string{"---", "+++"} {
		if !strings.HasPrefix(normalized, delim+"\n") {
			continue
		}

		rest := normalized[len(delim)+1:]
		if strings.HasPrefix(rest, delim+"\n") || rest == delim {
			return strings.TrimLeft(strings.TrimPrefix(rest, delim), "\n")
		}

		end := strings.Index(rest, "\n"+delim+"\n")
		if end >= 0 {
			return strings.TrimLeft(rest[end+len(delim)+2:], "\n")
		}
		if strings.HasSuffix(rest, "\n"+delim) {
			return ""
		}
	}

	return source
}

// FirstHeading returns the text of the first level-one ATX heading.
func FirstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

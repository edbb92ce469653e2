package tui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdCodeBlockRe  = regexp.MustCompile(`(?s)<pre><code(?: class="language-([a-zA-Z0-9]+)")?>(.*?)</code></pre>`)
	mdInlineCodeRe = regexp.MustCompile(`<code>([^<]+)</code>`)
	mdHeadingRe    = regexp.MustCompile(`<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	mdStrongRe     = regexp.MustCompile(`<strong>(.*?)</strong>`)
	mdEmRe         = regexp.MustCompile(`<em>(.*?)</em>`)
	mdLinkRe       = regexp.MustCompile(`<a href="([^"]*)"[^>]*>(.*?)</a>`)
	mdListItemRe   = regexp.MustCompile(`<li>(?s)(.*?)</li>`)
	mdTagRe        = regexp.MustCompile(`<[^>]+>`)
	mdBlankRunsRe  = regexp.MustCompile(`\n{3,}`)
)

// MarkdownRenderer renders finalized assistant text for the terminal:
// goldmark for structure, chroma for fenced code blocks. Streaming text
// bypasses it entirely.
type MarkdownRenderer struct {
	md        goldmark.Markdown
	formatter chroma.Formatter
	style     *chroma.Style
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
		formatter: formatters.Get("terminal256"),
		style:     styles.Get("monokai"),
	}
}

// Render converts markdown to styled terminal text. Any conversion
// failure returns the input unchanged.
func (r *MarkdownRenderer) Render(content string, width int) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return r.terminalize(buf.String(), width)
}

func (r *MarkdownRenderer) terminalize(htmlText string, width int) string {
	out := htmlText

	// Code blocks first so later passes never touch highlighted output.
	var blocks []string
	out = mdCodeBlockRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := mdCodeBlockRe.FindStringSubmatch(m)
		code := decodeEntities(strings.TrimRight(sub[2], "\n"))
		blocks = append(blocks, r.highlight(code, sub[1]))
		return fmt.Sprintf("\n\x00CODE%d\x00\n", len(blocks)-1)
	})

	out = mdInlineCodeRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := mdInlineCodeRe.FindStringSubmatch(m)
		return "`" + decodeEntities(sub[1]) + "`"
	})

	out = mdHeadingRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := mdHeadingRe.FindStringSubmatch(m)
		title := mdTagRe.ReplaceAllString(sub[2], "")
		return lipgloss.NewStyle().Bold(true).Render(title) + "\n"
	})

	out = mdStrongRe.ReplaceAllString(out, "$1")
	out = mdEmRe.ReplaceAllString(out, "$1")
	out = mdLinkRe.ReplaceAllString(out, "$2 ($1)")

	out = mdListItemRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := mdListItemRe.FindStringSubmatch(m)
		item := strings.TrimSpace(mdTagRe.ReplaceAllString(sub[1], ""))
		return "  • " + item + "\n"
	})

	out = strings.ReplaceAll(out, "</p>", "\n")
	out = mdTagRe.ReplaceAllString(out, "")
	out = decodeEntities(out)

	for i, block := range blocks {
		out = strings.Replace(out, fmt.Sprintf("\x00CODE%d\x00", i), block, 1)
	}

	out = mdBlankRunsRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func (r *MarkdownRenderer) highlight(code, lang string) string {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#x27;", "'",
	"&#x60;", "`",
	"&nbsp;", " ",
)

func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

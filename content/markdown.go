// ABOUTME: Markdown-to-terminal rendering via the goldmark AST
// ABOUTME: Also provides width-aware wrapping and truncation for Korean text

package content

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// RenderMarkdown converts Markdown into plain lines wrapped at width
func RenderMarkdown(src string, width int) []string {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var lines []string

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if len(lines) > 0 {
			lines = append(lines, "")
		}

		lines = append(lines, renderBlock(n, source, width, "")...)
	}

	return lines
}

func renderBlock(n ast.Node, source []byte, width int, prefix string) []string {
	avail := max(width-runewidth.StringWidth(prefix), 1)

	switch node := n.(type) {
	case *ast.Heading:
		return prefixed(prefix, Wrap(strings.ToUpper(inlineText(node, source)), avail))

	case *ast.Paragraph, *ast.TextBlock:
		return prefixed(prefix, Wrap(inlineText(node, source), avail))

	case *ast.List:
		var lines []string

		index := node.Start
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			bullet := "• "
			if node.IsOrdered() {
				bullet = strconv.Itoa(index) + ". "
				index++
			}

			indent := strings.Repeat(" ", runewidth.StringWidth(bullet))
			first := true

			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				for _, line := range renderBlock(child, source, avail-len(indent), "") {
					if first {
						lines = append(lines, prefix+bullet+line)
						first = false
					} else {
						lines = append(lines, prefix+indent+line)
					}
				}
			}
		}

		return lines

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var lines []string

		segments := n.Lines()
		for i := range segments.Len() {
			segment := segments.At(i)
			line := strings.TrimRight(string(segment.Value(source)), "\n")
			lines = append(lines, prefix+"  "+Truncate(line, avail-2))
		}

		return lines

	case *ast.Blockquote:
		var lines []string

		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			lines = append(lines, renderBlock(child, source, width, prefix+"│ ")...)
		}

		return lines

	case *ast.ThematicBreak:
		return []string{prefix + strings.Repeat("─", avail)}

	default:
		return prefixed(prefix, Wrap(inlineText(n, source), avail))
	}
}

// inlineText flattens inline children into a single string
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))

			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.CodeSpan:
			buf.WriteString("`" + inlineText(node, source) + "`")
		case *ast.Link:
			buf.WriteString(inlineText(node, source))
			buf.WriteString(" (" + string(node.Destination) + ")")
		case *ast.AutoLink:
			buf.Write(node.URL(source))
		default:
			buf.WriteString(inlineText(child, source))
		}
	}

	return buf.String()
}

func prefixed(prefix string, lines []string) []string {
	if prefix == "" {
		return lines
	}

	for i := range lines {
		lines[i] = prefix + lines[i]
	}

	return lines
}

// Wrap breaks s into lines no wider than width display cells.
// Words wider than a line are split.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}

	var (
		lines   []string
		current strings.Builder
		used    int
	)

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		used = 0
	}

	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)

		if used > 0 && used+1+w > width {
			flush()
		}

		for w > width {
			// Hard-break an oversized word
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}

			if used > 0 {
				flush()
			}

			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}

		if word == "" {
			continue
		}

		if used > 0 {
			current.WriteByte(' ')
			used++
		}

		current.WriteString(word)
		used += w
	}

	if used > 0 || len(lines) == 0 {
		flush()
	}

	return lines
}

// Truncate shortens s to width display cells, adding "…" if truncated
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	return runewidth.Truncate(s, width, "…")
}

package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// injectSection replaces the body of the Markdown section titled section with
// generated. The body runs until the next heading of the same or a higher
// level. Both "## Title" and underlined headings are recognized; headings in
// code blocks, lists and quotes are not. A missing section is appended as a
// level-two heading.
func injectSection(doc []byte, section string, generated []byte) []byte {
	body := strings.TrimSpace(string(generated))
	bodyStart, end, found := findSection(doc, section)
	var b bytes.Buffer
	if !found {
		b.Write(bytes.TrimRight(doc, "\n"))
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n", section, body)
		return b.Bytes()
	}
	b.Write(doc[:bodyStart])
	if bodyStart == 0 || doc[bodyStart-1] != '\n' {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if end < len(doc) {
		b.WriteString("\n")
		b.Write(doc[end:])
	}
	return b.Bytes()
}

// findSection returns the offset just past the heading titled section and
// the offset where its section ends.
func findSection(doc []byte, section string) (int, int, bool) {
	root := goldmark.New().Parser().Parse(text.NewReader(doc))
	bodyStart, level := -1, 0
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Lines().Len() == 0 {
			continue
		}
		if bodyStart < 0 {
			if headingText(doc, heading) == section {
				bodyStart, level = headingEnd(doc, heading), heading.Level
			}
			continue
		}
		if heading.Level <= level {
			return bodyStart, lineStart(doc, heading.Lines().At(0).Start), true
		}
	}
	if bodyStart < 0 {
		return 0, 0, false
	}
	return bodyStart, len(doc), true
}

func headingText(doc []byte, heading *ast.Heading) string {
	lines := heading.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(doc))))
	}
	return strings.Join(parts, " ")
}

// headingEnd returns the offset after the heading's last line, including the
// underline of a setext heading.
func headingEnd(doc []byte, heading *ast.Heading) int {
	lines := heading.Lines()
	first := lineStart(doc, lines.At(0).Start)
	end := lineEnd(doc, lines.At(lines.Len()-1).Start)
	if isATX(doc[first:]) {
		return end
	}
	return lineEnd(doc, end)
}

func isATX(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " ")
	hashes := len(trimmed) - len(bytes.TrimLeft(trimmed, "#"))
	if hashes == 0 || hashes > 6 {
		return false
	}
	return hashes == len(trimmed) || trimmed[hashes] == ' ' || trimmed[hashes] == '\t' || trimmed[hashes] == '\n' || trimmed[hashes] == '\r'
}

func lineStart(doc []byte, pos int) int {
	return bytes.LastIndexByte(doc[:pos], '\n') + 1
}

func lineEnd(doc []byte, pos int) int {
	if pos >= len(doc) {
		return len(doc)
	}
	i := bytes.IndexByte(doc[pos:], '\n')
	if i < 0 {
		return len(doc)
	}
	return pos + i + 1
}

package document

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Separator divides question blocks inside a source document.
const Separator = "\n---\n"

// ProblemMarker opens the prompt section of a question block.
const ProblemMarker = "【問題】"

var bom = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 byte order mark and converts CRLF and lone CR
// line endings to LF.
func Normalize(src []byte) string {
	src = bytes.TrimPrefix(src, bom)
	s := string(src)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Split cuts normalized document text into raw blocks on separator lines.
// Blocks keep their surrounding whitespace.
func Split(text string) []string {
	return strings.Split(text, Separator)
}

// QuestionBlocks returns the blocks that contain a ProblemMarker, in
// document order.
func QuestionBlocks(text string) []string {
	var blocks []string
	for _, b := range Split(text) {
		if strings.Contains(b, ProblemMarker) {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Title returns the text of the first level-1 Markdown heading in src.
// Without one it falls back to the file name without extension.
func Title(src []byte, filename string) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			continue
		}
		if t := strings.TrimSpace(string(h.Text(src))); t != "" {
			return t
		}
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

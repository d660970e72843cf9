// Package textdoc holds per-session document text and the position math
// the protocol dispatcher needs to address tokens: editor positions are
// UTF-16 line/column pairs while the text is UTF-8.
package textdoc

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Document is one open editor document. It is owned by the dispatcher
// and passed by value per request.
type Document struct {
	Text       string
	LanguageID string
}

// Line returns the zero-based line of the document text.
func (d Document) Line(line int) (string, bool) {
	lines := strings.Split(d.Text, "\n")
	if line < 0 || line >= len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line], "\r"), true
}

// ByteOffset converts a UTF-16 column on a line to a byte offset.
func ByteOffset(line string, column int) int {
	count := 0
	for idx, ch := range line {
		if count >= column {
			return idx
		}
		count += utf16Len(ch)
	}
	return len(line)
}

// UTF16Column converts a byte offset on a line to a UTF-16 column.
func UTF16Column(line string, byteOffset int) int {
	count := 0
	for idx, ch := range line {
		if idx >= byteOffset {
			break
		}
		count += utf16Len(ch)
	}
	return count
}

func utf16Len(ch rune) int {
	if n := utf16.RuneLen(ch); n > 0 {
		return n
	}
	return 1 // replacement for invalid runes
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// WordAt extracts the identifier-like token around a position.
func (d Document) WordAt(line, column int) (string, bool) {
	text, ok := d.Line(line)
	if !ok {
		return "", false
	}
	byteIndex := ByteOffset(text, column)
	if byteIndex > len(text) {
		return "", false
	}
	start := byteIndex
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := byteIndex
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	if start == end {
		return "", false
	}
	return text[start:end], true
}

// WordPrefixAt extracts the token prefix ending at a position, plus the
// byte offset where it starts. Used for completion.
func (d Document) WordPrefixAt(line, column int) (string, int, bool) {
	text, ok := d.Line(line)
	if !ok {
		return "", 0, false
	}
	byteIndex := ByteOffset(text, column)
	if byteIndex > len(text) {
		return "", 0, false
	}
	start := byteIndex
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	if start == byteIndex {
		return "", 0, false
	}
	return text[start:byteIndex], start, true
}

func isLabelStart(b byte) bool {
	return b == '_' || b == '.' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isLabelByte(b byte) bool {
	return isLabelStart(b) || (b >= '0' && b <= '9')
}

// LabelAt extracts an assembly label reference around a position.
func LabelAt(line string, column int) (string, int, bool) {
	byteIndex := ByteOffset(line, column)
	if byteIndex > len(line) {
		return "", 0, false
	}
	start := byteIndex
	for start > 0 && isLabelByte(line[start-1]) {
		start--
	}
	end := byteIndex
	for end < len(line) && isLabelByte(line[end]) {
		end++
	}
	if start == end || !isLabelStart(line[start]) {
		return "", 0, false
	}
	return line[start:end], start, true
}

// LabelDefinition finds the "label:" definition line for a label,
// ignoring anything behind a ';' comment. It returns the zero-based
// line and the byte range of the name on it.
func (d Document) LabelDefinition(label string) (line, start, end int, ok bool) {
	for lineIdx, raw := range strings.Split(d.Text, "\n") {
		beforeComment := raw
		if comment := strings.IndexByte(raw, ';'); comment >= 0 {
			beforeComment = raw[:comment]
		}
		trimmed := strings.TrimLeft(beforeComment, " \t")
		if trimmed == "" {
			continue
		}
		colon := strings.IndexByte(trimmed, ':')
		if colon < 0 {
			continue
		}
		name := strings.TrimRight(trimmed[:colon], " \t")
		if name == "" || name != label || !validLabel(name) {
			continue
		}
		offset := len(beforeComment) - len(trimmed)
		return lineIdx, offset, offset + len(name), true
	}
	return 0, 0, 0, false
}

func validLabel(name string) bool {
	for i := 0; i < len(name); i++ {
		if i == 0 && !isLabelStart(name[i]) {
			return false
		}
		if !isLabelByte(name[i]) {
			return false
		}
	}
	return utf8.ValidString(name)
}

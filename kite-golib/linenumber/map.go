package linenumber

import (
	"sort"
	"strings"
)

// Map converts byte offsets to (line, column) pairs. Offsets, lines and
// columns are zero based. JavaScript line terminators (\n, \r\n and a lone \r)
// all start a new line.
type Map struct {
	src         []byte
	lineOffsets []int
}

// NewMap creates a map for the given buffer.
func NewMap(src []byte) *Map {
	m := &Map{src: src, lineOffsets: []int{0}}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			m.lineOffsets = append(m.lineOffsets, i+1)
		case '\n':
			m.lineOffsets = append(m.lineOffsets, i+1)
		}
	}
	return m
}

// LineCount gets the number of lines
func (m *Map) LineCount() int {
	return len(m.lineOffsets)
}

// LineCol converts a byte offset to a line number and column offset.
func (m *Map) LineCol(offset int) (line, column int) {
	if offset > len(m.src) {
		offset = len(m.src)
	}
	line = sort.Search(len(m.lineOffsets)-1, func(i int) bool { return offset < m.lineOffsets[i+1] })
	return line, offset - m.lineOffsets[line]
}

// LineBounds gets the begin and end of the given line, excluding the terminator.
func (m *Map) LineBounds(line int) (begin, end int) {
	begin = m.lineOffsets[line]
	end = len(m.src)
	if line+1 < len(m.lineOffsets) {
		end = m.lineOffsets[line+1]
	}
	for end > begin && (m.src[end-1] == '\n' || m.src[end-1] == '\r') {
		end--
	}
	return begin, end
}

// Excerpt renders the line containing offset followed by a caret under the offset's column.
func (m *Map) Excerpt(offset int) string {
	line, col := m.LineCol(offset)
	begin, end := m.LineBounds(line)
	text := string(m.src[begin:end])
	if col > len(text) {
		col = len(text)
	}

	// keep tabs so the caret lines up in a terminal
	pad := make([]byte, col)
	for i := range pad {
		if text[i] == '\t' {
			pad[i] = '\t'
		} else {
			pad[i] = ' '
		}
	}
	return strings.Join([]string{text, string(pad) + "^"}, "\n")
}

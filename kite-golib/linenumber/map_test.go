package linenumber

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	for _, s := range []string{"abc", "abc\ndef", "", "\n", "a\na\na\n"} {
		numlines := strings.Count(s, "\n") + 1
		t.Logf("%q", s)
		m := NewMap([]byte(s))
		assert.Equal(t, numlines, m.LineCount())
		var curline, curcol int
		for i := 0; i <= len(s); i++ {
			line, col := m.LineCol(i)
			assert.Equal(t, curline, line)
			assert.Equal(t, curcol, col)
			if i < len(s) && s[i] == '\n' {
				curline++
				curcol = 0
			} else {
				curcol++
			}
		}
	}
}

func TestMap_CarriageReturns(t *testing.T) {
	m := NewMap([]byte("a\r\nb\rc"))
	assert.Equal(t, 3, m.LineCount())

	line, col := m.LineCol(3)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)

	begin, end := m.LineBounds(0)
	assert.Equal(t, 0, begin)
	assert.Equal(t, 1, end)

	line, _ = m.LineCol(5)
	assert.Equal(t, 2, line)
}

func TestMap_LineBounds(t *testing.T) {
	m := NewMap([]byte("...\n...\n..."))
	a, b := m.LineBounds(0)
	assert.Equal(t, 0, a)
	assert.Equal(t, 3, b)
	c, d := m.LineBounds(1)
	assert.Equal(t, 4, c)
	assert.Equal(t, 7, d)
	e, f := m.LineBounds(2)
	assert.Equal(t, 8, e)
	assert.Equal(t, 11, f)
}

func TestMap_Excerpt(t *testing.T) {
	m := NewMap([]byte("var a = 1;\n\tif (x) y z\n"))
	assert.Equal(t, "\tif (x) y z\n\t         ^", m.Excerpt(21))
}

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer_GetUnget(t *testing.T) {
	tz := NewTokenizer([]byte(`a b c d`), "test.js", 1)
	require.Equal(t, Identifier, tz.Get(false))
	assert.Equal(t, "a", tz.Token().Literal)
	tz.Get(false)
	tz.Get(false)
	assert.Equal(t, "c", tz.Token().Literal)

	tz.Unget()
	tz.Unget()
	assert.Equal(t, "a", tz.Token().Literal)
	tz.Get(false)
	assert.Equal(t, "b", tz.Token().Literal)
	tz.Get(false)
	tz.Get(false)
	assert.Equal(t, "d", tz.Token().Literal)
	assert.True(t, tz.Done())
}

func TestTokenizer_TooMuchLookahead(t *testing.T) {
	tz := NewTokenizer([]byte(`a b c d e`), "test.js", 1)
	for i := 0; i < 4; i++ {
		tz.Get(false)
	}
	tz.Unget()
	tz.Unget()
	tz.Unget()
	assert.Panics(t, func() { tz.Unget() })
}

func TestTokenizer_PeekDoesNotConsume(t *testing.T) {
	tz := NewTokenizer([]byte(`x;`), "test.js", 1)
	assert.Equal(t, Identifier, tz.Peek(true))
	assert.Equal(t, Identifier, tz.Peek(true))
	assert.Equal(t, Illegal, tz.Token().Token)
	assert.True(t, tz.Match(Identifier, true))
	assert.False(t, tz.Match(Comma, false))
	assert.True(t, tz.Match(Semicolon, false))
	assert.True(t, tz.Done())
}

func TestTokenizer_PeekOnSameLine(t *testing.T) {
	tz := NewTokenizer([]byte("a b\nc"), "test.js", 10)
	tz.Get(true)
	assert.Equal(t, 10, tz.Lineno())
	assert.Equal(t, Identifier, tz.PeekOnSameLine(false))
	tz.Get(false)
	assert.Equal(t, Newline, tz.PeekOnSameLine(false))
	assert.Equal(t, Identifier, tz.Peek(false))
	tz.Get(false)
	assert.Equal(t, 11, tz.Lineno())
}

func TestTokenizer_OperandDecidesRegExp(t *testing.T) {
	tz := NewTokenizer([]byte(`/a/`), "test.js", 1)
	assert.Equal(t, RegExp, tz.Get(true))

	tz = NewTokenizer([]byte(`/a/`), "test.js", 1)
	assert.Equal(t, Div, tz.Get(false))
}

func TestTokenizer_ErrorFor(t *testing.T) {
	tz := NewTokenizer([]byte(`a = "open`), "test.js", 1)
	tz.Get(true)
	tz.Get(false)
	require.Equal(t, Illegal, tz.Get(true))
	err := tz.ErrorFor(tz.Token())
	require.NotNil(t, err)
	assert.Equal(t, "unterminated string literal", err.Message)
	assert.Error(t, tz.Errors())
}

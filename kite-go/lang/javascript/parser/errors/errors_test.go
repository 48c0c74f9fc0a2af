package errors

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "grammar", Grammar.String())
	assert.Equal(t, "lexical", Lexical.String())
	assert.Equal(t, "invalid kind (42)", Kind(42).String())
}

func TestSyntaxError(t *testing.T) {
	err := &SyntaxError{Kind: Scope, Msg: "Label not found", Filename: "a.js", Line: 3, Pos: 17}
	assert.Equal(t, "a.js:3: Label not found", err.Error())
}

func TestKindOf(t *testing.T) {
	se := &SyntaxError{Kind: Mode, Msg: "super is reserved", Filename: "a.js", Line: 1}

	cases := []struct {
		err  error
		kind Kind
		ok   bool
	}{
		{nil, Grammar, false},
		{fmt.Errorf("boom"), Grammar, false},
		{se, Mode, true},
		{pkgerrors.Wrap(se, "parsing a.js"), Mode, true},
		{pkgerrors.WithMessage(pkgerrors.WithStack(se), "outer"), Mode, true},
	}
	for i, c := range cases {
		kind, ok := KindOf(c.err)
		assert.Equal(t, c.ok, ok, "case %d", i)
		assert.Equal(t, c.kind, kind, "case %d", i)
	}

	got, ok := AsSyntaxError(pkgerrors.Wrap(se, "x"))
	require.True(t, ok)
	assert.Equal(t, se, got)
}

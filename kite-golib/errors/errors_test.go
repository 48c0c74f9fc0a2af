package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendNil(t *testing.T) {
	err := New("error")
	errs := Append(nil, err)
	require.Len(t, errs, 1)
	require.Equal(t, err, errs[0])

	errs = Append(List{err}, nil)
	require.Len(t, errs, 1)
	require.Equal(t, err, errs.First())

	require.Nil(t, List(nil).First())
}

func TestAppendList(t *testing.T) {
	err0 := New("error0")
	err1 := New("error1")
	err2 := New("error2")

	errs := Append(Append(nil, err0), List{err1, err2})
	require.Equal(t, List{err0, err1, err2}, errs)
	require.Equal(t, "error0\nerror1\nerror2", errs.Error())
}

func TestCombine(t *testing.T) {
	err0 := New("error0")
	err1 := New("error1")
	require.Nil(t, Combine(nil, nil))
	require.Equal(t, err0, Combine(err0, nil))
	require.Equal(t, err0, Combine(nil, err0))
	require.Equal(t, List{err0, err1}, Combine(err0, err1))
}

func TestWrapf(t *testing.T) {
	base := New("boom")
	err := Wrapf(base, "reading %s", "a.js")
	require.Equal(t, "reading a.js: boom", err.Error())
	require.Equal(t, base, Cause(err))

	require.EqualError(t, Wrapf(nil, "no cause %d", 1), "no cause 1")
}

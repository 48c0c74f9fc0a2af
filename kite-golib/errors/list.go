package errors

import "strings"

// List is an ordered, non-empty collection of errors. A nil List means no errors,
// so callers may compare against nil directly.
type List []error

// Error joins the messages of every error, one per line.
func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// First returns the first error in the list, or nil.
func (l List) First() error {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// Append adds err (which may itself be a List) to l. Nil errors are dropped.
func Append(l List, err error) List {
	switch err := err.(type) {
	case nil:
		return l
	case List:
		return append(l, err...)
	default:
		return append(l, err)
	}
}

// Combine returns nil, the single error, or a List of both.
func Combine(e, f error) error {
	l := Append(Append(nil, e), f)
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	default:
		return l
	}
}

package util

import (
	"errors"
	"strings"
)

// ErrPublic is an error whose message is safe to show to an end user, it
// carries no internal detail. Wrapped ErrPublic values still compare equal to
// their original constant through errors.Is, and any ErrPublic matches the
// zero ErrPublic("") so callers can test for the class as a whole.
type ErrPublic string

func (e ErrPublic) Error() string {
	return string(e)
}

func (e ErrPublic) Is(v error) bool {
	p, ok := v.(ErrPublic)
	return ok && (p == "" || p == e)
}

func ConcatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	filtered := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err.Error())
		}
	}

	if len(filtered) == 0 {
		return nil
	}

	return errors.New(strings.Join(filtered, "; "))
}

package aquarium

import "fmt"

// AssertionError reports a violated programming contract, e.g. an
// out-of-bounds coordinate. It is thrown with panic, never returned.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(AssertionError{fmt.Sprintf(format, args...)})
	}
}

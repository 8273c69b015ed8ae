package utils

import "fmt"

// Assert panics with the formatted message when cond is false. Checks are
// compiled out with the release build tag.
func Assert(cond bool, format string, args ...interface{}) {
	if !assertionsEnabled || cond {
		return
	}
	panic(fmt.Sprintf("assertion failed: "+format, args...))
}

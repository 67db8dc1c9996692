package utils

import "fmt"

// Assert panics when condition is false. It guards caller contracts, not
// runtime conditions.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}

// Assertf is Assert with a formatted message.
func Assertf(condition bool, format string, a ...interface{}) {
	if !condition {
		panic(fmt.Sprintf(format, a...))
	}
}

package assert

import "fmt"

func describe(msg []string) string {
	if len(msg) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", msg[0])
}

// NotNil panics if value is nil, msg optionally names the value.
func NotNil(value any, msg ...string) {
	if value == nil {
		panic("expected value to be not nil" + describe(msg))
	}
}

func NotEmptyStr(str string, msg ...string) {
	if str == "" {
		panic("expected string to be non-empty" + describe(msg))
	}
}

func Positive[T int | int64 | float64](n T, msg ...string) {
	if n <= 0 {
		panic(fmt.Sprintf("expected %v to be positive%s", n, describe(msg)))
	}
}

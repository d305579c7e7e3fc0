package tokenstore

import (
	"fmt"
	"strings"
)

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

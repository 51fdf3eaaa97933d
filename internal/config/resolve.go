package config

import "strings"

// lastSet walks the override layers in precedence order and returns the last
// non-nil value, or the default when nothing overrides it.
func lastSet[T any](def T, overrides ...*T) T {
	out := def
	for _, o := range overrides {
		if o != nil {
			out = *o
		}
	}
	return out
}

func ResolveString(def string, values ...*string) string { return lastSet(def, values...) }

func ResolveInt(def int, values ...*int) int { return lastSet(def, values...) }

func ResolveBool(def bool, values ...*bool) bool { return lastSet(def, values...) }

// ResolveStrings clones the winning slice so later mutation of a layer does
// not leak into the merged settings. An explicitly set empty list clears the
// value rather than falling through to a lower layer.
func ResolveStrings(def []string, values ...*[]string) []string {
	out := cloneStrings(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		if len(*v) == 0 {
			out = []string{}
			continue
		}
		out = cloneStrings(*v)
	}
	return out
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(ResolveString(def, values...))
}

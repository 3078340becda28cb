package variants

import (
	"sort"
	"strconv"
	"strings"
)

// Key encodes an option mapping canonically: entries sorted by name, each
// name and value length-prefixed so separators inside them cannot collide.
// Equal mappings give equal keys whatever their insertion order.
func Key(options map[string]string) string {
	names := make([]string, 0, len(options))
	for n := range options {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		v := options[n]
		b.WriteString(strconv.Itoa(len(n)))
		b.WriteByte(':')
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte(';')
	}
	return b.String()
}

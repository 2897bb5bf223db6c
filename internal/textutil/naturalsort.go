package textutil

import (
	"sort"
	"strings"
	"unicode"
)

// NaturalLess reports whether a orders before b under natural sorting:
// runs of digits compare as integers, everything else compares
// case-insensitively. "2.jpg" sorts before "10.jpg".
func NaturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			an, arest := splitDigits(a)
			bn, brest := splitDigits(b)
			if an != bn {
				return numericLess(an, bn)
			}
			a, b = arest, brest
			continue
		}
		ar := unicode.ToLower(rune(a[0]))
		br := unicode.ToLower(rune(b[0]))
		if ar != br {
			return ar < br
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

// SortNatural sorts items in place using NaturalLess. The sort is stable so
// names that compare equal keep their incoming order.
func SortNatural(items []string) {
	sort.SliceStable(items, func(i, j int) bool {
		return NaturalLess(items[i], items[j])
	})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func numericLess(a, b string) bool {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

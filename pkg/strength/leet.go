package strength

import "strings"

// LeetTable maps look-alike digits and symbols to the letter they stand for.
type LeetTable map[rune]rune

// DefaultLeetTable returns a fresh copy of the substitutions attackers try first.
func DefaultLeetTable() LeetTable {
	return LeetTable{
		'4': 'a', '@': 'a',
		'3': 'e',
		'1': 'i',
		'0': 'o',
		'$': 's', '5': 's',
		'7': 't',
	}
}

// Normalize replaces every mapped character of s in a single pass. A
// substituted letter is never substituted again.
func (t LeetTable) Normalize(s string) string {
	if len(t) == 0 {
		return s
	}

	return strings.Map(func(r rune) rune {
		if sub, ok := t[r]; ok {
			return sub
		}
		return r
	}, s)
}

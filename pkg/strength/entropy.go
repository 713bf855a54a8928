package strength

import (
	"math"
	"unicode/utf8"
)

// Entropy estimates the bits of entropy of password as its length multiplied by
// log2 of the alphabet implied by the character classes it uses. The result is
// rounded to two decimals. A password using none of the known classes, the
// empty one included, has an entropy of 0.
func Entropy(password string) float64 {
	charset := CharsetSize(password)
	if charset == 0 {
		return 0
	}

	length := utf8.RuneCountInString(password)
	return round2(float64(length) * math.Log2(float64(charset)))
}

// CharsetSize sums the size of every class of CharClasses present in password.
func CharsetSize(password string) int {
	size := 0
	for _, class := range CharClasses {
		if class.In(password) {
			size += class.Size
		}
	}

	return size
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

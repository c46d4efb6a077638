// Package afm validates Greek tax identification numbers (ΑΦΜ).
package afm

// Valid reports whether afm is a well-formed Greek tax number.
//
// The check digit algorithm: each of the first 8 digits is multiplied by
// 2^(8-i) for position i, the products are summed, reduced modulo 11 and
// then modulo 10; the result must equal the 9th digit.
func Valid(afm string) bool {
	if len(afm) != 9 {
		return false
	}

	var digits [9]int
	for i := 0; i < 9; i++ {
		c := afm[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	sum := 0
	weight := 256 // 2^8
	for i := 0; i < 8; i++ {
		sum += digits[i] * weight
		weight /= 2
	}

	return sum%11%10 == digits[8]
}
